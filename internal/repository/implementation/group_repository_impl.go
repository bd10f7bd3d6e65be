package implementation

import (
	"encoding/json"
	"time"

	"kj-canvas-be/internal/entity"
	"kj-canvas-be/internal/pkg/logger"
	"kj-canvas-be/internal/repository/contract"
	"kj-canvas-be/internal/storage"
)

type GroupRepositoryImpl struct {
	store  storage.Store
	logger logger.ILogger
}

func NewGroupRepository(store storage.Store, log logger.ILogger) contract.GroupRepository {
	return &GroupRepositoryImpl{
		store:  store,
		logger: log,
	}
}

func (r *GroupRepositoryImpl) GetAll() []entity.Group {
	data, found := r.store.Read(storage.KeyGroups)
	if !found {
		return []entity.Group{}
	}

	var groups []entity.Group
	if err := json.Unmarshal(data, &groups); err != nil {
		r.logger.Warn("GroupRepository", "Corrupt groups collection, treating as empty", map[string]interface{}{
			"error": err.Error(),
		})
		return []entity.Group{}
	}
	if groups == nil {
		return []entity.Group{}
	}
	return groups
}

func (r *GroupRepositoryImpl) persist(groups []entity.Group) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	return r.store.Write(storage.KeyGroups, data)
}

func (r *GroupRepositoryImpl) Add(group entity.Group) (entity.Group, error) {
	groups := r.GetAll()

	now := time.Now()
	group.Id = newRecordId()
	group.CreatedAt = now
	group.UpdatedAt = now

	groups = append(groups, group)
	if err := r.persist(groups); err != nil {
		return entity.Group{}, err
	}
	return group, nil
}

func (r *GroupRepositoryImpl) AddMultiple(newGroups []entity.Group) ([]entity.Group, error) {
	groups := r.GetAll()

	now := time.Now()
	stored := make([]entity.Group, len(newGroups))
	for i, group := range newGroups {
		group.Id = newRecordId()
		group.CreatedAt = now
		group.UpdatedAt = now
		stored[i] = group
	}

	groups = append(groups, stored...)
	if err := r.persist(groups); err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *GroupRepositoryImpl) Update(id string, patch entity.GroupPatch) (*entity.Group, error) {
	groups := r.GetAll()

	for i := range groups {
		if groups[i].Id != id {
			continue
		}
		patch.ApplyTo(&groups[i])
		groups[i].UpdatedAt = time.Now()
		if err := r.persist(groups); err != nil {
			return nil, err
		}
		updated := groups[i].Clone()
		return &updated, nil
	}
	return nil, nil
}

func (r *GroupRepositoryImpl) Delete(id string) error {
	groups := r.GetAll()

	filtered := groups[:0]
	for _, group := range groups {
		if group.Id != id {
			filtered = append(filtered, group)
		}
	}
	return r.persist(filtered)
}

func (r *GroupRepositoryImpl) DeleteAll() error {
	return r.persist([]entity.Group{})
}

func (r *GroupRepositoryImpl) ReplaceAll(groups []entity.Group) error {
	if groups == nil {
		groups = []entity.Group{}
	}
	return r.persist(groups)
}
