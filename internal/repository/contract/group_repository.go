package contract

import (
	"kj-canvas-be/internal/entity"
)

// GroupRepository owns the groups collection. Deleting a group never cascades
// to member cards; the service layer ungroups them first.
type GroupRepository interface {
	GetAll() []entity.Group
	Add(group entity.Group) (entity.Group, error)
	AddMultiple(groups []entity.Group) ([]entity.Group, error)
	Update(id string, patch entity.GroupPatch) (*entity.Group, error)
	Delete(id string) error
	DeleteAll() error
	ReplaceAll(groups []entity.Group) error
}
