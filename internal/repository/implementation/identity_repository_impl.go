package implementation

import (
	"kj-canvas-be/internal/repository/contract"
	"kj-canvas-be/internal/storage"
)

type IdentityRepositoryImpl struct {
	store storage.Store
}

func NewIdentityRepository(store storage.Store) contract.IdentityRepository {
	return &IdentityRepositoryImpl{store: store}
}

func (r *IdentityRepositoryImpl) GetOrCreateUserId() (string, error) {
	if data, found := r.store.Read(storage.KeyUserId); found && len(data) > 0 {
		return string(data), nil
	}

	userId := "user_" + newRecordId()
	if err := r.store.Write(storage.KeyUserId, []byte(userId)); err != nil {
		return "", err
	}
	return userId, nil
}

func (r *IdentityRepositoryImpl) Clear() error {
	return r.store.Delete(storage.KeyUserId)
}
