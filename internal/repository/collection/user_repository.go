package collection

import (
	"context"

	"jobmatch/internal/domain/user"
	"jobmatch/internal/observability"
	"jobmatch/internal/storage"
)

var _ user.Repository = (*UserRepository)(nil)

type UserRepository struct {
	codec codec[user.Collection]
}

func NewUserRepository(store storage.Store, logger *observability.Logger) *UserRepository {
	return &UserRepository{codec: newCodec[user.Collection](store, storage.CollectionUsers, logger)}
}

func (r *UserRepository) Load(ctx context.Context) (user.Collection, error) {
	users, _, err := r.codec.load(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = user.Collection{}
	}
	// Older blobs may omit the id inside the record; the map key is authoritative.
	for id, account := range users {
		if account.ID != id {
			account.ID = id
			users[id] = account
		}
	}
	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, users user.Collection) error {
	if users == nil {
		users = user.Collection{}
	}
	return r.codec.save(ctx, users)
}
