package collection

import (
	"context"

	"jobmatch/internal/domain/admin"
	"jobmatch/internal/observability"
	"jobmatch/internal/storage"
)

var _ admin.Repository = (*AdminRepository)(nil)

type AdminRepository struct {
	codec codec[admin.Credential]
}

func NewAdminRepository(store storage.Store, logger *observability.Logger) *AdminRepository {
	return &AdminRepository{codec: newCodec[admin.Credential](store, storage.CollectionAdmin, logger)}
}

func (r *AdminRepository) Load(ctx context.Context) (*admin.Credential, error) {
	credential, found, err := r.codec.load(ctx)
	if err != nil || !found {
		return nil, err
	}
	return &credential, nil
}

func (r *AdminRepository) Save(ctx context.Context, credential admin.Credential) error {
	return r.codec.save(ctx, credential)
}
