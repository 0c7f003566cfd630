package collection

import (
	"context"

	"jobmatch/internal/domain/application"
	"jobmatch/internal/observability"
	"jobmatch/internal/storage"
)

var _ application.Repository = (*ApplicationRepository)(nil)

type ApplicationRepository struct {
	codec codec[[]application.Application]
}

func NewApplicationRepository(store storage.Store, logger *observability.Logger) *ApplicationRepository {
	return &ApplicationRepository{codec: newCodec[[]application.Application](store, storage.CollectionApplications, logger)}
}

func (r *ApplicationRepository) Load(ctx context.Context) ([]application.Application, error) {
	items, _, err := r.codec.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Status = application.NormalizeStatus(items[i].Status)
	}
	return items, nil
}

func (r *ApplicationRepository) Save(ctx context.Context, applications []application.Application) error {
	if applications == nil {
		applications = []application.Application{}
	}
	return r.codec.save(ctx, applications)
}
