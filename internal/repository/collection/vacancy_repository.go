package collection

import (
	"context"

	"jobmatch/internal/domain/vacancy"
	"jobmatch/internal/observability"
	"jobmatch/internal/storage"
)

var _ vacancy.Repository = (*VacancyRepository)(nil)

type VacancyRepository struct {
	codec codec[[]vacancy.Vacancy]
}

func NewVacancyRepository(store storage.Store, logger *observability.Logger) *VacancyRepository {
	return &VacancyRepository{codec: newCodec[[]vacancy.Vacancy](store, storage.CollectionJobs, logger)}
}

func (r *VacancyRepository) Load(ctx context.Context) ([]vacancy.Vacancy, error) {
	items, _, err := r.codec.load(ctx)
	return items, err
}

func (r *VacancyRepository) Save(ctx context.Context, vacancies []vacancy.Vacancy) error {
	if vacancies == nil {
		vacancies = []vacancy.Vacancy{}
	}
	return r.codec.save(ctx, vacancies)
}
