package collection

import (
	"context"

	"jobmatch/internal/domain/company"
	"jobmatch/internal/observability"
	"jobmatch/internal/storage"
)

var _ company.Repository = (*CompanyRepository)(nil)

type CompanyRepository struct {
	codec codec[company.Collection]
}

func NewCompanyRepository(store storage.Store, logger *observability.Logger) *CompanyRepository {
	return &CompanyRepository{codec: newCodec[company.Collection](store, storage.CollectionCompanies, logger)}
}

func (r *CompanyRepository) Load(ctx context.Context) (company.Collection, error) {
	companies, _, err := r.codec.load(ctx)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = company.Collection{}
	}
	for id, account := range companies {
		if account.ID != id {
			account.ID = id
			companies[id] = account
		}
	}
	return companies, nil
}

func (r *CompanyRepository) Save(ctx context.Context, companies company.Collection) error {
	if companies == nil {
		companies = company.Collection{}
	}
	return r.codec.save(ctx, companies)
}
