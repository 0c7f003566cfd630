package collection

import (
	"context"

	"jobmatch/internal/domain/proposal"
	"jobmatch/internal/observability"
	"jobmatch/internal/storage"
)

var _ proposal.Repository = (*ProposalRepository)(nil)

type ProposalRepository struct {
	codec codec[[]proposal.Proposal]
}

func NewProposalRepository(store storage.Store, logger *observability.Logger) *ProposalRepository {
	return &ProposalRepository{codec: newCodec[[]proposal.Proposal](store, storage.CollectionProposals, logger)}
}

func (r *ProposalRepository) Load(ctx context.Context) ([]proposal.Proposal, error) {
	items, _, err := r.codec.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Status = proposal.NormalizeStatus(items[i].Status)
	}
	return items, nil
}

func (r *ProposalRepository) Save(ctx context.Context, proposals []proposal.Proposal) error {
	if proposals == nil {
		proposals = []proposal.Proposal{}
	}
	return r.codec.save(ctx, proposals)
}
