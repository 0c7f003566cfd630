package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"jobmatch/internal/domain/application"
	"jobmatch/internal/domain/company"
	"jobmatch/internal/domain/proposal"
	"jobmatch/internal/domain/user"
	"jobmatch/internal/domain/vacancy"
)

// Snapshot is every collection the console reads, loaded fresh per request.
type Snapshot struct {
	Users        user.Collection
	Companies    company.Collection
	Applications []application.Application
	Proposals    []proposal.Proposal
	Jobs         []vacancy.Vacancy
}

type SnapshotLoader struct {
	normalizer   *Normalizer
	applications application.Repository
	proposals    proposal.Repository
	jobs         vacancy.Repository
}

func NewSnapshotLoader(normalizer *Normalizer, applications application.Repository, proposals proposal.Repository, jobs vacancy.Repository) *SnapshotLoader {
	return &SnapshotLoader{normalizer: normalizer, applications: applications, proposals: proposals, jobs: jobs}
}

// Load reads the collections concurrently. Each goroutine touches a
// different collection, so the normalizer write-backs do not overlap.
func (l *SnapshotLoader) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := l.normalizer.LoadUsers(gctx)
		snap.Users = users
		return err
	})
	g.Go(func() error {
		companies, err := l.normalizer.LoadCompanies(gctx)
		snap.Companies = companies
		return err
	})
	g.Go(func() error {
		items, err := l.applications.Load(gctx)
		snap.Applications = items
		return err
	})
	g.Go(func() error {
		items, err := l.proposals.Load(gctx)
		snap.Proposals = items
		return err
	})
	g.Go(func() error {
		items, err := l.jobs.Load(gctx)
		snap.Jobs = items
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ownerIndex maps a user id to the positions of that user's records in a
// collection slice.
type ownerIndex map[string][]int

func indexApplications(items []application.Application) ownerIndex {
	index := make(ownerIndex)
	for i, item := range items {
		index[item.UserID] = append(index[item.UserID], i)
	}
	return index
}

func indexProposals(items []proposal.Proposal) ownerIndex {
	index := make(ownerIndex)
	for i, item := range items {
		index[item.UserID] = append(index[item.UserID], i)
	}
	return index
}
