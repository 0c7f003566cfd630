package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jobmatch/internal/domain/application"
	"jobmatch/internal/domain/company"
	"jobmatch/internal/domain/proposal"
	"jobmatch/internal/domain/user"
	"jobmatch/internal/domain/vacancy"
	"jobmatch/internal/observability"
	"jobmatch/internal/repository/collection"
	"jobmatch/internal/storage/memory"
)

type fixture struct {
	store        *memory.Store
	users        *collection.UserRepository
	companies    *collection.CompanyRepository
	applications *collection.ApplicationRepository
	proposals    *collection.ProposalRepository
	jobs         *collection.VacancyRepository
	admins       *collection.AdminRepository

	now     time.Time
	members *MemberNumberGenerator

	normalizer *Normalizer
	pipeline   *PipelineService
	views      *ViewService
	selections *SelectionService
	resumes    *ResumeService
	adminSvc   *AdminService
	console    *Console
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := observability.NewNop()
	store := memory.NewStore()
	f := &fixture{
		store:        store,
		users:        collection.NewUserRepository(store, logger),
		companies:    collection.NewCompanyRepository(store, logger),
		applications: collection.NewApplicationRepository(store, logger),
		proposals:    collection.NewProposalRepository(store, logger),
		jobs:         collection.NewVacancyRepository(store, logger),
		admins:       collection.NewAdminRepository(store, logger),
		now:          time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }
	var next atomic.Int64
	f.members = &MemberNumberGenerator{clock: clock, intn: func(n int) int {
		return int(next.Add(1)) % n
	}}

	f.normalizer = NewNormalizer(f.users, f.companies, f.members, logger)
	f.pipeline = NewPipelineService(f.users, f.applications, f.proposals, f.members, logger)
	f.pipeline.clock = clock
	f.views = NewViewService(NewSnapshotLoader(f.normalizer, f.applications, f.proposals, f.jobs))
	f.selections = NewSelectionService(f.views, f.users, f.applications, f.proposals, logger)
	f.resumes = NewResumeService(f.users, f.applications, logger)
	f.adminSvc = NewAdminService(f.admins, "admin", "s3cret", logger)
	f.adminSvc.clock = clock
	f.adminSvc.cost = bcrypt.MinCost
	f.console = NewConsole(f.pipeline, f.views, f.selections, f.resumes, f.normalizer, f.adminSvc, logger)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) seedUsers(t *testing.T, accounts ...user.Account) {
	t.Helper()
	users := user.Collection{}
	for _, account := range accounts {
		users[account.ID] = account
	}
	if err := f.users.Save(context.Background(), users); err != nil {
		t.Fatalf("seed users: %v", err)
	}
}

func (f *fixture) seedCompanies(t *testing.T, accounts ...company.Account) {
	t.Helper()
	companies := company.Collection{}
	for _, account := range accounts {
		companies[account.ID] = account
	}
	if err := f.companies.Save(context.Background(), companies); err != nil {
		t.Fatalf("seed companies: %v", err)
	}
}

func (f *fixture) seedApplications(t *testing.T, items ...application.Application) {
	t.Helper()
	if err := f.applications.Save(context.Background(), items); err != nil {
		t.Fatalf("seed applications: %v", err)
	}
}

func (f *fixture) seedProposals(t *testing.T, items ...proposal.Proposal) {
	t.Helper()
	if err := f.proposals.Save(context.Background(), items); err != nil {
		t.Fatalf("seed proposals: %v", err)
	}
}

func (f *fixture) seedJobs(t *testing.T, items ...vacancy.Vacancy) {
	t.Helper()
	if err := f.jobs.Save(context.Background(), items); err != nil {
		t.Fatalf("seed jobs: %v", err)
	}
}

func (f *fixture) loadUsers(t *testing.T) user.Collection {
	t.Helper()
	users, err := f.users.Load(context.Background())
	if err != nil {
		t.Fatalf("load users: %v", err)
	}
	return users
}

func (f *fixture) loadApplications(t *testing.T) []application.Application {
	t.Helper()
	items, err := f.applications.Load(context.Background())
	if err != nil {
		t.Fatalf("load applications: %v", err)
	}
	return items
}

func (f *fixture) loadProposals(t *testing.T) []proposal.Proposal {
	t.Helper()
	items, err := f.proposals.Load(context.Background())
	if err != nil {
		t.Fatalf("load proposals: %v", err)
	}
	return items
}
