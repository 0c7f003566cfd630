package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"jobmatch/internal/domain/company"
	"jobmatch/internal/domain/user"
	"jobmatch/internal/observability"
)

// MemberNumberGenerator produces human-readable member numbers of the form
// M + YYMMDD + four random digits. Numbers are not checked for uniqueness.
type MemberNumberGenerator struct {
	clock func() time.Time
	intn  func(n int) int
}

func NewMemberNumberGenerator() *MemberNumberGenerator {
	return &MemberNumberGenerator{clock: time.Now, intn: rand.Intn}
}

func (g *MemberNumberGenerator) Next() string {
	return fmt.Sprintf("M%s%04d", g.clock().Format("060102"), g.intn(10000))
}

// Normalizer backfills derived fields whenever users or companies are loaded.
type Normalizer struct {
	users     user.Repository
	companies company.Repository
	members   *MemberNumberGenerator
	logger    *observability.Logger
}

func NewNormalizer(users user.Repository, companies company.Repository, members *MemberNumberGenerator, logger *observability.Logger) *Normalizer {
	return &Normalizer{users: users, companies: companies, members: members, logger: logger}
}

// LoadUsers loads the users collection, assigns a member number to every
// account without one and writes the collection back even when nothing
// changed.
func (n *Normalizer) LoadUsers(ctx context.Context) (user.Collection, error) {
	users, err := n.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	backfilled := 0
	for id, account := range users {
		if account.MemberNumber != "" {
			continue
		}
		account.MemberNumber = n.members.Next()
		users[id] = account
		backfilled++
	}
	if err := n.users.Save(ctx, users); err != nil {
		return nil, err
	}
	if backfilled > 0 {
		n.logger.Info("member numbers backfilled", "collection", "users", "count", backfilled)
	}
	return users, nil
}

// LoadCompanies is LoadUsers for the companies collection.
func (n *Normalizer) LoadCompanies(ctx context.Context) (company.Collection, error) {
	companies, err := n.companies.Load(ctx)
	if err != nil {
		return nil, err
	}
	backfilled := 0
	for id, account := range companies {
		if account.MemberNumber != "" {
			continue
		}
		account.MemberNumber = n.members.Next()
		companies[id] = account
		backfilled++
	}
	if err := n.companies.Save(ctx, companies); err != nil {
		return nil, err
	}
	if backfilled > 0 {
		n.logger.Info("member numbers backfilled", "collection", "companies", "count", backfilled)
	}
	return companies, nil
}
