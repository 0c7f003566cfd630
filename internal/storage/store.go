package storage

import (
	"context"
)

// Collection names shared by every backend.
const (
	CollectionUsers        = "users"
	CollectionCompanies    = "companies"
	CollectionApplications = "applications"
	CollectionProposals    = "proposals"
	CollectionJobs         = "jobs"
	CollectionAdmin        = "admin"
)

// Collections lists every collection the console reads or writes.
var Collections = []string{
	CollectionUsers,
	CollectionCompanies,
	CollectionApplications,
	CollectionProposals,
	CollectionJobs,
	CollectionAdmin,
}

// Store keeps one serialized blob per collection name. It never inspects the
// bytes; decoding and validation belong to the repositories above it.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, bool, error)
	Save(ctx context.Context, name string, blob []byte) error
}
