package vacancy

import (
	"context"
)

// Repository exposes the jobs collection. The console core only reads it;
// Save exists for seeding.
type Repository interface {
	Load(ctx context.Context) ([]Vacancy, error)
	Save(ctx context.Context, vacancies []Vacancy) error
}
