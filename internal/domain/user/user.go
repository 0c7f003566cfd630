package user

import (
	"context"
	"time"

	"jobmatch/internal/domain/pipeline"
)

// Account is a job seeker. Its pipeline state is authoritative; applications
// and proposals carry copies of it.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	MemberNumber string `json:"memberNumber,omitempty"`
	pipeline.State
	// HiredAt is refreshed on every transition into HIRED and kept when leaving it.
	HiredAt   *time.Time `json:"hiredAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (a Account) Hired() bool {
	return a.ProcessStatus == pipeline.StatusHired
}

// Collection maps user id to account.
type Collection map[string]Account

type Repository interface {
	Load(ctx context.Context) (Collection, error)
	Save(ctx context.Context, users Collection) error
}
