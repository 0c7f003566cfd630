package company

import (
	"context"
	"time"
)

type Account struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"companyName"`
	ContactName  string    `json:"contactName"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	MemberNumber string    `json:"memberNumber,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Collection maps company id to account.
type Collection map[string]Account

type Repository interface {
	Load(ctx context.Context) (Collection, error)
	Save(ctx context.Context, companies Collection) error
}
