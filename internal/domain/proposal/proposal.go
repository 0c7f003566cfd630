package proposal

import (
	"context"
	"strings"
	"time"

	"jobmatch/internal/domain/pipeline"
)

type Type string

const (
	TypeHiring    Type = "HIRING"
	TypeInterview Type = "INTERVIEW"
)

// Status is the administrator-mediated approval of a proposal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Proposal is a company-initiated contact with a job seeker. CompanyName and
// UserName are snapshots taken when the proposal was created and are never
// refreshed from the live accounts.
type Proposal struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	Type        Type   `json:"type"`
	Status      Status `json:"status"`
	pipeline.State
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeStatus upper-cases status; a missing status reads as pending.
func NormalizeStatus(status Status) Status {
	normalized := Status(strings.ToUpper(strings.TrimSpace(string(status))))
	if normalized == "" {
		return StatusPending
	}
	return normalized
}

func IsKnownStatus(status Status) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

type Repository interface {
	Load(ctx context.Context) ([]Proposal, error)
	Save(ctx context.Context, proposals []Proposal) error
}
