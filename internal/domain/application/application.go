package application

import (
	"context"
	"strings"
	"time"

	"jobmatch/internal/domain/pipeline"
)

// Status is the review state of an application, owned by the administrator.
type Status string

const (
	StatusPending  Status = "pending"
	StatusViewed   Status = "viewed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Application is one job seeker's submission to one job posting. The
// applicant fields are captured at apply time; only profile edits of the
// owning account refresh name and phone.
type Application struct {
	ID             string `json:"id"`
	JobID          string `json:"jobId"`
	UserID         string `json:"userId"`
	ApplicantName  string `json:"applicantName"`
	ApplicantPhone string `json:"applicantPhone"`
	ApplicantEmail string `json:"applicantEmail"`
	Status         Status `json:"status"`
	Memo           string `json:"memo,omitempty"`
	pipeline.State
	CreatedAt time.Time `json:"createdAt"`
}

func NormalizeStatus(status Status) Status {
	normalized := Status(strings.ToLower(strings.TrimSpace(string(status))))
	if normalized == "" {
		return StatusPending
	}
	return normalized
}

func IsKnownStatus(status Status) bool {
	switch status {
	case StatusPending, StatusViewed, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

type Repository interface {
	Load(ctx context.Context) ([]Application, error)
	Save(ctx context.Context, applications []Application) error
}
