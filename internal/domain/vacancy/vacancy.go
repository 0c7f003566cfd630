package vacancy

import (
	"time"
)

// Vacancy is a job posting. CompanyName is the snapshot written when the
// posting was created and may be empty for older postings.
type Vacancy struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	CompanyName string    `json:"companyName,omitempty"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
