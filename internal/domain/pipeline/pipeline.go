package pipeline

import "strings"

// Status is a job seeker's recruitment stage. The zero value means unset.
type Status string

const (
	StatusUnset              Status = ""
	StatusInterviewScheduled Status = "INTERVIEW_SCHEDULED"
	StatusInterviewCompleted Status = "INTERVIEW_COMPLETED"
	StatusHired              Status = "HIRED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnset, StatusInterviewScheduled, StatusInterviewCompleted, StatusHired:
		return true
	default:
		return false
	}
}

// ParseStatus accepts any casing and surrounding whitespace.
func ParseStatus(value string) (Status, bool) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	return status, status.Valid()
}

// State is the pair of pipeline fields mirrored on accounts, applications and proposals.
type State struct {
	ProcessStatus Status `json:"processStatus,omitempty"`
	InterviewDate string `json:"interviewDate,omitempty"`
}
