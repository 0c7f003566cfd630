package app

import (
	"context"
	"strings"
	"time"

	"jobmatch/internal/common"
	"jobmatch/internal/domain/application"
	"jobmatch/internal/domain/pipeline"
	"jobmatch/internal/domain/proposal"
	"jobmatch/internal/domain/user"
	"jobmatch/internal/observability"
)

// PipelineUpdate is a partial update; nil fields are left untouched.
type PipelineUpdate struct {
	Status        *pipeline.Status
	InterviewDate *string
}

func (u PipelineUpdate) empty() bool {
	return u.Status == nil && u.InterviewDate == nil
}

// apply writes the provided fields into a mirrored state and reports whether
// anything changed.
func (u PipelineUpdate) apply(state *pipeline.State) bool {
	changed := false
	if u.Status != nil && state.ProcessStatus != *u.Status {
		state.ProcessStatus = *u.Status
		changed = true
	}
	if u.InterviewDate != nil && state.InterviewDate != *u.InterviewDate {
		state.InterviewDate = *u.InterviewDate
		changed = true
	}
	return changed
}

// copyState returns a mirror func that overwrites a copy with the account's
// full state, so drifted fields are healed even when the update is partial.
func copyState(target pipeline.State) func(*pipeline.State) bool {
	return func(state *pipeline.State) bool {
		if *state == target {
			return false
		}
		*state = target
		return true
	}
}

// ResolveOutcome tells how the account behind a pipeline update was obtained.
type ResolveOutcome string

const (
	ResolveFound         ResolveOutcome = "found"
	ResolveReconstructed ResolveOutcome = "reconstructed"
	ResolveNotFound      ResolveOutcome = "not_found"
)

type SyncResult struct {
	UserID              string         `json:"userId"`
	Outcome             ResolveOutcome `json:"outcome"`
	Account             *user.Account  `json:"account,omitempty"`
	ApplicationsUpdated int            `json:"applicationsUpdated"`
	ProposalsUpdated    int            `json:"proposalsUpdated"`
}

// PipelineService keeps a seeker's pipeline state identical across the
// users, applications and proposals collections.
type PipelineService struct {
	users        user.Repository
	applications application.Repository
	proposals    proposal.Repository
	members      *MemberNumberGenerator
	logger       *observability.Logger
	clock        func() time.Time
}

func NewPipelineService(users user.Repository, applications application.Repository, proposals proposal.Repository, members *MemberNumberGenerator, logger *observability.Logger) *PipelineService {
	return &PipelineService{
		users:        users,
		applications: applications,
		proposals:    proposals,
		members:      members,
		logger:       logger,
		clock:        time.Now,
	}
}

// SetPipelineState applies update to the user's account and copies the
// account's resulting state to every application and proposal owned by the
// user. Without an account only the provided fields are written to the
// copies. The three collections are persisted one after another; a failure
// stops the sequence and leaves earlier writes in place.
func (s *PipelineService) SetPipelineState(ctx context.Context, userID string, update PipelineUpdate) (*SyncResult, error) {
	userID = common.NormalizeID(userID)
	if userID == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"userId": "userId is required"})
	}
	if update.empty() {
		return nil, common.NewValidationError("invalid request", map[string]string{"processStatus": "processStatus or interviewDate is required"})
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, common.NewValidationError("invalid process status", map[string]string{"processStatus": "processStatus must be INTERVIEW_SCHEDULED, INTERVIEW_COMPLETED, HIRED, or empty"})
	}
	if update.InterviewDate != nil {
		trimmed := strings.TrimSpace(*update.InterviewDate)
		update.InterviewDate = &trimmed
	}

	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.Load(ctx)
	if err != nil {
		return nil, err
	}
	props, err := s.proposals.Load(ctx)
	if err != nil {
		return nil, err
	}
	appIndex := indexApplications(apps)
	propIndex := indexProposals(props)

	account, outcome := s.ReconstructFromEvidence(users, apps, props, appIndex, propIndex, userID)
	result := &SyncResult{UserID: userID, Outcome: outcome}

	if outcome != ResolveNotFound {
		update.apply(&account.State)
		if update.Status != nil && *update.Status == pipeline.StatusHired {
			hiredAt := s.clock().UTC()
			account.HiredAt = &hiredAt
		}
		users[userID] = account
		if err := s.users.Save(ctx, users); err != nil {
			return nil, err
		}
		result.Account = &account
	}

	mirror := update.apply
	if outcome != ResolveNotFound {
		mirror = copyState(account.State)
	}
	for _, i := range appIndex[userID] {
		if mirror(&apps[i].State) {
			result.ApplicationsUpdated++
		}
	}
	if err := s.applications.Save(ctx, apps); err != nil {
		return nil, err
	}

	for _, i := range propIndex[userID] {
		if mirror(&props[i].State) {
			result.ProposalsUpdated++
		}
	}
	if err := s.proposals.Save(ctx, props); err != nil {
		return nil, err
	}

	s.logger.Info("pipeline state synchronized",
		"user_id", userID,
		"outcome", string(outcome),
		"applications_updated", result.ApplicationsUpdated,
		"proposals_updated", result.ProposalsUpdated,
	)
	return result, nil
}

// ReconstructFromEvidence returns the user's account when it exists. When it
// does not, it synthesizes one from the first application (preferred) or
// proposal owned by the user, with a placeholder INTERVIEW_SCHEDULED status.
// The synthesized account is not persisted here.
func (s *PipelineService) ReconstructFromEvidence(users user.Collection, apps []application.Application, props []proposal.Proposal, appIndex, propIndex ownerIndex, userID string) (user.Account, ResolveOutcome) {
	if account, ok := users[userID]; ok {
		return account, ResolveFound
	}
	account := user.Account{
		ID:        userID,
		State:     pipeline.State{ProcessStatus: pipeline.StatusInterviewScheduled},
		CreatedAt: s.clock().UTC(),
	}
	switch {
	case len(appIndex[userID]) > 0:
		evidence := apps[appIndex[userID][0]]
		account.Name = evidence.ApplicantName
		account.Phone = evidence.ApplicantPhone
		account.Email = evidence.ApplicantEmail
	case len(propIndex[userID]) > 0:
		evidence := props[propIndex[userID][0]]
		account.Name = evidence.UserName
	default:
		return user.Account{}, ResolveNotFound
	}
	if s.members != nil {
		account.MemberNumber = s.members.Next()
	}
	s.logger.Warn("user account reconstructed from evidence", "user_id", userID)
	return account, ResolveReconstructed
}
