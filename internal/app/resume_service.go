package app

import (
	"context"
	"strings"

	"jobmatch/internal/common"
	"jobmatch/internal/domain/application"
	"jobmatch/internal/domain/user"
	"jobmatch/internal/observability"
)

type ResumeSource string

const (
	ResumeFromAccount     ResumeSource = "account"
	ResumeFromApplication ResumeSource = "application"
)

// Resume is the best identity snapshot available for a user. When Source is
// ResumeFromApplication the account is a stub that exists only in memory.
type Resume struct {
	Source  ResumeSource `json:"source"`
	Account user.Account `json:"account"`
}

// ProfileChanges is a partial profile edit; nil fields are left untouched.
type ProfileChanges struct {
	Name  *string
	Phone *string
	Email *string
}

type ProfileUpdateResult struct {
	Account             user.Account `json:"account"`
	ApplicationsUpdated int          `json:"applicationsUpdated"`
}

type ResumeService struct {
	users        user.Repository
	applications application.Repository
	logger       *observability.Logger
}

func NewResumeService(users user.Repository, applications application.Repository, logger *observability.Logger) *ResumeService {
	return &ResumeService{users: users, applications: applications, logger: logger}
}

// Resolve returns the user's account or, failing that, a stub built from the
// user's first application. It never writes.
func (s *ResumeService) Resolve(ctx context.Context, userID string) (*Resume, error) {
	userID = common.NormalizeID(userID)
	if userID == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"userId": "userId is required"})
	}
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	if account, ok := users[userID]; ok {
		return &Resume{Source: ResumeFromAccount, Account: account}, nil
	}
	apps, err := s.applications.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range apps {
		if item.UserID != userID {
			continue
		}
		return &Resume{Source: ResumeFromApplication, Account: user.Account{
			ID:    userID,
			Name:  item.ApplicantName,
			Phone: item.ApplicantPhone,
			Email: item.ApplicantEmail,
		}}, nil
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

// UpdateProfile edits an existing account and carries name and phone forward
// into the user's applications. Proposal snapshots are deliberately left as
// they were when the proposal was made.
func (s *ResumeService) UpdateProfile(ctx context.Context, userID string, changes ProfileChanges) (*ProfileUpdateResult, error) {
	userID = common.NormalizeID(userID)
	if userID == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"userId": "userId is required"})
	}
	fields := map[string]string{}
	if changes.Name != nil && strings.TrimSpace(*changes.Name) == "" {
		fields["name"] = "name must not be empty"
	}
	if changes.Phone != nil && strings.TrimSpace(*changes.Phone) == "" {
		fields["phone"] = "phone must not be empty"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid profile", fields)
	}

	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	account, ok := users[userID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	if changes.Name != nil {
		account.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Phone != nil {
		account.Phone = strings.TrimSpace(*changes.Phone)
	}
	if changes.Email != nil {
		account.Email = strings.TrimSpace(*changes.Email)
	}
	users[userID] = account
	if err := s.users.Save(ctx, users); err != nil {
		return nil, err
	}

	result := &ProfileUpdateResult{Account: account}
	if changes.Name == nil && changes.Phone == nil {
		return result, nil
	}
	apps, err := s.applications.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if apps[i].UserID != userID {
			continue
		}
		changed := false
		if changes.Name != nil && apps[i].ApplicantName != account.Name {
			apps[i].ApplicantName = account.Name
			changed = true
		}
		if changes.Phone != nil && apps[i].ApplicantPhone != account.Phone {
			apps[i].ApplicantPhone = account.Phone
			changed = true
		}
		if changed {
			result.ApplicationsUpdated++
		}
	}
	if result.ApplicationsUpdated > 0 {
		if err := s.applications.Save(ctx, apps); err != nil {
			return nil, err
		}
	}
	s.logger.Info("profile updated", "user_id", userID, "applications_updated", result.ApplicationsUpdated)
	return result, nil
}
