package app

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"jobmatch/internal/common"
	"jobmatch/internal/domain/admin"
	"jobmatch/internal/observability"
)

type AdminService struct {
	repo          admin.Repository
	defaultLogin  string
	defaultSecret string
	logger        *observability.Logger
	clock         func() time.Time
	cost          int
}

func NewAdminService(repo admin.Repository, defaultLogin, defaultPassword string, logger *observability.Logger) *AdminService {
	return &AdminService{
		repo:          repo,
		defaultLogin:  defaultLogin,
		defaultSecret: defaultPassword,
		logger:        logger,
		clock:         time.Now,
		cost:          bcrypt.DefaultCost,
	}
}

// EnsureAdmin replaces the administrator record wholesale with the default
// when it is missing, unreadable or incomplete. It reports whether a reset
// happened.
func (s *AdminService) EnsureAdmin(ctx context.Context) (bool, error) {
	current, err := s.repo.Load(ctx)
	if err != nil {
		return false, err
	}
	if current != nil && current.Complete() {
		return false, nil
	}
	login := strings.TrimSpace(s.defaultLogin)
	if login == "" || s.defaultSecret == "" {
		return false, common.NewError(common.CodeInternal, "default admin credential is not configured", nil)
	}
	hash, err := hashPassword(s.defaultSecret, s.cost)
	if err != nil {
		return false, err
	}
	if err := s.repo.Save(ctx, admin.Credential{
		LoginID:      login,
		PasswordHash: hash,
		UpdatedAt:    s.clock().UTC(),
	}); err != nil {
		return false, err
	}
	s.logger.Warn("admin record reset to default", "login", login)
	return true, nil
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to hash admin password", err)
	}
	return string(hash), nil
}
