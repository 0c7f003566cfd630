package admin

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Credential is the singleton administrator record.
type Credential struct {
	LoginID      string    `json:"loginId"`
	PasswordHash string    `json:"passwordHash"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Complete reports whether a login is present and PasswordHash is a bcrypt
// hash. Records carrying any other hash format count as incomplete.
func (c Credential) Complete() bool {
	if strings.TrimSpace(c.LoginID) == "" {
		return false
	}
	_, err := bcrypt.Cost([]byte(c.PasswordHash))
	return err == nil
}

// Matches reports whether password is the one PasswordHash was built from.
func (c Credential) Matches(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}

type Repository interface {
	// Load returns nil when the record is absent or unreadable.
	Load(ctx context.Context) (*Credential, error)
	Save(ctx context.Context, credential Credential) error
}
