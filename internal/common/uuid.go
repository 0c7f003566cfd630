package common

import (
	"strings"

	"github.com/google/uuid"
)

func NewUUID() string {
	return uuid.NewString()
}

// NormalizeID trims surrounding whitespace from a record id taken from user input.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}
