package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"jobmatch/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewValidationError("invalid request", map[string]string{"body": "request body is required"})
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return common.NewValidationError("invalid request", map[string]string{"body": "request body too large"})
		}
		return common.NewValidationError("invalid request", map[string]string{"body": "invalid json"})
	}
	return nil
}

func pathSegments(r *http.Request) []string {
	return strings.Split(strings.Trim(r.URL.Path, "/"), "/")
}

// segment returns the path segment at idx, e.g. idx 2 of /admin/users/u1 is u1.
func segment(r *http.Request, idx int, name string) (string, error) {
	parts := pathSegments(r)
	if idx >= len(parts) || strings.TrimSpace(parts[idx]) == "" {
		return "", common.NewValidationError("invalid request", map[string]string{name: name + " is required"})
	}
	return strings.TrimSpace(parts[idx]), nil
}
