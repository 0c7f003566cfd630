package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"jobmatch/internal/common"
	"jobmatch/internal/http/response"
)

type contextKey string

const (
	adminKeyHeader                = "X-Admin-Key"
	authorizationHeader           = "Authorization"
	ContextAdminKeyID  contextKey = "admin_key_id"
)

// AdminAuth accepts either X-Admin-Key: <key> or Authorization: Bearer <key>.
// An empty configured key rejects every request.
func AdminAuth(apiKey string) Middleware {
	key := strings.TrimSpace(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				response.Error(w, errUnauthorized())
				return
			}
			provided := strings.TrimSpace(r.Header.Get(adminKeyHeader))
			if provided == "" {
				parts := strings.SplitN(r.Header.Get(authorizationHeader), " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					provided = strings.TrimSpace(parts[1])
				}
			}
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				response.Error(w, errUnauthorized())
				return
			}
			ctx := context.WithValue(r.Context(), ContextAdminKeyID, keyID(provided))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminKeyIDFromContext returns a short fingerprint of the admin key that
// authenticated the request.
func AdminKeyIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextAdminKeyID).(string)
	return id
}

func keyID(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "unauthorized", nil)
}
