package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter()
	limiter.clock = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if !limiter.Allow("k", 2, time.Minute) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if limiter.Allow("k", 2, time.Minute) {
		t.Fatalf("third request should be rejected")
	}
	if !limiter.Allow("other", 2, time.Minute) {
		t.Fatalf("keys are limited independently")
	}
	now = now.Add(time.Minute + time.Second)
	if !limiter.Allow("k", 2, time.Minute) {
		t.Fatalf("new window should allow again")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter()
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), AdminAuth("key"), RateLimit(limiter, AdminKey("bulk"), 1, time.Minute))

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Admin-Key", "key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}
	if code := do(); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
}

func TestAdminAuth(t *testing.T) {
	handler := AdminAuth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if AdminKeyIDFromContext(r.Context()) == "" {
			t.Errorf("expected admin key id in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	cases := map[string]struct {
		header string
		value  string
		want   int
	}{
		"admin header":  {header: "X-Admin-Key", value: "secret", want: http.StatusOK},
		"bearer":        {header: "Authorization", value: "Bearer secret", want: http.StatusOK},
		"wrong key":     {header: "X-Admin-Key", value: "nope", want: http.StatusUnauthorized},
		"wrong scheme":  {header: "Authorization", value: "Basic secret", want: http.StatusUnauthorized},
		"missing value": {want: http.StatusUnauthorized},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/views/hired", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
