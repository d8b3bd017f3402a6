package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/internal/response"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

type stubSessions struct {
	valid    map[string]string
	gotToken string
}

func (s *stubSessions) ValidateSessionToken(_ context.Context, token string) (string, error) {
	s.gotToken = token
	if uid, ok := s.valid[token]; ok {
		return uid, nil
	}
	return "", errs.NewUnauthenticatedError("invalid or expired session token")
}

type stubAPIKeys struct {
	valid map[string]string
}

func (s *stubAPIKeys) ValidateApiKey(_ context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, errs.NewUnauthenticatedError("missing api key")
	}
	if uid, ok := s.valid[key]; ok {
		return &models.User{UID: uid}, nil
	}
	return nil, errs.NewForbiddenError("api key is not recognised")
}

func newTestMiddleware() (*Middleware, *stubSessions) {
	sessions := &stubSessions{valid: map[string]string{"good-session": "u1"}}
	keys := &stubAPIKeys{valid: map[string]string{"good-key": "u2"}}
	return NewMiddleware(sessions, keys, response.New()), sessions
}

func captureUID(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = UID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestSessionAuth(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		status  int
		uid     string
	}{
		{"bearer", map[string]string{"Authorization": "Bearer good-session"}, http.StatusNoContent, "u1"},
		{"lowercase scheme", map[string]string{"Authorization": "bearer good-session"}, http.StatusNoContent, "u1"},
		{"legacy header", map[string]string{"x-auth-token": "good-session"}, http.StatusNoContent, "u1"},
		{"missing", nil, http.StatusUnauthorized, ""},
		{"malformed", map[string]string{"Authorization": "Token good-session"}, http.StatusUnauthorized, ""},
		{"expired", map[string]string{"Authorization": "Bearer stale"}, http.StatusUnauthorized, ""},
		{"api key as session", map[string]string{"Authorization": "Bearer good-key"}, http.StatusUnauthorized, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestMiddleware()
			var uid string
			req := httptest.NewRequest(http.MethodGet, "/api/user/dashboard-data", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()

			m.SessionAuth(captureUID(&uid)).ServeHTTP(rr, req)

			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tc.status, rr.Body.String())
			}
			if uid != tc.uid {
				t.Fatalf("uid = %q, want %q", uid, tc.uid)
			}
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		status int
		uid    string
	}{
		{"valid", "good-key", http.StatusNoContent, "u2"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"unknown", "nope", http.StatusForbidden, ""},
		{"session as key", "good-session", http.StatusForbidden, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestMiddleware()
			var uid string
			req := httptest.NewRequest(http.MethodPost, "/api/sync/transactions", nil)
			if tc.key != "" {
				req.Header.Set(APIKeyHeader, tc.key)
			}
			rr := httptest.NewRecorder()

			m.APIKeyAuth(captureUID(&uid)).ServeHTTP(rr, req)

			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			if uid != tc.uid {
				t.Fatalf("uid = %q, want %q", uid, tc.uid)
			}
		})
	}
}

func TestSessionAuthTagsLoggerWithUID(t *testing.T) {
	m, _ := newTestMiddleware()
	var buf bytes.Buffer
	base := slog.New(logger.NewCloudRunHandlerTo(&buf, slog.LevelInfo))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.ToContext(req.Context(), base))
	req.Header.Set("Authorization", "Bearer good-session")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("inside")
	})
	m.SessionAuth(next).ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), `"uid":"u1"`) {
		t.Fatalf("expected uid on request logger, got %q", buf.String())
	}
}
