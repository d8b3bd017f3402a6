package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/internal/response"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

// SessionValidator resolves a session token to a user id.
type SessionValidator interface {
	ValidateSessionToken(ctx context.Context, token string) (string, error)
}

// APIKeyValidator resolves an API key to its owner.
type APIKeyValidator interface {
	ValidateApiKey(ctx context.Context, key string) (*models.User, error)
}

type Middleware struct {
	Sessions        SessionValidator
	APIKeys         APIKeyValidator
	ResponseHandler response.ResponseHandler
}

func NewMiddleware(sessions SessionValidator, apiKeys APIKeyValidator, rh response.ResponseHandler) *Middleware {
	return &Middleware{Sessions: sessions, APIKeys: apiKeys, ResponseHandler: rh}
}

// context key
type contextKey string

const UIDKey contextKey = "uid"

const (
	APIKeyHeader    = "X-API-Key"
	LegacyAuthToken = "x-auth-token"
)

// SessionAuth accepts "Authorization: Bearer <token>" and, for older
// clients, the x-auth-token header. API keys are rejected here.
func (m *Middleware) SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := SessionToken(r)
		if err != nil {
			m.ResponseHandler.HandleError(w, r, err)
			return
		}

		uid, err := m.Sessions.ValidateSessionToken(r.Context(), token)
		if err != nil {
			m.ResponseHandler.HandleError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUID(r.Context(), uid)))
	})
}

// APIKeyAuth authenticates non-interactive clients by the X-API-Key header.
func (m *Middleware) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(APIKeyHeader))
		user, err := m.APIKeys.ValidateApiKey(r.Context(), key)
		if err != nil {
			m.ResponseHandler.HandleError(w, r, err)
			return
		}

		_, ctx := logger.With(r.Context(), "auth", "api_key")
		next.ServeHTTP(w, r.WithContext(withUID(ctx, user.UID)))
	})
}

// SessionToken extracts the session token from a request without
// validating it.
func SessionToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", errs.NewUnauthenticatedError("invalid Authorization header")
		}
		return parts[1], nil
	}
	if token := strings.TrimSpace(r.Header.Get(LegacyAuthToken)); token != "" {
		return token, nil
	}
	return "", errs.NewUnauthenticatedError("missing session token")
}

// withUID stores uid and tags the request logger with it.
func withUID(ctx context.Context, uid string) context.Context {
	_, ctx = logger.With(ctx, "uid", uid)
	return context.WithValue(ctx, UIDKey, uid)
}

// Helper to extract UID
func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}
