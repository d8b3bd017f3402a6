package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/handlers"
	"github.com/GregMSThompson/ledgerpro/internal/middleware"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/internal/response"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

// stubIdentity accepts exactly one session token and one API key.
type stubIdentity struct{}

func (stubIdentity) Register(context.Context, string, string, string) (dto.PublicProfile, error) {
	return dto.PublicProfile{ID: "u1"}, nil
}
func (stubIdentity) Authenticate(context.Context, string, string) (dto.SessionResult, error) {
	return dto.SessionResult{}, errs.NewInvalidCredentialsError()
}
func (stubIdentity) AuthenticateExternal(context.Context, string) (dto.SessionResult, error) {
	return dto.SessionResult{}, errs.NewUnauthenticatedError("external login is not enabled")
}
func (stubIdentity) ValidateSessionToken(_ context.Context, token string) (string, error) {
	if token == "session" {
		return "u1", nil
	}
	return "", errs.NewUnauthenticatedError("invalid or expired session token")
}
func (stubIdentity) ValidateApiKey(_ context.Context, key string) (*models.User, error) {
	switch key {
	case "":
		return nil, errs.NewUnauthenticatedError("missing api key")
	case "apikey":
		return &models.User{UID: "u1"}, nil
	}
	return nil, errs.NewForbiddenError("api key is not recognised")
}
func (stubIdentity) GetApiKey(context.Context, string) (string, error)    { return "apikey", nil }
func (stubIdentity) RotateApiKey(context.Context, string) (string, error) { return "apikey2", nil }

type stubLedger struct{ lastUID string }

func (s *stubLedger) ComputeDashboard(_ context.Context, uid string) (dto.Dashboard, error) {
	s.lastUID = uid
	return dto.Dashboard{UserName: "Ada"}, nil
}
func (s *stubLedger) RecordTransaction(context.Context, string, dto.RecordTransactionRequest) (*models.Transaction, error) {
	return &models.Transaction{ID: "t1"}, nil
}
func (s *stubLedger) DeleteTransaction(context.Context, string, string) error { return nil }
func (s *stubLedger) ContributeToGoal(_ context.Context, goalID, _ string, amount float64) (*models.Goal, error) {
	return &models.Goal{ID: goalID, CurrentAmount: amount}, nil
}
func (s *stubLedger) DeleteAccountCascade(_ context.Context, accountID, _ string) (dto.CascadeResult, error) {
	if accountID != "acc1" {
		return dto.CascadeResult{}, errs.NewNotFoundError("account not found")
	}
	return dto.CascadeResult{}, nil
}

type stubSync struct{ lastUID string }

func (s *stubSync) ImportTransactions(_ context.Context, uid string, req dto.ImportRequest) (dto.ImportResult, error) {
	s.lastUID = uid
	return dto.ImportResult{Imported: len(req.Transactions)}, nil
}

func newTestRouter() (http.Handler, *stubLedger, *stubSync) {
	ledger, sync := &stubLedger{}, &stubSync{}
	rh := response.New()
	deps := &handlers.Deps{
		ResponseHandler: rh,
		IdentitySvc:     stubIdentity{},
		LedgerSvc:       ledger,
		SyncSvc:         sync,
	}
	mw := middleware.NewMiddleware(stubIdentity{}, stubIdentity{}, rh)
	log := slog.New(logger.NewTestHandler(slog.LevelDebug))
	return NewRouter(log, deps, mw), ledger, sync
}

func serve(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRoutes(t *testing.T) {
	h, ledger, sync := newTestRouter()
	session := map[string]string{"Authorization": "Bearer session"}
	apiKey := map[string]string{middleware.APIKeyHeader: "apikey"}

	cases := []struct {
		name    string
		method  string
		path    string
		body    string
		headers map[string]string
		status  int
	}{
		{"health", http.MethodGet, "/", "", nil, http.StatusOK},
		{"signup", http.MethodPost, "/api/auth/signup", `{"name":"a","email":"a@x.com","password":"p"}`, nil, http.StatusCreated},
		{"signin wrong password", http.MethodPost, "/api/auth/signin", `{"email":"a@x.com","password":"p"}`, nil, http.StatusUnauthorized},
		{"verify", http.MethodGet, "/api/auth/verify", "", session, http.StatusOK},
		{"dashboard without token", http.MethodGet, "/api/user/dashboard-data", "", nil, http.StatusUnauthorized},
		{"dashboard", http.MethodGet, "/api/user/dashboard-data", "", session, http.StatusOK},
		{"dashboard with api key", http.MethodGet, "/api/user/dashboard-data", "", map[string]string{"Authorization": "Bearer apikey"}, http.StatusUnauthorized},
		{"record", http.MethodPost, "/api/user/transactions", `{"type":"income","name":"x","amount":1}`, session, http.StatusCreated},
		{"delete tx", http.MethodDelete, "/api/user/transactions/t1", "", session, http.StatusOK},
		{"cascade", http.MethodDelete, "/api/user/accounts/acc1", "", session, http.StatusOK},
		{"cascade missing", http.MethodDelete, "/api/user/accounts/nope", "", session, http.StatusNotFound},
		{"contribute", http.MethodPost, "/api/user/goals/g1/contribute", `{"amount":50}`, session, http.StatusOK},
		{"api key", http.MethodGet, "/api/user/api-key", "", session, http.StatusOK},
		{"sync with session", http.MethodPost, "/api/sync/transactions", `{"transactions":[]}`, session, http.StatusUnauthorized},
		{"sync", http.MethodPost, "/api/sync/transactions", `{"transactions":[{"type":"income","name":"x","amount":1}]}`, apiKey, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(h, tc.method, tc.path, tc.body, tc.headers)
			if rr.Code != tc.status {
				t.Fatalf("%s %s: status = %d, want %d (%s)", tc.method, tc.path, rr.Code, tc.status, rr.Body.String())
			}
		})
	}

	if ledger.lastUID != "u1" || sync.lastUID != "u1" {
		t.Fatalf("uid not propagated: ledger=%q sync=%q", ledger.lastUID, sync.lastUID)
	}
}

func TestRequestIDHeaderIsHonoured(t *testing.T) {
	h, _, _ := newTestRouter()
	rr := serve(h, http.MethodGet, "/", "", map[string]string{"X-Request-Id": "abc"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}
