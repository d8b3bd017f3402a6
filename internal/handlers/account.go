package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/middleware"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/internal/response"
)

type accountService interface {
	AddAccount(ctx context.Context, uid string, req dto.AddAccountRequest) (*models.Account, error)
	ListAccounts(ctx context.Context, uid string) ([]*models.Account, error)
	UpdateAccount(ctx context.Context, accountID, uid string, req dto.UpdateAccountRequest) (*models.Account, error)
}

type accountHandlers struct {
	ResponseHandler response.ResponseHandler
	AccountSvc      accountService
	ledger          *ledgerHandlers
}

func NewAccountHandlers(deps *Deps) *accountHandlers {
	return &accountHandlers{
		ResponseHandler: deps.ResponseHandler,
		AccountSvc:      deps.AccountSvc,
		ledger:          NewLedgerHandlers(deps),
	}
}

func (h *accountHandlers) AccountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.AddAccount)
	r.Get("/", h.ListAccounts)
	r.Put("/{accountId}", h.UpdateAccount)
	r.Delete("/{accountId}", h.ledger.DeleteAccount)
	return r
}

func (h *accountHandlers) AddAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.AddAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	account, err := h.AccountSvc.AddAccount(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, account)
}

func (h *accountHandlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	accounts, err := h.AccountSvc.ListAccounts(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *accountHandlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	var req dto.UpdateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	account, err := h.AccountSvc.UpdateAccount(r.Context(), accountID, uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, account)
}
