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

type ledgerService interface {
	ComputeDashboard(ctx context.Context, uid string) (dto.Dashboard, error)
	RecordTransaction(ctx context.Context, uid string, req dto.RecordTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID, uid string) error
	ContributeToGoal(ctx context.Context, goalID, uid string, amount float64) (*models.Goal, error)
	DeleteAccountCascade(ctx context.Context, accountID, uid string) (dto.CascadeResult, error)
}

type ledgerHandlers struct {
	ResponseHandler response.ResponseHandler
	LedgerSvc       ledgerService
}

func NewLedgerHandlers(deps *Deps) *ledgerHandlers {
	return &ledgerHandlers{
		ResponseHandler: deps.ResponseHandler,
		LedgerSvc:       deps.LedgerSvc,
	}
}

func (h *ledgerHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.RecordTransaction)
	r.Delete("/{transactionId}", h.DeleteTransaction)
	return r
}

func (h *ledgerHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	dashboard, err := h.LedgerSvc.ComputeDashboard(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dashboard)
}

func (h *ledgerHandlers) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.LedgerSvc.RecordTransaction(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *ledgerHandlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	if err := h.LedgerSvc.DeleteTransaction(r.Context(), transactionID, uid); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *ledgerHandlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	uid := middleware.UID(r.Context())
	res, err := h.LedgerSvc.DeleteAccountCascade(r.Context(), accountID, uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *ledgerHandlers) ContributeToGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalId")
	var req dto.ContributeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	goal, err := h.LedgerSvc.ContributeToGoal(r.Context(), goalID, uid, req.Amount)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}
