package handlers

import (
	"context"
	"net/http"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/middleware"
	"github.com/GregMSThompson/ledgerpro/internal/response"
)

type syncService interface {
	ImportTransactions(ctx context.Context, uid string, req dto.ImportRequest) (dto.ImportResult, error)
}

type syncHandlers struct {
	ResponseHandler response.ResponseHandler
	SyncSvc         syncService
}

func NewSyncHandlers(deps *Deps) *syncHandlers {
	return &syncHandlers{
		ResponseHandler: deps.ResponseHandler,
		SyncSvc:         deps.SyncSvc,
	}
}

// ImportTransactions serves the API-key sync client.
func (h *syncHandlers) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.SyncSvc.ImportTransactions(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}
