package handlers

import (
	"net/http"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/middleware"
	"github.com/GregMSThompson/ledgerpro/internal/response"
)

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	IdentitySvc     identityService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		IdentitySvc:     deps.IdentitySvc,
	}
}

func (h *userHandlers) GetAPIKey(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	key, err := h.IdentitySvc.GetApiKey(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.APIKeyResult{APIKey: key})
}

func (h *userHandlers) RotateAPIKey(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	key, err := h.IdentitySvc.RotateApiKey(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.APIKeyResult{APIKey: key})
}
