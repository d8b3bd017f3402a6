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

type identityService interface {
	Register(ctx context.Context, name, email, password string) (dto.PublicProfile, error)
	Authenticate(ctx context.Context, email, password string) (dto.SessionResult, error)
	AuthenticateExternal(ctx context.Context, idToken string) (dto.SessionResult, error)
	ValidateSessionToken(ctx context.Context, token string) (string, error)
	ValidateApiKey(ctx context.Context, key string) (*models.User, error)
	GetApiKey(ctx context.Context, uid string) (string, error)
	RotateApiKey(ctx context.Context, uid string) (string, error)
}

type authHandlers struct {
	ResponseHandler response.ResponseHandler
	IdentitySvc     identityService
}

func NewAuthHandlers(deps *Deps) *authHandlers {
	return &authHandlers{
		ResponseHandler: deps.ResponseHandler,
		IdentitySvc:     deps.IdentitySvc,
	}
}

func (h *authHandlers) AuthRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/signup", h.Signup)
	r.Post("/signin", h.Signin)
	r.Post("/external", h.External)
	r.Get("/verify", h.Verify)
	return r
}

func (h *authHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	profile, err := h.IdentitySvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, profile)
}

func (h *authHandlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SignInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	session, err := h.IdentitySvc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, session)
}

func (h *authHandlers) External(w http.ResponseWriter, r *http.Request) {
	var req dto.ExternalSignInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	session, err := h.IdentitySvc.AuthenticateExternal(r.Context(), req.IDToken)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, session)
}

// Verify reports whether the presented session token is currently valid.
func (h *authHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.SessionToken(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid, err := h.IdentitySvc.ValidateSessionToken(r.Context(), token)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.VerifyResult{Valid: true, UserID: uid})
}
