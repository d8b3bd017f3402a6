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

type reminderService interface {
	SetReminder(ctx context.Context, uid string, req dto.SetReminderRequest) (*models.Reminder, error)
	ListReminders(ctx context.Context, uid string) ([]*models.Reminder, error)
	UpdateReminder(ctx context.Context, reminderID, uid string, req dto.UpdateReminderRequest) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, reminderID, uid string) error
}

type reminderHandlers struct {
	ResponseHandler response.ResponseHandler
	ReminderSvc     reminderService
}

func NewReminderHandlers(deps *Deps) *reminderHandlers {
	return &reminderHandlers{
		ResponseHandler: deps.ResponseHandler,
		ReminderSvc:     deps.ReminderSvc,
	}
}

func (h *reminderHandlers) ReminderRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.SetReminder)
	r.Get("/", h.ListReminders)
	r.Put("/{reminderId}", h.UpdateReminder)
	r.Delete("/{reminderId}", h.DeleteReminder)
	return r
}

func (h *reminderHandlers) SetReminder(w http.ResponseWriter, r *http.Request) {
	var req dto.SetReminderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	reminder, err := h.ReminderSvc.SetReminder(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, reminder)
}

func (h *reminderHandlers) ListReminders(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	reminders, err := h.ReminderSvc.ListReminders(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, reminders)
}

func (h *reminderHandlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	reminderID := chi.URLParam(r, "reminderId")
	var req dto.UpdateReminderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	reminder, err := h.ReminderSvc.UpdateReminder(r.Context(), reminderID, uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, reminder)
}

func (h *reminderHandlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	reminderID := chi.URLParam(r, "reminderId")
	uid := middleware.UID(r.Context())
	if err := h.ReminderSvc.DeleteReminder(r.Context(), reminderID, uid); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
