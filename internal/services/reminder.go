package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

type reminderStore interface {
	Create(ctx context.Context, r *models.Reminder) error
	Get(ctx context.Context, reminderID string) (*models.Reminder, error)
	ListByUser(ctx context.Context, uid string) ([]*models.Reminder, error)
	Update(ctx context.Context, r *models.Reminder) error
	Delete(ctx context.Context, reminderID string) error
}

type reminderService struct {
	reminders reminderStore
	accounts  accountGetter
	clockNow  func() time.Time
}

func NewReminderService(reminders reminderStore, accounts accountGetter) *reminderService {
	return &reminderService{reminders: reminders, accounts: accounts, clockNow: time.Now}
}

func (s *reminderService) SetReminder(ctx context.Context, uid string, req dto.SetReminderRequest) (*models.Reminder, error) {
	name := strings.TrimSpace(req.Name)
	kind := models.ReminderKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if name == "" {
		return nil, errs.NewValidationError("reminder name is required")
	}
	if !positiveAmount(req.Amount) {
		return nil, errs.NewValidationError("amount must be a positive number")
	}
	if req.Date == nil || req.Date.IsZero() {
		return nil, errs.NewValidationError("reminder date is required")
	}
	if !kind.Valid() {
		return nil, errs.NewValidationError(`type must be "one-time" or "recurring"`)
	}
	if _, err := ownedAccount(ctx, s.accounts, req.AccountID, uid); err != nil {
		return nil, err
	}

	r := &models.Reminder{
		UserID:    uid,
		AccountID: req.AccountID,
		Name:      name,
		Amount:    req.Amount,
		Date:      *req.Date,
		Kind:      kind,
		CreatedAt: s.clockNow(),
	}
	if err := s.reminders.Create(ctx, r); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("reminder created", "reminder_id", r.ID, "type", r.Kind)
	return r, nil
}

// ListReminders returns the caller's reminders, soonest first.
func (s *reminderService) ListReminders(ctx context.Context, uid string) ([]*models.Reminder, error) {
	reminders, err := s.reminders.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(reminders, func(a, b *models.Reminder) int {
		return a.Date.Compare(b.Date)
	})
	return reminders, nil
}

func (s *reminderService) UpdateReminder(ctx context.Context, reminderID, uid string, req dto.UpdateReminderRequest) (*models.Reminder, error) {
	r, err := s.ownedReminder(ctx, reminderID, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errs.NewValidationError("reminder name cannot be empty")
		}
		r.Name = name
	}
	if req.Amount != nil {
		if !positiveAmount(*req.Amount) {
			return nil, errs.NewValidationError("amount must be a positive number")
		}
		r.Amount = *req.Amount
	}
	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, errs.NewValidationError("reminder date cannot be empty")
		}
		r.Date = *req.Date
	}
	if req.Kind != nil {
		kind := models.ReminderKind(strings.ToLower(strings.TrimSpace(*req.Kind)))
		if !kind.Valid() {
			return nil, errs.NewValidationError(`type must be "one-time" or "recurring"`)
		}
		r.Kind = kind
	}

	if err := s.reminders.Update(ctx, r); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("reminder updated", "reminder_id", r.ID)
	return r, nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, reminderID, uid string) error {
	if _, err := s.ownedReminder(ctx, reminderID, uid); err != nil {
		return err
	}
	if err := s.reminders.Delete(ctx, reminderID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("reminder deleted", "reminder_id", reminderID)
	return nil
}

func (s *reminderService) ownedReminder(ctx context.Context, reminderID, uid string) (*models.Reminder, error) {
	if reminderID == "" {
		return nil, errs.NewValidationError("reminder id is required")
	}
	r, err := s.reminders.Get(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(r.UserID, uid, "reminder"); err != nil {
		return nil, err
	}
	return r, nil
}
