package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
)

type reminderStore struct {
	client *firestore.Client
}

func NewReminderStore(client *firestore.Client) *reminderStore {
	return &reminderStore{client: client}
}

func (s *reminderStore) collection() *firestore.CollectionRef {
	return s.client.Collection(remindersCollection)
}

func (s *reminderStore) Create(ctx context.Context, r *models.Reminder) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if _, err := s.collection().Doc(r.ID).Create(ctx, r); err != nil {
		return errs.NewDatabaseError("create", "failed to create reminder", err)
	}
	return nil
}

func (s *reminderStore) Get(ctx context.Context, reminderID string) (*models.Reminder, error) {
	doc, err := s.collection().Doc(reminderID).Get(ctx)
	return getOne[models.Reminder](doc, err, "reminder")
}

func (s *reminderStore) ListByUser(ctx context.Context, uid string) ([]*models.Reminder, error) {
	return readAll[models.Reminder](s.collection().Where("userId", "==", uid).Documents(ctx), "reminders")
}

func (s *reminderStore) Update(ctx context.Context, r *models.Reminder) error {
	_, err := s.collection().Doc(r.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: r.Name},
		{Path: "amount", Value: r.Amount},
		{Path: "date", Value: r.Date},
		{Path: "type", Value: r.Kind},
	})
	return updateErr(err, "reminder")
}

func (s *reminderStore) Delete(ctx context.Context, reminderID string) error {
	_, err := s.collection().Doc(reminderID).Delete(ctx, firestore.Exists)
	return deleteErr(err, "reminder")
}
