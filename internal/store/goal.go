package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
)

type goalStore struct {
	client *firestore.Client
}

func NewGoalStore(client *firestore.Client) *goalStore {
	return &goalStore{client: client}
}

func (s *goalStore) collection() *firestore.CollectionRef {
	return s.client.Collection(goalsCollection)
}

func (s *goalStore) Create(ctx context.Context, g *models.Goal) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if _, err := s.collection().Doc(g.ID).Create(ctx, g); err != nil {
		return errs.NewDatabaseError("create", "failed to create goal", err)
	}
	return nil
}

func (s *goalStore) Get(ctx context.Context, goalID string) (*models.Goal, error) {
	doc, err := s.collection().Doc(goalID).Get(ctx)
	return getOne[models.Goal](doc, err, "goal")
}

func (s *goalStore) ListByUser(ctx context.Context, uid string) ([]*models.Goal, error) {
	return readAll[models.Goal](s.collection().Where("userId", "==", uid).Documents(ctx), "goals")
}

// Update writes the editable fields only; currentAmount is owned by
// AddContribution.
func (s *goalStore) Update(ctx context.Context, g *models.Goal) error {
	_, err := s.collection().Doc(g.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: g.Name},
		{Path: "targetAmount", Value: g.TargetAmount},
		{Path: "dailyAmount", Value: g.DailyAmount},
	})
	return updateErr(err, "goal")
}

// AddContribution increments currentAmount server side, so concurrent
// contributions are all applied, and returns the goal after the write.
func (s *goalStore) AddContribution(ctx context.Context, goalID string, amount float64) (*models.Goal, error) {
	ref := s.collection().Doc(goalID)
	if _, err := ref.Update(ctx, []firestore.Update{
		{Path: "currentAmount", Value: firestore.Increment(amount)},
	}); err != nil {
		return nil, updateErr(err, "goal")
	}
	doc, err := ref.Get(ctx)
	return getOne[models.Goal](doc, err, "goal")
}

func (s *goalStore) Delete(ctx context.Context, goalID string) error {
	_, err := s.collection().Doc(goalID).Delete(ctx, firestore.Exists)
	return deleteErr(err, "goal")
}
