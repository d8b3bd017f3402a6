package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
)

type accountStore struct {
	client *firestore.Client
}

func NewAccountStore(client *firestore.Client) *accountStore {
	return &accountStore{client: client}
}

func (s *accountStore) collection() *firestore.CollectionRef {
	return s.client.Collection(accountsCollection)
}

func (s *accountStore) Create(ctx context.Context, a *models.Account) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if _, err := s.collection().Doc(a.ID).Create(ctx, a); err != nil {
		return errs.NewDatabaseError("create", "failed to create account", err)
	}
	return nil
}

func (s *accountStore) Get(ctx context.Context, accountID string) (*models.Account, error) {
	doc, err := s.collection().Doc(accountID).Get(ctx)
	return getOne[models.Account](doc, err, "account")
}

func (s *accountStore) ListByUser(ctx context.Context, uid string) ([]*models.Account, error) {
	return readAll[models.Account](s.collection().Where("userId", "==", uid).Documents(ctx), "accounts")
}

func (s *accountStore) Update(ctx context.Context, a *models.Account) error {
	a.UpdatedAt = time.Now()
	_, err := s.collection().Doc(a.ID).Update(ctx, []firestore.Update{
		{Path: "accountNumber", Value: a.AccountNumber},
		{Path: "balance", Value: a.Balance},
		{Path: "colorIndex", Value: a.ColorIndex},
		{Path: "updatedAt", Value: a.UpdatedAt},
	})
	return updateErr(err, "account")
}

// DeleteCascade removes the account and every transaction, goal and reminder
// referencing it in a single Firestore transaction. Either all documents are
// deleted or none are.
func (s *accountStore) DeleteCascade(ctx context.Context, accountID string) (dto.CascadeResult, error) {
	var result dto.CascadeResult
	accountRef := s.collection().Doc(accountID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		result = dto.CascadeResult{}

		// all reads before any write
		txDocs, err := tx.Documents(s.dependents(transactionsCollection, accountID)).GetAll()
		if err != nil {
			return err
		}
		goalDocs, err := tx.Documents(s.dependents(goalsCollection, accountID)).GetAll()
		if err != nil {
			return err
		}
		reminderDocs, err := tx.Documents(s.dependents(remindersCollection, accountID)).GetAll()
		if err != nil {
			return err
		}

		for _, group := range [][]*firestore.DocumentSnapshot{txDocs, goalDocs, reminderDocs} {
			for _, d := range group {
				if err := tx.Delete(d.Ref); err != nil {
					return err
				}
			}
		}
		if err := tx.Delete(accountRef, firestore.Exists); err != nil {
			return err
		}

		result.Transactions = len(txDocs)
		result.Goals = len(goalDocs)
		result.Reminders = len(reminderDocs)
		return nil
	}, firestore.MaxAttempts(1))
	if err != nil {
		return dto.CascadeResult{}, deleteErr(err, "account")
	}
	return result, nil
}

func (s *accountStore) dependents(collection, accountID string) firestore.Query {
	return s.client.Collection(collection).Where("accountId", "==", accountID)
}
