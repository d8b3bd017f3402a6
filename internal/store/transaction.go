package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) txCollection() *firestore.CollectionRef {
	return s.client.Collection(transactionsCollection)
}

func (s *transactionStore) Create(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if _, err := s.txCollection().Doc(t.ID).Create(ctx, t); err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

func (s *transactionStore) Get(ctx context.Context, transactionID string) (*models.Transaction, error) {
	doc, err := s.txCollection().Doc(transactionID).Get(ctx)
	return getOne[models.Transaction](doc, err, "transaction")
}

func (s *transactionStore) ListByUser(ctx context.Context, uid string) ([]*models.Transaction, error) {
	return readAll[models.Transaction](s.txCollection().Where("userId", "==", uid).Documents(ctx), "transactions")
}

func (s *transactionStore) Delete(ctx context.Context, transactionID string) error {
	_, err := s.txCollection().Doc(transactionID).Delete(ctx, firestore.Exists)
	return deleteErr(err, "transaction")
}

// UpsertBatch writes txs through a BulkWriter. Documents with an existing id
// are overwritten, which keeps sync-client re-imports idempotent.
func (s *transactionStore) UpsertBatch(ctx context.Context, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(txs))

	for _, t := range txs {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		job, err := bw.Set(s.txCollection().Doc(t.ID), t)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("create", "failed to schedule transaction write", err)
		}
		jobs = append(jobs, job)
	}

	// Flush and close the writer, then wait on each job for errors.
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return errs.NewDatabaseError("create", "failed to write transaction", err)
		}
	}
	return nil
}
