package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

// MaxImportBatch bounds a single sync request.
const MaxImportBatch = 500

type syncAccountStore interface {
	ListByUser(ctx context.Context, uid string) ([]*models.Account, error)
}

type syncTransactionStore interface {
	UpsertBatch(ctx context.Context, txs []models.Transaction) error
}

type syncService struct {
	accounts syncAccountStore
	txs      syncTransactionStore
	clockNow func() time.Time
}

func NewSyncService(accounts syncAccountStore, txs syncTransactionStore) *syncService {
	return &syncService{accounts: accounts, txs: txs, clockNow: time.Now}
}

// ImportTransactions stores transactions pushed by an API-key client for
// user uid. The whole batch is validated before anything is written. Items
// carrying an externalId keep a stable document id, so a re-import replaces
// rather than duplicates them.
func (s *syncService) ImportTransactions(ctx context.Context, uid string, req dto.ImportRequest) (dto.ImportResult, error) {
	log := logger.FromContext(ctx)

	if len(req.Transactions) == 0 {
		return dto.ImportResult{}, errs.NewValidationError("no transactions to import")
	}
	if len(req.Transactions) > MaxImportBatch {
		return dto.ImportResult{}, errs.NewValidationError(fmt.Sprintf("at most %d transactions per request", MaxImportBatch))
	}

	accounts, err := s.accounts.ListByUser(ctx, uid)
	if err != nil {
		return dto.ImportResult{}, err
	}
	owned := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		owned[a.ID] = struct{}{}
	}

	now := s.clockNow()
	seen := make(map[string]struct{}, len(req.Transactions))
	out := make([]models.Transaction, 0, len(req.Transactions))

	for i, item := range req.Transactions {
		name := strings.TrimSpace(item.Name)
		kind := models.TransactionKind(strings.ToLower(strings.TrimSpace(item.Kind)))
		switch {
		case name == "":
			return dto.ImportResult{}, errs.NewValidationError(fmt.Sprintf("transaction %d: name is required", i))
		case !positiveAmount(item.Amount):
			return dto.ImportResult{}, errs.NewValidationError(fmt.Sprintf("transaction %d: amount must be a positive number", i))
		case !kind.Valid():
			return dto.ImportResult{}, errs.NewValidationError(fmt.Sprintf(`transaction %d: type must be "income" or "expense"`, i))
		}
		if item.AccountID != "" {
			if _, ok := owned[item.AccountID]; !ok {
				return dto.ImportResult{}, errs.NewForbiddenError(fmt.Sprintf("transaction %d: account does not belong to this user", i))
			}
		}

		t := models.Transaction{
			UserID:     uid,
			AccountID:  item.AccountID,
			Kind:       kind,
			Name:       name,
			Amount:     item.Amount,
			Date:       now,
			ExternalID: strings.TrimSpace(item.ExternalID),
		}
		if item.Date != nil && !item.Date.IsZero() {
			t.Date = *item.Date
		}
		if t.ExternalID != "" {
			if _, dup := seen[t.ExternalID]; dup {
				return dto.ImportResult{}, errs.NewValidationError(fmt.Sprintf("transaction %d: duplicate externalId %q", i, t.ExternalID))
			}
			seen[t.ExternalID] = struct{}{}
			t.ID = importDocID(uid, t.ExternalID)
		}
		out = append(out, t)
	}

	if err := s.txs.UpsertBatch(ctx, out); err != nil {
		log.Error("transaction import failed", "count", len(out), "error", err)
		return dto.ImportResult{}, err
	}

	log.Info("transactions imported", "count", len(out))
	return dto.ImportResult{Imported: len(out)}, nil
}

// importDocID maps each distinct externalId of uid to its own document id.
// The digest keeps ids path-safe and bounded in length.
func importDocID(uid, externalID string) string {
	sum := sha256.Sum256([]byte(externalID))
	return uid + "_" + hex.EncodeToString(sum[:])
}
