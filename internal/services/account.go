package services

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

type accountStore interface {
	Create(ctx context.Context, a *models.Account) error
	Get(ctx context.Context, accountID string) (*models.Account, error)
	ListByUser(ctx context.Context, uid string) ([]*models.Account, error)
	Update(ctx context.Context, a *models.Account) error
}

type accountService struct {
	accounts accountStore
}

func NewAccountService(accounts accountStore) *accountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) AddAccount(ctx context.Context, uid string, req dto.AddAccountRequest) (*models.Account, error) {
	bank := strings.TrimSpace(req.BankName)
	if bank == "" {
		return nil, errs.NewValidationError("bank name is required")
	}
	number := strings.TrimSpace(req.AccountNumber)
	if !validAccountNumber(number) {
		return nil, errs.NewValidationError("account number must be a positive number")
	}
	if req.Balance == nil || !validBalance(*req.Balance) {
		return nil, errs.NewValidationError("a numeric opening balance is required")
	}

	a := &models.Account{
		UserID:        uid,
		BankName:      bank,
		AccountNumber: number,
		Balance:       *req.Balance,
	}
	if req.ColorIndex != nil {
		a.ColorIndex = *req.ColorIndex
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("account created", "account_id", a.ID)
	return a, nil
}

// ListAccounts returns the caller's accounts, oldest first.
func (s *accountService) ListAccounts(ctx context.Context, uid string) ([]*models.Account, error) {
	accounts, err := s.accounts.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(accounts, func(a, b *models.Account) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return accounts, nil
}

// UpdateAccount applies the non-nil fields of req. The bank name is fixed
// once the account exists.
func (s *accountService) UpdateAccount(ctx context.Context, accountID, uid string, req dto.UpdateAccountRequest) (*models.Account, error) {
	a, err := ownedAccount(ctx, s.accounts, accountID, uid)
	if err != nil {
		return nil, err
	}

	if req.AccountNumber != nil {
		number := strings.TrimSpace(*req.AccountNumber)
		if !validAccountNumber(number) {
			return nil, errs.NewValidationError("account number must be a positive number")
		}
		a.AccountNumber = number
	}
	if req.Balance != nil {
		if !validBalance(*req.Balance) {
			return nil, errs.NewValidationError("balance must be a number")
		}
		a.Balance = *req.Balance
	}
	if req.ColorIndex != nil {
		a.ColorIndex = *req.ColorIndex
	}

	if err := s.accounts.Update(ctx, a); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("account updated", "account_id", a.ID)
	return a, nil
}

// validAccountNumber accepts a string of digits denoting a positive number.
func validAccountNumber(s string) bool {
	if s == "" {
		return false
	}
	nonZero := false
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		if r != '0' {
			nonZero = true
		}
	}
	return nonZero
}

func validBalance(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
