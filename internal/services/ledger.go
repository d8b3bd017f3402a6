package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

type ledgerUserStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type ledgerAccountStore interface {
	Get(ctx context.Context, accountID string) (*models.Account, error)
	ListByUser(ctx context.Context, uid string) ([]*models.Account, error)
	DeleteCascade(ctx context.Context, accountID string) (dto.CascadeResult, error)
}

type ledgerTransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error
	Get(ctx context.Context, transactionID string) (*models.Transaction, error)
	ListByUser(ctx context.Context, uid string) ([]*models.Transaction, error)
	Delete(ctx context.Context, transactionID string) error
}

type ledgerGoalStore interface {
	Get(ctx context.Context, goalID string) (*models.Goal, error)
	AddContribution(ctx context.Context, goalID string, amount float64) (*models.Goal, error)
}

type ledgerService struct {
	users    ledgerUserStore
	accounts ledgerAccountStore
	txs      ledgerTransactionStore
	goals    ledgerGoalStore
	clockNow func() time.Time
}

func NewLedgerService(users ledgerUserStore, accounts ledgerAccountStore, txs ledgerTransactionStore, goals ledgerGoalStore) *ledgerService {
	return &ledgerService{
		users:    users,
		accounts: accounts,
		txs:      txs,
		goals:    goals,
		clockNow: time.Now,
	}
}

// ComputeDashboard derives per-account and total figures from the stored
// accounts and transactions of uid. A missing user record only degrades
// the display name. Totals add up the per-account figures, so a transaction
// without a known account is listed but not counted.
func (s *ledgerService) ComputeDashboard(ctx context.Context, uid string) (dto.Dashboard, error) {
	log := logger.FromContext(ctx)

	accounts, err := s.accounts.ListByUser(ctx, uid)
	if err != nil {
		return dto.Dashboard{}, err
	}
	txs, err := s.txs.ListByUser(ctx, uid)
	if err != nil {
		return dto.Dashboard{}, err
	}

	userName := dto.DefaultUserName
	user, err := s.users.GetUser(ctx, uid)
	switch {
	case err == nil:
		userName = user.Name
	case isNotFound(err):
		log.Warn("dashboard user record missing", "uid", uid)
	default:
		return dto.Dashboard{}, err
	}

	slices.SortStableFunc(accounts, func(a, b *models.Account) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	slices.SortStableFunc(txs, func(a, b *models.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	type sums struct{ income, expense decimal.Decimal }
	byAccount := make(map[string]*sums, len(accounts))
	for _, a := range accounts {
		byAccount[a.ID] = &sums{}
	}

	chart := make([]dto.ChartPoint, 0, len(txs))
	for _, t := range txs {
		chart = append(chart, dto.ChartPoint{
			Kind:        t.Kind,
			Description: t.Name,
			Amount:      t.Amount,
			AccountID:   t.AccountID,
		})
		acc, ok := byAccount[t.AccountID]
		if !ok {
			continue
		}
		switch t.Kind {
		case models.TransactionIncome:
			acc.income = acc.income.Add(decimal.NewFromFloat(t.Amount))
		case models.TransactionExpense:
			acc.expense = acc.expense.Add(decimal.NewFromFloat(t.Amount))
		}
	}

	var totalBalance, totalIncome, totalExpense decimal.Decimal
	views := make([]dto.AccountView, 0, len(accounts))
	for _, a := range accounts {
		acc := byAccount[a.ID]
		balance := decimal.NewFromFloat(a.Balance).Add(acc.income).Sub(acc.expense)

		totalBalance = totalBalance.Add(balance)
		totalIncome = totalIncome.Add(acc.income)
		totalExpense = totalExpense.Add(acc.expense)

		views = append(views, dto.AccountView{
			ID:            a.ID,
			BankName:      a.BankName,
			AccountNumber: a.AccountNumber,
			Balance:       balance.InexactFloat64(),
			Income:        acc.income.InexactFloat64(),
			Expense:       acc.expense.InexactFloat64(),
			ColorIndex:    a.ColorIndex,
		})
	}

	recent := make([]models.Transaction, 0, min(len(txs), dto.RecentTransactionLimit))
	for _, t := range txs[:min(len(txs), dto.RecentTransactionLimit)] {
		recent = append(recent, *t)
	}

	return dto.Dashboard{
		UserName:           userName,
		Accounts:           views,
		TotalBalance:       totalBalance.InexactFloat64(),
		TotalIncome:        totalIncome.InexactFloat64(),
		TotalExpense:       totalExpense.InexactFloat64(),
		RecentTransactions: recent,
		ChartData:          chart,
	}, nil
}

// RecordTransaction validates and stores one income or expense stamped with
// the current time. An account reference, when given, must belong to uid.
func (s *ledgerService) RecordTransaction(ctx context.Context, uid string, req dto.RecordTransactionRequest) (*models.Transaction, error) {
	name := strings.TrimSpace(req.Name)
	kind := models.TransactionKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if name == "" {
		return nil, errs.NewValidationError("transaction name is required")
	}
	if !positiveAmount(req.Amount) {
		return nil, errs.NewValidationError("amount must be a positive number")
	}
	if !kind.Valid() {
		return nil, errs.NewValidationError(`type must be "income" or "expense"`)
	}

	if req.AccountID != "" {
		if _, err := ownedAccount(ctx, s.accounts, req.AccountID, uid); err != nil {
			return nil, err
		}
	}

	t := &models.Transaction{
		UserID:    uid,
		AccountID: req.AccountID,
		Kind:      kind,
		Name:      name,
		Amount:    req.Amount,
		Date:      s.clockNow(),
	}
	if err := s.txs.Create(ctx, t); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("transaction recorded",
		"transaction_id", t.ID, "type", t.Kind, "amount", t.Amount, "account_id", t.AccountID)
	return t, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID, uid string) error {
	t, err := s.txs.Get(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := checkOwner(t.UserID, uid, "transaction"); err != nil {
		return err
	}
	if err := s.txs.Delete(ctx, transactionID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("transaction deleted", "transaction_id", transactionID)
	return nil
}

// ContributeToGoal adds a positive amount to the goal's current amount.
// The increment is applied atomically by the store, so concurrent
// contributions are never lost.
func (s *ledgerService) ContributeToGoal(ctx context.Context, goalID, uid string, amount float64) (*models.Goal, error) {
	if goalID == "" {
		return nil, errs.NewValidationError("goal id is required")
	}
	if !positiveAmount(amount) {
		return nil, errs.NewValidationError("contribution must be a positive number")
	}

	g, err := s.goals.Get(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(g.UserID, uid, "goal"); err != nil {
		return nil, err
	}

	updated, err := s.goals.AddContribution(ctx, goalID, amount)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("goal contribution added",
		"goal_id", goalID, "amount", amount, "current_amount", updated.CurrentAmount)
	return updated, nil
}

// DeleteAccountCascade removes an owned account together with its
// transactions, goals and reminders. The store performs the deletion
// atomically.
func (s *ledgerService) DeleteAccountCascade(ctx context.Context, accountID, uid string) (dto.CascadeResult, error) {
	if _, err := ownedAccount(ctx, s.accounts, accountID, uid); err != nil {
		return dto.CascadeResult{}, err
	}
	res, err := s.accounts.DeleteCascade(ctx, accountID)
	if err != nil {
		logger.FromContext(ctx).Error("account cascade delete failed", "account_id", accountID, "error", err)
		return dto.CascadeResult{}, err
	}
	logger.FromContext(ctx).Info("account deleted",
		"account_id", accountID,
		"transactions", res.Transactions,
		"goals", res.Goals,
		"reminders", res.Reminders)
	return res, nil
}

func isNotFound(err error) bool {
	var nf *errs.NotFoundError
	return errors.As(err, &nf)
}
