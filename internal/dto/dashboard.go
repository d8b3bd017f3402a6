package dto

import (
	"github.com/GregMSThompson/ledgerpro/internal/models"
)

const (
	// RecentTransactionLimit caps Dashboard.RecentTransactions.
	RecentTransactionLimit = 10
	// DefaultUserName is shown when the user record cannot be found.
	DefaultUserName = "User"
)

// AccountView is an account with its derived figures. Balance is the
// effective balance: opening balance + income - expense.
type AccountView struct {
	ID            string  `json:"id"`
	BankName      string  `json:"bankName"`
	AccountNumber string  `json:"accountNumber"`
	Balance       float64 `json:"balance"`
	Income        float64 `json:"income"`
	Expense       float64 `json:"expense"`
	ColorIndex    int     `json:"colorIndex"`
}

type ChartPoint struct {
	Kind        models.TransactionKind `json:"type"`
	Description string                 `json:"description"`
	Amount      float64                `json:"amount"`
	AccountID   string                 `json:"accountId,omitempty"`
}

type Dashboard struct {
	UserName           string               `json:"userName"`
	Accounts           []AccountView        `json:"accounts"`
	TotalBalance       float64              `json:"totalBalance"`
	TotalIncome        float64              `json:"totalIncome"`
	TotalExpense       float64              `json:"totalExpense"`
	RecentTransactions []models.Transaction `json:"recentTransactions"`
	ChartData          []ChartPoint         `json:"chartData"`
}
