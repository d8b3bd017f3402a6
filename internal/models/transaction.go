package models

import (
	"time"
)

type TransactionKind string

const (
	TransactionIncome  TransactionKind = "income"
	TransactionExpense TransactionKind = "expense"
)

func (k TransactionKind) Valid() bool {
	return k == TransactionIncome || k == TransactionExpense
}

// Transaction is immutable once created. Amount is always positive; Kind
// decides the sign.
type Transaction struct {
	ID         string          `firestore:"id" json:"id"`
	UserID     string          `firestore:"userId" json:"userId"`
	AccountID  string          `firestore:"accountId,omitempty" json:"accountId,omitempty"`
	Kind       TransactionKind `firestore:"type" json:"type"`
	Name       string          `firestore:"name" json:"name"`
	Amount     float64         `firestore:"amount" json:"amount"`
	Date       time.Time       `firestore:"date" json:"date"`
	ExternalID string          `firestore:"externalId,omitempty" json:"externalId,omitempty"` // set by the sync client
}
