package models

import (
	"time"
)

// Account is a named money container. Balance is the opening balance; the
// effective balance is always derived from transactions.
type Account struct {
	ID            string    `firestore:"id" json:"id"`
	UserID        string    `firestore:"userId" json:"userId"`
	BankName      string    `firestore:"bankName" json:"bankName"`
	AccountNumber string    `firestore:"accountNumber" json:"accountNumber"`
	Balance       float64   `firestore:"balance" json:"balance"`
	ColorIndex    int       `firestore:"colorIndex" json:"colorIndex"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}
