package models

import (
	"time"
)

type ReminderKind string

const (
	ReminderOneTime   ReminderKind = "one-time"
	ReminderRecurring ReminderKind = "recurring"
)

func (k ReminderKind) Valid() bool {
	return k == ReminderOneTime || k == ReminderRecurring
}

type Reminder struct {
	ID        string       `firestore:"id" json:"id"`
	UserID    string       `firestore:"userId" json:"userId"`
	AccountID string       `firestore:"accountId" json:"accountId"`
	Name      string       `firestore:"name" json:"name"`
	Amount    float64      `firestore:"amount" json:"amount"`
	Date      time.Time    `firestore:"date" json:"date"`
	Kind      ReminderKind `firestore:"type" json:"type"`
	CreatedAt time.Time    `firestore:"createdAt" json:"createdAt"`
}
