package models

import (
	"time"
)

type Goal struct {
	ID            string    `firestore:"id" json:"id"`
	UserID        string    `firestore:"userId" json:"userId"`
	AccountID     string    `firestore:"accountId" json:"accountId"`
	Name          string    `firestore:"name" json:"name"`
	TargetAmount  float64   `firestore:"targetAmount" json:"targetAmount"`
	CurrentAmount float64   `firestore:"currentAmount" json:"currentAmount"`
	Deadline      time.Time `firestore:"deadline" json:"deadline"`
	DailyAmount   float64   `firestore:"dailyAmount" json:"dailyAmount"`
	DurationDays  int       `firestore:"durationDays" json:"durationDays"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
}
