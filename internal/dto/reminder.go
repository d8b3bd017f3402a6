package dto

import "time"

type SetReminderRequest struct {
	Name      string     `json:"name"`
	Amount    float64    `json:"amount"`
	Date      *time.Time `json:"date"`
	Kind      string     `json:"type"`
	AccountID string     `json:"accountId"`
}

type UpdateReminderRequest struct {
	Name   *string    `json:"name,omitempty"`
	Amount *float64   `json:"amount,omitempty"`
	Date   *time.Time `json:"date,omitempty"`
	Kind   *string    `json:"type,omitempty"`
}
