package dto

import "time"

// ImportTransaction is one item pushed by the sync client. ExternalID makes
// re-imports idempotent; Date defaults to the import time.
type ImportTransaction struct {
	ExternalID string     `json:"externalId,omitempty"`
	Kind       string     `json:"type"`
	Name       string     `json:"name"`
	Amount     float64    `json:"amount"`
	AccountID  string     `json:"accountId,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
}

type ImportRequest struct {
	Transactions []ImportTransaction `json:"transactions"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}
