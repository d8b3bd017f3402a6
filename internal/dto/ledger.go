package dto

type RecordTransactionRequest struct {
	Kind      string  `json:"type"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	AccountID string  `json:"accountId,omitempty"`
}

type AddAccountRequest struct {
	BankName      string   `json:"bankName"`
	AccountNumber string   `json:"accountNumber"`
	Balance       *float64 `json:"balance"`
	ColorIndex    *int     `json:"colorIndex,omitempty"`
}

// UpdateAccountRequest is a partial update; nil fields are left unchanged.
type UpdateAccountRequest struct {
	AccountNumber *string  `json:"accountNumber,omitempty"`
	Balance       *float64 `json:"balance,omitempty"`
	ColorIndex    *int     `json:"colorIndex,omitempty"`
}

// CascadeResult counts the dependents removed with an account.
type CascadeResult struct {
	Transactions int `json:"transactions"`
	Goals        int `json:"goals"`
	Reminders    int `json:"reminders"`
}
