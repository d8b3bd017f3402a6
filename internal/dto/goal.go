package dto

type SetGoalRequest struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"targetAmount"`
	DurationDays int     `json:"durationDays"`
	AccountID    string  `json:"accountId"`
}

type UpdateGoalRequest struct {
	Name         *string  `json:"name,omitempty"`
	TargetAmount *float64 `json:"targetAmount,omitempty"`
}

type ContributeRequest struct {
	Amount float64 `json:"amount"`
}
