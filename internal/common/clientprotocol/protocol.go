package clientprotocol

import "github.com/shopspring/decimal"

type SubmissionRequest struct {
	PhoneNumber string          `json:"phoneNumber"`
	BankName    string          `json:"bankName"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	UserBalance decimal.Decimal `json:"userBalance"`
}

type SubmissionResponse struct {
	Message      string `json:"message"`
	WithdrawalID int64  `json:"withdrawalId"`
	Success      bool   `json:"success"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

type StatusUpdateResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type Withdrawal struct {
	CreatedAt   *string `json:"createdAt"`
	ProcessedAt *string `json:"processedAt"`
	PhoneNumber string  `json:"phoneNumber"`
	BankName    string  `json:"bankName"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	ID          int64   `json:"id"`
}

type WithdrawalsList struct {
	Withdrawals []Withdrawal `json:"withdrawals"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
