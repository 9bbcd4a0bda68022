package service

import (
	"strings"

	"github.com/shopspring/decimal"
	"go-payout/internal/payoutdesk/data"
)

const amountScale = 2

// amountLimit is the first value that does not fit NUMERIC(14, 2).
var amountLimit = decimal.New(1, 12)

type Submission struct {
	PhoneNumber string
	BankName    string
	Amount      decimal.Decimal
}

// ValidateSubmission checks a withdrawal request against the balance the
// client claims to have. The balance is not verified anywhere.
func ValidateSubmission(
	phoneNumber string,
	bankName string,
	amount decimal.Decimal,
	claimedBalance decimal.Decimal,
) (Submission, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	bankName = strings.TrimSpace(bankName)

	if phoneNumber == "" || bankName == "" || amount.IsZero() {
		return Submission{}, ErrMissingField
	}
	if amount.IsNegative() {
		return Submission{}, ErrNonPositiveAmount
	}
	if !amount.Equal(amount.Round(amountScale)) || amount.GreaterThanOrEqual(amountLimit) {
		return Submission{}, ErrInvalidAmount
	}
	if amount.GreaterThan(claimedBalance) {
		return Submission{}, ErrInsufficientBalance
	}
	return Submission{
		PhoneNumber: phoneNumber,
		BankName:    bankName,
		Amount:      amount,
	}, nil
}

func ValidateStatusUpdate(id int64, newStatus string, allowed data.StatusSet) error {
	newStatus = strings.TrimSpace(newStatus)
	if id == 0 || newStatus == "" {
		return ErrMissingField
	}
	if !allowed.Allows(data.Status(newStatus)) {
		return ErrUnknownStatus
	}
	return nil
}
