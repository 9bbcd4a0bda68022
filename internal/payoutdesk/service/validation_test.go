package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go-payout/internal/payoutdesk/data"
)

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name        string
		phoneNumber string
		bankName    string
		amount      decimal.Decimal
		balance     decimal.Decimal
		expectedErr error
		expected    Submission
	}{
		{
			name:        "valid",
			phoneNumber: "+71234567890",
			bankName:    "Sber",
			amount:      decimal.NewFromInt(500),
			balance:     decimal.NewFromInt(1000),
			expected: Submission{
				PhoneNumber: "+71234567890",
				BankName:    "Sber",
				Amount:      decimal.NewFromInt(500),
			},
		},
		{
			name:        "amount equal to balance",
			phoneNumber: "+71234567890",
			bankName:    "Sber",
			amount:      decimal.NewFromInt(1000),
			balance:     decimal.NewFromInt(1000),
			expected: Submission{
				PhoneNumber: "+71234567890",
				BankName:    "Sber",
				Amount:      decimal.NewFromInt(1000),
			},
		},
		{
			name:        "strings are trimmed",
			phoneNumber: "  +71234567890 ",
			bankName:    "\tTinkoff\n",
			amount:      decimal.RequireFromString("10.50"),
			balance:     decimal.NewFromInt(11),
			expected: Submission{
				PhoneNumber: "+71234567890",
				BankName:    "Tinkoff",
				Amount:      decimal.RequireFromString("10.50"),
			},
		},
		{
			name:        "missing phone",
			bankName:    "Sber",
			amount:      decimal.NewFromInt(1),
			balance:     decimal.NewFromInt(10),
			expectedErr: ErrMissingField,
		},
		{
			name:        "blank bank",
			phoneNumber: "+7",
			bankName:    "   ",
			amount:      decimal.NewFromInt(1),
			balance:     decimal.NewFromInt(10),
			expectedErr: ErrMissingField,
		},
		{
			name:        "zero amount",
			phoneNumber: "+7",
			bankName:    "Sber",
			amount:      decimal.Zero,
			balance:     decimal.NewFromInt(10),
			expectedErr: ErrMissingField,
		},
		{
			name:        "negative amount",
			phoneNumber: "+7",
			bankName:    "Sber",
			amount:      decimal.NewFromInt(-5),
			balance:     decimal.NewFromInt(10),
			expectedErr: ErrNonPositiveAmount,
		},
		{
			name:        "amount above balance",
			phoneNumber: "+7",
			bankName:    "Sber",
			amount:      decimal.RequireFromString("1000.01"),
			balance:     decimal.NewFromInt(1000),
			expectedErr: ErrInsufficientBalance,
		},
		{
			name:        "sub-cent amount",
			phoneNumber: "+7",
			bankName:    "Sber",
			amount:      decimal.RequireFromString("0.001"),
			balance:     decimal.NewFromInt(1),
			expectedErr: ErrInvalidAmount,
		},
		{
			name:        "sub-cent amount equal to balance",
			phoneNumber: "+7",
			bankName:    "Sber",
			amount:      decimal.RequireFromString("999.995"),
			balance:     decimal.RequireFromString("999.995"),
			expectedErr: ErrInvalidAmount,
		},
		{
			name:        "amount does not fit the column",
			phoneNumber: "+7",
			bankName:    "Sber",
			amount:      decimal.RequireFromString("1e13"),
			balance:     decimal.RequireFromString("1e14"),
			expectedErr: ErrInvalidAmount,
		},
		{
			name:        "largest storable amount",
			phoneNumber: "+7",
			bankName:    "Sber",
			amount:      decimal.RequireFromString("999999999999.99"),
			balance:     decimal.RequireFromString("1e12"),
			expected: Submission{
				PhoneNumber: "+7",
				BankName:    "Sber",
				Amount:      decimal.RequireFromString("999999999999.99"),
			},
		},
		{
			name:        "missing balance counts as zero",
			phoneNumber: "+7",
			bankName:    "Sber",
			amount:      decimal.NewFromInt(1),
			expectedErr: ErrInsufficientBalance,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			submission, err := ValidateSubmission(test.phoneNumber, test.bankName, test.amount, test.balance)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected.PhoneNumber, submission.PhoneNumber)
			assert.Equal(t, test.expected.BankName, submission.BankName)
			assert.True(t, test.expected.Amount.Equal(submission.Amount))
		})
	}
}

func TestValidateStatusUpdate(t *testing.T) {
	tests := []struct {
		name        string
		id          int64
		status      string
		allowed     data.StatusSet
		expectedErr error
	}{
		{
			name:    "valid",
			id:      1,
			status:  "approved",
			allowed: data.DefaultStatusSet(),
		},
		{
			name:        "missing id",
			status:      "approved",
			allowed:     data.DefaultStatusSet(),
			expectedErr: ErrMissingField,
		},
		{
			name:        "missing status",
			id:          1,
			status:      " ",
			allowed:     data.DefaultStatusSet(),
			expectedErr: ErrMissingField,
		},
		{
			name:        "status outside the set",
			id:          1,
			status:      "paid",
			allowed:     data.DefaultStatusSet(),
			expectedErr: ErrUnknownStatus,
		},
		{
			name:    "any status when set is empty",
			id:      1,
			status:  "paid",
			allowed: nil,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateStatusUpdate(test.id, test.status, test.allowed)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
