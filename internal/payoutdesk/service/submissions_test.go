package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go-payout/internal/payoutdesk/data"
	"go-payout/pkg/logging"
)

func TestSubmitSuccess(t *testing.T) {
	repository := new(MockRepository)
	notifier := new(MockNotifier)
	connections := &passThroughConnections{}
	submissions := NewSubmissions(connections, repository, notifier, logging.NewNop())

	amount := decimal.NewFromInt(500)
	repository.On("InsertPending", mock.Anything, "+71234567890", "Sber", amount).Return(int64(42), nil).Once()
	notifier.On("Notify", mock.Anything, data.Notification{
		WithdrawalID: 42,
		PhoneNumber:  "+71234567890",
		BankName:     "Sber",
		Amount:       amount,
		Timestamp:    "19.10.2026, 12:00:00",
	}).Once()

	id, err := submissions.Submit(context.Background(), SubmissionInput{
		PhoneNumber:    " +71234567890 ",
		BankName:       "Sber",
		Amount:         amount,
		ClaimedBalance: decimal.NewFromInt(1000),
		Timestamp:      "19.10.2026, 12:00:00",
	})

	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
	assert.Equal(t, 1, connections.calls)
	repository.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSubmitValidationFailuresNeverInsert(t *testing.T) {
	tests := []struct {
		name        string
		input       SubmissionInput
		expectedErr error
	}{
		{
			name: "insufficient balance",
			input: SubmissionInput{
				PhoneNumber:    "+7",
				BankName:       "Sber",
				Amount:         decimal.NewFromInt(1500),
				ClaimedBalance: decimal.NewFromInt(1000),
			},
			expectedErr: ErrInsufficientBalance,
		},
		{
			name: "missing phone",
			input: SubmissionInput{
				BankName:       "Sber",
				Amount:         decimal.NewFromInt(1),
				ClaimedBalance: decimal.NewFromInt(1000),
			},
			expectedErr: ErrMissingField,
		},
		{
			name: "zero amount",
			input: SubmissionInput{
				PhoneNumber:    "+7",
				BankName:       "Sber",
				ClaimedBalance: decimal.NewFromInt(1000),
			},
			expectedErr: ErrMissingField,
		},
		{
			name: "sub-cent amount equal to balance",
			input: SubmissionInput{
				PhoneNumber:    "+7",
				BankName:       "Sber",
				Amount:         decimal.RequireFromString("999.995"),
				ClaimedBalance: decimal.RequireFromString("999.995"),
			},
			expectedErr: ErrInvalidAmount,
		},
		{
			name: "amount rounds to zero",
			input: SubmissionInput{
				PhoneNumber:    "+7",
				BankName:       "Sber",
				Amount:         decimal.RequireFromString("0.001"),
				ClaimedBalance: decimal.NewFromInt(1),
			},
			expectedErr: ErrInvalidAmount,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repository := new(MockRepository)
			notifier := new(MockNotifier)
			connections := &passThroughConnections{}
			submissions := NewSubmissions(connections, repository, notifier, logging.NewNop())

			_, err := submissions.Submit(context.Background(), test.input)

			assert.ErrorIs(t, err, test.expectedErr)
			assert.Zero(t, connections.calls)
			repository.AssertNotCalled(t, "InsertPending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitStorageFailureSkipsNotification(t *testing.T) {
	repository := new(MockRepository)
	notifier := new(MockNotifier)
	submissions := NewSubmissions(&passThroughConnections{}, repository, notifier, logging.NewNop())
	errDB := errors.New("connection reset")

	repository.On("InsertPending", mock.Anything, "+7", "Sber", mock.Anything).Return(int64(-1), errDB)

	_, err := submissions.Submit(context.Background(), SubmissionInput{
		PhoneNumber:    "+7",
		BankName:       "Sber",
		Amount:         decimal.NewFromInt(1),
		ClaimedBalance: decimal.NewFromInt(1),
	})

	assert.ErrorIs(t, err, errDB)
	assert.NotErrorIs(t, err, ErrValidation)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}
