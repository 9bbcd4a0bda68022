package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go-payout/internal/payoutdesk/data"
	"go-payout/pkg/logging"
)

func TestListWithdrawals(t *testing.T) {
	now := time.Now()
	rows := []data.Withdrawal{
		{ID: 2, PhoneNumber: "+7", BankName: "Sber", Amount: decimal.NewFromInt(10), Status: data.PendingStatus, CreatedAt: now},
		{ID: 1, PhoneNumber: "+7", BankName: "VTB", Amount: decimal.NewFromInt(5), Status: data.PendingStatus, CreatedAt: now.Add(-time.Hour)},
	}

	tests := []struct {
		name           string
		filter         string
		expectedFilter string
	}{
		{
			name:           "empty filter becomes all",
			filter:         "",
			expectedFilter: data.AllStatusesFilter,
		},
		{
			name:           "explicit filter passes through",
			filter:         "pending",
			expectedFilter: "pending",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repository := new(MockRepository)
			connections := &passThroughConnections{}
			admin := NewAdmin(connections, repository, data.DefaultStatusSet(), logging.NewNop())
			repository.On("ListWithdrawals", mock.Anything, test.expectedFilter).Return(rows, nil).Once()

			withdrawals, err := admin.ListWithdrawals(context.Background(), test.filter)

			require.NoError(t, err)
			assert.Equal(t, rows, withdrawals)
			assert.Equal(t, 1, connections.calls)
			repository.AssertExpectations(t)
		})
	}
}

func TestListWithdrawalsStorageError(t *testing.T) {
	repository := new(MockRepository)
	admin := NewAdmin(&passThroughConnections{}, repository, nil, logging.NewNop())
	errDB := errors.New("db down")
	repository.On("ListWithdrawals", mock.Anything, "all").Return(nil, errDB)

	_, err := admin.ListWithdrawals(context.Background(), "all")
	assert.ErrorIs(t, err, errDB)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		id          int64
		status      string
		affected    int64
		expectCall  bool
		expectedErr error
	}{
		{
			name:       "existing withdrawal",
			id:         7,
			status:     "approved",
			affected:   1,
			expectCall: true,
		},
		{
			name:       "unknown id is a no-op success",
			id:         999,
			status:     "approved",
			affected:   0,
			expectCall: true,
		},
		{
			name:        "missing id",
			status:      "approved",
			expectedErr: ErrMissingField,
		},
		{
			name:        "missing status",
			id:          7,
			expectedErr: ErrMissingField,
		},
		{
			name:        "status outside allowed set",
			id:          7,
			status:      "paid",
			expectedErr: ErrUnknownStatus,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repository := new(MockRepository)
			connections := &passThroughConnections{}
			admin := NewAdmin(connections, repository, data.DefaultStatusSet(), logging.NewNop())
			if test.expectCall {
				repository.On("UpdateStatus", mock.Anything, test.id, data.Status(test.status)).Return(test.affected, nil).Once()
			}

			err := admin.UpdateStatus(context.Background(), test.id, test.status)

			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				assert.Zero(t, connections.calls)
				repository.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			repository.AssertExpectations(t)
		})
	}
}

func TestUpdateStatusTrimsStatus(t *testing.T) {
	repository := new(MockRepository)
	admin := NewAdmin(&passThroughConnections{}, repository, data.DefaultStatusSet(), logging.NewNop())
	repository.On("UpdateStatus", mock.Anything, int64(3), data.RejectedStatus).Return(int64(1), nil).Once()

	require.NoError(t, admin.UpdateStatus(context.Background(), 3, " rejected "))
	repository.AssertExpectations(t)
}

func TestUpdateStatusStorageError(t *testing.T) {
	repository := new(MockRepository)
	admin := NewAdmin(&passThroughConnections{}, repository, nil, logging.NewNop())
	errDB := errors.New("deadlock")
	repository.On("UpdateStatus", mock.Anything, int64(3), data.Status("approved")).Return(int64(0), errDB)

	err := admin.UpdateStatus(context.Background(), 3, "approved")
	assert.ErrorIs(t, err, errDB)
}
