package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go-payout/internal/payoutdesk/data"
)

type passThroughConnections struct {
	calls int
}

func (p *passThroughConnections) DoWithConnection(ctx context.Context, f func(ctx context.Context) error) error {
	p.calls++
	return f(ctx)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertPending(
	ctx context.Context,
	phoneNumber, bankName string,
	amount decimal.Decimal,
) (int64, error) {
	args := m.Called(ctx, phoneNumber, bankName, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListWithdrawals(ctx context.Context, statusFilter string) ([]data.Withdrawal, error) {
	args := m.Called(ctx, statusFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]data.Withdrawal), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, status data.Status) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notification data.Notification) {
	m.Called(ctx, notification)
}
