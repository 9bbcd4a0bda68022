package service

import (
	"context"
	"fmt"
	"strings"

	"go-payout/internal/payoutdesk/data"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

type WithdrawalsRepository interface {
	ListWithdrawals(ctx context.Context, statusFilter string) ([]data.Withdrawal, error)
	UpdateStatus(ctx context.Context, id int64, status data.Status) (affected int64, err error)
}

type Admin struct {
	connectionsManager ConnectionsManager
	repository         WithdrawalsRepository
	allowedStatuses    data.StatusSet
	logger             *logging.ZapLogger
}

func NewAdmin(
	connectionsManager ConnectionsManager,
	repository WithdrawalsRepository,
	allowedStatuses data.StatusSet,
	logger *logging.ZapLogger,
) *Admin {
	return &Admin{
		connectionsManager: connectionsManager,
		repository:         repository,
		allowedStatuses:    allowedStatuses,
		logger:             logger,
	}
}

func (a *Admin) ListWithdrawals(ctx context.Context, statusFilter string) ([]data.Withdrawal, error) {
	if statusFilter == "" {
		statusFilter = data.AllStatusesFilter
	}
	var withdrawals []data.Withdrawal
	err := a.connectionsManager.DoWithConnection(ctx, func(ctx context.Context) error {
		var err error
		withdrawals, err = a.repository.ListWithdrawals(ctx, statusFilter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing withdrawals failed: %w", err)
	}
	return withdrawals, nil
}

// UpdateStatus overwrites the status and processing time of a withdrawal.
// Updating an id that does not exist succeeds without touching anything.
func (a *Admin) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := ValidateStatusUpdate(id, status, a.allowedStatuses); err != nil {
		return err
	}
	newStatus := data.Status(strings.TrimSpace(status))

	var affected int64
	err := a.connectionsManager.DoWithConnection(ctx, func(ctx context.Context) error {
		var err error
		affected, err = a.repository.UpdateStatus(ctx, id, newStatus)
		return err
	})
	if err != nil {
		return fmt.Errorf("updating withdrawal status failed: %w", err)
	}

	if affected == 0 {
		a.logger.WarnCtx(ctx, "status update matched no withdrawal", zap.Int64("withdrawalID", id))
		return nil
	}
	a.logger.InfoCtx(
		ctx,
		"withdrawal status updated",
		zap.Int64("withdrawalID", id),
		zap.String("status", string(newStatus)),
	)
	return nil
}
