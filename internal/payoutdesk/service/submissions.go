package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go-payout/internal/payoutdesk/data"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

type SubmissionInput struct {
	PhoneNumber    string
	BankName       string
	Timestamp      string
	Amount         decimal.Decimal
	ClaimedBalance decimal.Decimal
}

type PendingWithdrawalRepository interface {
	InsertPending(ctx context.Context, phoneNumber, bankName string, amount decimal.Decimal) (id int64, err error)
}

// Notifier takes a notification and never reports back. Delivery problems
// are its own business.
type Notifier interface {
	Notify(ctx context.Context, notification data.Notification)
}

type Submissions struct {
	connectionsManager ConnectionsManager
	repository         PendingWithdrawalRepository
	notifier           Notifier
	logger             *logging.ZapLogger
}

func NewSubmissions(
	connectionsManager ConnectionsManager,
	repository PendingWithdrawalRepository,
	notifier Notifier,
	logger *logging.ZapLogger,
) *Submissions {
	return &Submissions{
		connectionsManager: connectionsManager,
		repository:         repository,
		notifier:           notifier,
		logger:             logger,
	}
}

func (s *Submissions) Submit(ctx context.Context, input SubmissionInput) (int64, error) {
	submission, err := ValidateSubmission(input.PhoneNumber, input.BankName, input.Amount, input.ClaimedBalance)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.connectionsManager.DoWithConnection(ctx, func(ctx context.Context) error {
		id, err = s.repository.InsertPending(ctx, submission.PhoneNumber, submission.BankName, submission.Amount)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("inserting pending withdrawal failed: %w", err)
	}

	s.logger.InfoCtx(
		ctx,
		"withdrawal submitted",
		zap.Int64("withdrawalID", id),
		zap.String("amount", submission.Amount.String()),
	)

	s.notifier.Notify(ctx, data.Notification{
		WithdrawalID: id,
		PhoneNumber:  submission.PhoneNumber,
		BankName:     submission.BankName,
		Amount:       submission.Amount,
		Timestamp:    input.Timestamp,
	})

	return id, nil
}
