package dbrepository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go-payout/internal/payoutdesk/data"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

const (
	invalidWithdrawalID = -1
)

type DBStorage interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryValue(ctx context.Context, query string, args []any, dest []any) error
}

type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/insert_withdrawal.sql
var insertWithdrawalQuery string

func (db *DBRepository) InsertPending(
	ctx context.Context,
	phoneNumber string,
	bankName string,
	amount decimal.Decimal,
) (id int64, err error) {
	err = db.storage.QueryValue(
		ctx,
		insertWithdrawalQuery,
		[]any{phoneNumber, bankName, amount},
		[]any{&id},
	)
	if err != nil {
		return invalidWithdrawalID, handleSQLError(err)
	}
	return id, nil
}

//go:embed sql/select_withdrawals.sql
var selectWithdrawalsQuery string

//go:embed sql/select_withdrawals_by_status.sql
var selectWithdrawalsByStatusQuery string

// ListWithdrawals returns rows newest first. An empty filter or
// data.AllStatusesFilter returns every row, anything else must match the
// status exactly.
func (db *DBRepository) ListWithdrawals(ctx context.Context, statusFilter string) ([]data.Withdrawal, error) {
	query, args := listQuery(statusFilter)
	db.logger.DebugCtx(ctx, "listing withdrawals", zap.String("statusFilter", statusFilter))

	rows, err := db.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Withdrawal, 0)
	for rows.Next() {
		var withdrawal data.Withdrawal
		err := rows.Scan(
			&withdrawal.ID,
			&withdrawal.PhoneNumber,
			&withdrawal.BankName,
			&withdrawal.Amount,
			&withdrawal.Status,
			&withdrawal.CreatedAt,
			&withdrawal.ProcessedAt,
		)
		if err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, withdrawal)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

func listQuery(statusFilter string) (string, []any) {
	if statusFilter == "" || statusFilter == data.AllStatusesFilter {
		return selectWithdrawalsQuery, nil
	}
	return selectWithdrawalsByStatusQuery, []any{statusFilter}
}

//go:embed sql/update_withdrawal_status.sql
var updateWithdrawalStatusQuery string

// UpdateStatus reports how many rows were touched. Zero is not an error.
func (db *DBRepository) UpdateStatus(ctx context.Context, id int64, status data.Status) (int64, error) {
	tag, err := db.storage.Exec(ctx, updateWithdrawalStatusQuery, id, string(status))
	if err != nil {
		return 0, handleSQLError(err)
	}
	return tag.RowsAffected(), nil
}

func handleSQLError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.NumericValueOutOfRange:
			return fmt.Errorf("%w: %s", data.ErrConstraintViolation, pgErr.ConstraintName)
		}
	}
	return err
}
