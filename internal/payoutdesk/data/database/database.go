package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"go-payout/pkg/logging"
	"go-payout/pkg/timeutils"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

type Config struct {
	ConnectionString   string
	RetryAttemptDelays []time.Duration
}

type PgxDatabaseFactory struct {
	logger *logging.ZapLogger
	cfg    Config
}

func NewPgxDatabaseFactory(cfg Config, logger *logging.ZapLogger) *PgxDatabaseFactory {
	return &PgxDatabaseFactory{
		cfg:    cfg,
		logger: logger,
	}
}

func (f *PgxDatabaseFactory) Create(ctx context.Context) (*pgxpool.Pool, error) {
	if f.cfg.ConnectionString == "" {
		return nil, errors.New("database connection string is empty")
	}
	pool, err := pgxpool.New(ctx, f.cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create a connection pool: %w", err)
	}
	_, err = timeutils.Retry(
		ctx,
		f.cfg.RetryAttemptDelays,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, ping(ctx, pool)
		},
		func(res struct{}, err error) bool {
			needRetry := timeutils.RetryOnError(res, err)
			if needRetry {
				f.logger.WarnCtx(ctx, "database is not reachable yet", zap.Error(err))
			}
			return needRetry
		},
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to the DB: %w", err)
	}
	if err := runMigrations(f.cfg.ConnectionString); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run DB migrations: %w", err)
	}
	return pool, nil
}

func ping(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return pool.Ping(ctx) //nolint:wrapcheck // unnecessary
}

//go:embed migrations/*.sql
var migrationsDir embed.FS

func runMigrations(dsn string) error {
	d, err := iofs.New(migrationsDir, "migrations")
	if err != nil {
		return fmt.Errorf("failed to return an iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dsn)
	if err != nil {
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations to the DB: %w", err)
		}
	}
	return nil
}
