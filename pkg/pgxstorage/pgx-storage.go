package pgxstorage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey int

const (
	connectionKey contextKey = iota
)

var errNoConnection = errors.New("no scoped connection")

type DBFactory interface {
	Create(ctx context.Context) (*pgxpool.Pool, error)
}

// querier is what *pgxpool.Pool, *pgxpool.Conn and pgx.Tx have in common.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DBStorage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dbFactory DBFactory) (*DBStorage, error) {
	pool, err := dbFactory.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	return &DBStorage{
		pool: pool,
	}, nil
}

func (s *DBStorage) Close() {
	s.pool.Close()
}

func (s *DBStorage) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	return s.querier(ctx).Exec(ctx, query, args...) //nolint:wrapcheck // unnecessary
}

func (s *DBStorage) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return s.querier(ctx).Query(ctx, query, args...) //nolint:wrapcheck // unnecessary
}

// QueryValue runs a single-row query and scans the row into dest.
func (s *DBStorage) QueryValue(ctx context.Context, query string, args []any, dest []any) error {
	return s.querier(ctx).QueryRow(ctx, query, args...).Scan(dest...) //nolint:wrapcheck // unnecessary
}

func (s *DBStorage) querier(ctx context.Context) querier {
	q, err := getScoped(ctx)
	if err != nil {
		return s.pool
	}
	return q
}

func (s *DBStorage) withConnection(ctx context.Context) (context.Context, *pgxpool.Conn, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("connection acquire failed: %w", err)
	}
	return context.WithValue(ctx, connectionKey, conn), conn, nil
}

func getScoped(ctx context.Context) (querier, error) {
	val := ctx.Value(connectionKey)
	if val == nil {
		return nil, errNoConnection
	}
	q, ok := val.(querier)
	if !ok {
		return nil, errors.New("invalid connection type")
	}
	return q, nil
}
