package pgxstorage

import (
	"context"
)

type ConnectionsManager struct {
	storage *DBStorage
}

func NewConnectionsManager(storage *DBStorage) *ConnectionsManager {
	return &ConnectionsManager{
		storage: storage,
	}
}

// DoWithConnection acquires one pool connection for the duration of f. Every
// storage call made with the context passed to f runs on that connection, and
// the connection goes back to the pool when f returns, whatever the outcome.
func (cm *ConnectionsManager) DoWithConnection(
	ctx context.Context,
	f func(ctx context.Context) error,
) error {
	if _, err := getScoped(ctx); err == nil {
		return f(ctx)
	}
	ctxWithConnection, conn, err := cm.storage.withConnection(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return f(ctxWithConnection)
}
