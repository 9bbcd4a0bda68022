package service

import "context"

type ConnectionsManager interface {
	DoWithConnection(ctx context.Context, f func(ctx context.Context) error) error
}
