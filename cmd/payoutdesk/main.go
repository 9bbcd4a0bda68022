package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-chi/jwtauth/v5"
	"go-payout/cmd/payoutdesk/config"
	"go-payout/internal/payoutdesk"
	"go-payout/internal/payoutdesk/data/database"
	"go-payout/internal/payoutdesk/data/dbrepository"
	"go-payout/internal/payoutdesk/dispatcher"
	"go-payout/internal/payoutdesk/notifier"
	"go-payout/internal/payoutdesk/service"
	"go-payout/pkg/logging"
	"go-payout/pkg/pgxstorage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var logOptions []logging.Option
	if cfg.LogConsole {
		logOptions = append(logOptions, logging.WithConsoleEncoding(), logging.WithoutSampling())
	}
	logger, err := logging.NewZapLogger(cfg.LogLevel, logOptions...)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck // nothing to do on failure

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelCtx()

	dbFactory := database.NewPgxDatabaseFactory(cfg.DB, logger)
	storage, err := pgxstorage.New(rootCtx, dbFactory)
	if err != nil {
		logger.ErrorCtx(rootCtx, "failed to open database", zap.Error(err))
		return
	}
	defer storage.Close()

	repository := dbrepository.New(storage, logger)
	connectionsManager := pgxstorage.NewConnectionsManager(storage)

	telegram := notifier.NewTelegram(cfg.Telegram, logger)
	if !telegram.Configured() {
		logger.WarnCtx(rootCtx, "telegram is not configured, admin notifications are disabled")
	}
	notifications := dispatcher.New(cfg.Dispatcher, telegram, logger)

	submissionService := service.NewSubmissions(connectionsManager, repository, notifications, logger)
	adminService := service.NewAdmin(connectionsManager, repository, cfg.AllowedStatuses, logger)

	var tokenAuth *jwtauth.JWTAuth
	if cfg.AdminJWT.Enabled() {
		tokenAuth = jwtauth.New(cfg.AdminJWT.Algorithm, []byte(cfg.AdminJWT.Secret), nil)
	} else {
		logger.WarnCtx(rootCtx, "ADMIN_JWT_SECRET is not set, admin routes are not protected")
	}

	server := payoutdesk.New(cfg.Server, submissionService, adminService, tokenAuth, logger)

	logger.InfoCtx(rootCtx, "starting server", zap.String("address", cfg.Server.ServerAddress))
	if err := run(rootCtx, cfg, server, notifications, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
	} else {
		logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	}
}

func run(
	rootCtx context.Context,
	cfg *config.Config,
	server *payoutdesk.Server,
	notifications *dispatcher.Dispatcher,
	logger *logging.ZapLogger,
) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), 2*cfg.Server.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		notifications.Run()
		return nil
	})

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		defer notifications.Stop()
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occured: %w", err)
	}

	return nil
}
