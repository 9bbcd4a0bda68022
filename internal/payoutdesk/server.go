package payoutdesk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go-payout/internal/payoutdesk/handlers"
	"go-payout/internal/payoutdesk/middleware"
	"go-payout/pkg/logging"
)

const (
	SubmissionPath = "/withdraw"
	AdminPath      = "/admin/withdrawals"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

// New builds the HTTP server. A nil tokenAuth leaves the admin routes open.
func New(
	cfg Config,
	submissionService handlers.SubmissionService,
	adminService handlers.AdminService,
	tokenAuth *jwtauth.JWTAuth,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr: cfg.ServerAddress,
		Handler: createMux(
			submissionService,
			adminService,
			tokenAuth,
			logger,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	res := &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}

	return res
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	submissionService handlers.SubmissionService,
	adminService handlers.AdminService,
	tokenAuth *jwtauth.JWTAuth,
	logger *logging.ZapLogger,
) *chi.Mux {
	submissionHandler := handlers.NewSubmissionHandler(submissionService, logger)
	adminQueryHandler := handlers.NewAdminQueryHandler(adminService, logger)

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewLoggerContext().CreateHandler)
	router.Use(middleware.NewPanicRecover(logger).CreateHandler)

	router.Handle(SubmissionPath, submissionHandler)

	router.Group(func(router chi.Router) {
		if tokenAuth != nil {
			router.Use(middleware.NewAdminAuth(tokenAuth, logger).CreateHandler)
		}
		router.Handle(AdminPath, adminQueryHandler)
	})

	return router
}
