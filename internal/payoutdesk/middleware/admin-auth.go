package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"go-payout/internal/payoutdesk/handlers"
	"go-payout/pkg/jwtfactory"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

// AdminAuth lets through requests bearing a valid token with the admin role.
// CORS preflight requests are never authenticated.
type AdminAuth struct {
	tokenAuth *jwtauth.JWTAuth
	logger    *logging.ZapLogger
}

func NewAdminAuth(tokenAuth *jwtauth.JWTAuth, logger *logging.ZapLogger) *AdminAuth {
	return &AdminAuth{
		tokenAuth: tokenAuth,
		logger:    logger,
	}
}

func (a *AdminAuth) CreateHandler(next http.Handler) http.Handler {
	verified := jwtauth.Verifier(a.tokenAuth)(a.authorize(next))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		verified.ServeHTTP(w, r)
	})
}

func (a *AdminAuth) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, claims, err := jwtauth.FromContext(ctx)
		if err != nil || token == nil {
			a.logger.DebugCtx(ctx, "admin token rejected", zap.Error(err))
			handlers.WriteError(ctx, w, http.StatusUnauthorized, "Unauthorized", a.logger)
			return
		}

		if role, _ := claims[jwtfactory.RoleClaimName].(string); role != jwtfactory.AdminRole {
			a.logger.WarnCtx(ctx, "token without admin role", zap.String("subject", token.Subject()))
			handlers.WriteError(ctx, w, http.StatusForbidden, "Forbidden", a.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(logging.WithContextFields(ctx, zap.String("admin", token.Subject()))))
	})
}
