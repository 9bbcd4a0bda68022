package middleware

import (
	"net/http"

	"go-payout/internal/payoutdesk/handlers"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

type PanicRecover struct {
	logger *logging.ZapLogger
}

func NewPanicRecover(logger *logging.ZapLogger) *PanicRecover {
	return &PanicRecover{
		logger: logger,
	}
}

func (pr *PanicRecover) CreateHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rcv := recover(); rcv != nil {
				if rcv == http.ErrAbortHandler { //nolint:errorlint // sentinel is compared by identity
					panic(rcv)
				}
				pr.logger.ErrorCtx(r.Context(), "panic in HTTP handler", zap.Any("recover", rcv))
				handlers.WriteInternalError(r.Context(), w, pr.logger)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
