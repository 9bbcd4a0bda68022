package handlers

import (
	"context"
	"errors"
	"net/http"

	"go-payout/internal/common/clientprotocol"
	"go-payout/internal/payoutdesk/data"
	"go-payout/internal/payoutdesk/service"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

const submissionAcceptedMessage = "Заявка принята"

var submissionPreflight = preflight{
	methods: "POST, OPTIONS",
	headers: "Content-Type",
}

type SubmissionHandler struct {
	service SubmissionService
	logger  *logging.ZapLogger
}

type SubmissionService interface {
	Submit(ctx context.Context, input service.SubmissionInput) (withdrawalID int64, err error)
}

func NewSubmissionHandler(service SubmissionService, logger *logging.ZapLogger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger,
	}
}

func (h *SubmissionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		submissionPreflight.write(w)
	case http.MethodPost:
		h.submit(w, r)
	default:
		WriteError(r.Context(), w, http.StatusMethodNotAllowed, methodNotAllowedErrorMessage, h.logger)
	}
}

func (h *SubmissionHandler) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer closeBody(ctx, r.Body, h.logger)

	request, err := decodeJSON[clientprotocol.SubmissionRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(ctx, "input decoding error", zap.Error(err))
		WriteError(ctx, w, http.StatusBadRequest, invalidBodyErrorMessage, h.logger)
		return
	}

	id, err := h.service.Submit(ctx, service.SubmissionInput{
		PhoneNumber:    request.PhoneNumber,
		BankName:       request.BankName,
		Amount:         request.Amount,
		ClaimedBalance: request.UserBalance,
		Timestamp:      request.Timestamp,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			h.logger.DebugCtx(ctx, "submission is missing fields", zap.Error(err))
			WriteError(ctx, w, http.StatusBadRequest, "Missing required fields", h.logger)
		case errors.Is(err, service.ErrNonPositiveAmount):
			h.logger.DebugCtx(ctx, "submission amount is negative", zap.String("amount", request.Amount.String()))
			WriteError(ctx, w, http.StatusBadRequest, "Amount must be positive", h.logger)
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, data.ErrConstraintViolation):
			h.logger.DebugCtx(ctx, "submission amount is not storable", zap.Error(err))
			WriteError(ctx, w, http.StatusBadRequest, "Invalid amount", h.logger)
		case errors.Is(err, service.ErrInsufficientBalance):
			h.logger.DebugCtx(
				ctx,
				"submission exceeds claimed balance",
				zap.String("amount", request.Amount.String()),
				zap.String("userBalance", request.UserBalance.String()),
			)
			WriteError(ctx, w, http.StatusBadRequest, "Insufficient balance", h.logger)
		default:
			h.logger.ErrorCtx(ctx, "submission handler error", zap.Error(err))
			WriteInternalError(ctx, w, h.logger)
		}
		return
	}

	writeJSON(ctx, w, http.StatusOK, clientprotocol.SubmissionResponse{
		Success:      true,
		WithdrawalID: id,
		Message:      submissionAcceptedMessage,
	}, h.logger)
}
