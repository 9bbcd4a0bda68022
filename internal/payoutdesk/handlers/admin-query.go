package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-payout/internal/common/clientprotocol"
	"go-payout/internal/payoutdesk/data"
	"go-payout/internal/payoutdesk/service"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

const (
	statusQueryParam     = "status"
	statusUpdatedMessage = "Status updated"
)

var adminPreflight = preflight{
	methods: "GET, PUT, OPTIONS",
	headers: "Content-Type, Authorization",
}

type AdminQueryHandler struct {
	service AdminService
	logger  *logging.ZapLogger
}

type AdminService interface {
	ListWithdrawals(ctx context.Context, statusFilter string) ([]data.Withdrawal, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

func NewAdminQueryHandler(service AdminService, logger *logging.ZapLogger) *AdminQueryHandler {
	return &AdminQueryHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AdminQueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		adminPreflight.write(w)
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.updateStatus(w, r)
	default:
		WriteError(r.Context(), w, http.StatusMethodNotAllowed, methodNotAllowedErrorMessage, h.logger)
	}
}

func (h *AdminQueryHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statusFilter := r.URL.Query().Get(statusQueryParam)
	if statusFilter == "" {
		statusFilter = data.AllStatusesFilter
	}

	withdrawals, err := h.service.ListWithdrawals(ctx, statusFilter)
	if err != nil {
		h.logger.ErrorCtx(ctx, "error listing withdrawals", zap.Error(err))
		WriteInternalError(ctx, w, h.logger)
		return
	}

	res := clientprotocol.WithdrawalsList{
		Withdrawals: make([]clientprotocol.Withdrawal, len(withdrawals)),
	}
	for i, withdrawal := range withdrawals {
		res.Withdrawals[i] = convertWithdrawal(withdrawal)
	}
	writeJSON(ctx, w, http.StatusOK, res, h.logger)
}

func (h *AdminQueryHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer closeBody(ctx, r.Body, h.logger)

	request, err := decodeJSON[clientprotocol.StatusUpdateRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(ctx, "input decoding error", zap.Error(err))
		WriteError(ctx, w, http.StatusBadRequest, invalidBodyErrorMessage, h.logger)
		return
	}

	err = h.service.UpdateStatus(ctx, request.ID, request.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			h.logger.DebugCtx(ctx, "status update is missing fields", zap.Any("input", request))
			WriteError(ctx, w, http.StatusBadRequest, "Missing id or status", h.logger)
		case errors.Is(err, service.ErrUnknownStatus):
			h.logger.DebugCtx(ctx, "unknown status", zap.String("status", request.Status))
			WriteError(ctx, w, http.StatusBadRequest, "Unknown status", h.logger)
		default:
			h.logger.ErrorCtx(ctx, "status update handler error", zap.Error(err), zap.Any("input", request))
			WriteInternalError(ctx, w, h.logger)
		}
		return
	}

	writeJSON(ctx, w, http.StatusOK, clientprotocol.StatusUpdateResponse{
		Success: true,
		Message: statusUpdatedMessage,
	}, h.logger)
}

func convertWithdrawal(withdrawal data.Withdrawal) clientprotocol.Withdrawal {
	amount, _ := withdrawal.Amount.Float64()
	return clientprotocol.Withdrawal{
		ID:          withdrawal.ID,
		PhoneNumber: withdrawal.PhoneNumber,
		BankName:    withdrawal.BankName,
		Amount:      amount,
		Status:      string(withdrawal.Status),
		CreatedAt:   formatTime(&withdrawal.CreatedAt),
		ProcessedAt: formatTime(withdrawal.ProcessedAt),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	formatted := t.Format(time.RFC3339Nano)
	return &formatted
}
