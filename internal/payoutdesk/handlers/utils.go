package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go-payout/internal/common/clientprotocol"
	"go-payout/pkg/logging"
	"go.uber.org/zap"
)

const (
	invalidBodyErrorMessage      = "Invalid request body"
	methodNotAllowedErrorMessage = "Method not allowed"
	internalErrorMessage         = "Internal server error"
)

func closeBody(ctx context.Context, body io.ReadCloser, logger *logging.ZapLogger) {
	err := body.Close()
	if err != nil {
		logger.ErrorCtx(ctx, "failed to close body", zap.Error(err))
	}
}

// decodeJSON treats an empty body as an empty object.
func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&out)
	if errors.Is(err, io.EOF) {
		return out, nil
	}
	return out, err
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, responseItem any, logger *logging.ZapLogger) {
	res, err := json.Marshal(responseItem)
	if err != nil {
		logger.ErrorCtx(ctx, "error marshalling response", zap.Error(err))
		status = http.StatusInternalServerError
		res = []byte(`{"error":"` + internalErrorMessage + `"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(allowOriginHeader, allowAnyOrigin)
	w.WriteHeader(status)
	if _, err := w.Write(res); err != nil {
		logger.ErrorCtx(ctx, "error writing response", zap.Error(err))
	}
}

// WriteError answers with {"error": message}.
func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string, logger *logging.ZapLogger) {
	writeJSON(ctx, w, status, clientprotocol.ErrorResponse{Error: message}, logger)
}

// WriteInternalError answers with the generic 500 payload.
func WriteInternalError(ctx context.Context, w http.ResponseWriter, logger *logging.ZapLogger) {
	WriteError(ctx, w, http.StatusInternalServerError, internalErrorMessage, logger)
}
