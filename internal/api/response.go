package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/shekel-labs/shekel-settlement/internal/types"
)

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err *types.Error) {
	message := err.Error()
	if err.StatusCode >= http.StatusInternalServerError {
		log.Ctx(ctx).Error().Err(err).Msg("request failed")
		// internal details stay in the logs
		message = "internal service error"
	}
	writeJSON(w, err.StatusCode, ErrorResponse{
		ErrorCode: err.ErrorCode.String(),
		Message:   message,
	})
}
