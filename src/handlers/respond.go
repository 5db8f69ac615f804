package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"budgee-insights/src/allocation"
	"budgee-insights/src/logger"
	"budgee-insights/src/middleware"
	"budgee-insights/src/models"
	"budgee-insights/src/service"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requestUser returns the authenticated user and a logger tagged with it.
func requestUser(r *http.Request) (int64, zerolog.Logger) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	l := logger.FromContext(r.Context()).With().Int64("user_id", userID).Logger()
	return userID, l
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyValidated),
		errors.Is(err, service.ErrScheduleNotConfirmed),
		errors.Is(err, service.ErrNothingToConfirm),
		errors.Is(err, allocation.ErrTerminalState):
		return http.StatusConflict
	case errors.Is(err, allocation.ErrInvalidTransition),
		errors.Is(err, allocation.ErrInvalidTargets),
		errors.Is(err, models.ErrInvalidAnchors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// serviceError logs err and replies with its status. Internal errors get
// msg instead of the error text.
func serviceError(w http.ResponseWriter, l zerolog.Logger, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		l.Error().Err(err).Msg(msg)
		http.Error(w, msg, status)
		return
	}
	l.Warn().Err(err).Int("status", status).Msg(msg)
	http.Error(w, err.Error(), status)
}
