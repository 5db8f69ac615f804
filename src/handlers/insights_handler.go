package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"budgee-insights/src/allocation"
	"budgee-insights/src/models"
	"budgee-insights/src/paycheck"
	"budgee-insights/src/service"

	"github.com/go-chi/chi/v5"
)

func GetAnalysis(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		report, err := svc.Analysis(r.Context(), userID)
		if err != nil {
			serviceError(w, l, err, "failed to analyze transactions")
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func DetectPaycheck(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		detection, err := svc.DetectPaycheck(r.Context(), userID)
		if err != nil {
			serviceError(w, l, err, "failed to detect paycheck")
			return
		}
		writeJSON(w, http.StatusOK, detection)
	}
}

// ConfirmPaycheck accepts the proposed schedule. A JSON body with
// frequency and anchors replaces it with the user's own schedule.
func ConfirmPaycheck(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)

		var edit *paycheck.Edit
		var req paycheck.Edit
		err := json.NewDecoder(r.Body).Decode(&req)
		switch {
		case errors.Is(err, io.EOF):
		case err != nil:
			l.Error().Err(err).Msg("failed to decode confirm paycheck request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		case req.Frequency != "":
			edit = &req
		}

		schedule, err := svc.ConfirmPaycheck(r.Context(), userID, edit)
		if err != nil {
			serviceError(w, l, err, "failed to confirm paycheck schedule")
			return
		}
		l.Info().Str("frequency", string(schedule.Frequency)).Bool("edited", edit != nil).Msg("confirmed paycheck schedule")
		writeJSON(w, http.StatusOK, schedule)
	}
}

func GenerateAllocations(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		allocs, err := svc.GenerateAllocations(r.Context(), userID)
		if err != nil {
			serviceError(w, l, err, "failed to schedule allocations")
			return
		}
		l.Info().Int("count", len(allocs)).Msg("scheduled allocations")
		writeJSON(w, http.StatusCreated, allocs)
	}
}

func ListAllocations(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		allocs, err := svc.ListAllocations(r.Context(), userID)
		if err != nil {
			serviceError(w, l, err, "failed to list allocations")
			return
		}
		if allocs == nil {
			allocs = []models.ScheduledAllocation{}
		}
		writeJSON(w, http.StatusOK, allocs)
	}
}

// TransitionAllocation applies remind, complete or skip to one allocation.
func TransitionAllocation(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		id := chi.URLParam(r, "id")
		l = l.With().Str("allocation_id", id).Logger()

		action, err := allocation.ParseAction(chi.URLParam(r, "action"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req struct {
			ExecutionID string `json:"execution_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		updated, err := svc.TransitionAllocation(r.Context(), userID, id, action, req.ExecutionID)
		if err != nil {
			serviceError(w, l, err, "failed to update allocation")
			return
		}
		l.Info().Str("status", string(updated.Status)).Msg("updated allocation")
		writeJSON(w, http.StatusOK, updated)
	}
}

func OverrideTransactionBucket(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		transactionID := chi.URLParam(r, "transaction_id")
		l = l.With().Str("transaction_id", transactionID).Logger()

		var req struct {
			Bucket string `json:"bucket"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Error().Err(err).Msg("failed to decode bucket override request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		bucket, err := models.ParseBucket(req.Bucket)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		classification, err := svc.OverrideBucket(r.Context(), userID, transactionID, bucket)
		if err != nil {
			serviceError(w, l, err, "failed to override transaction bucket")
			return
		}
		l.Info().Str("bucket", string(bucket)).Msg("overrode transaction bucket")
		writeJSON(w, http.StatusOK, classification)
	}
}
