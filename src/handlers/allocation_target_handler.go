package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"budgee-insights/src/allocation"
	db "budgee-insights/src/db/sql"
	"budgee-insights/src/models"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type allocationTargetRequest struct {
	Name      string          `json:"name"`
	Percent   decimal.Decimal `json:"percent"`
	AccountID *string         `json:"account_id"`
}

// withTarget returns targets with t added, or replacing the target of the same id.
func withTarget(targets []models.AllocationTarget, t models.AllocationTarget) []models.AllocationTarget {
	out := make([]models.AllocationTarget, 0, len(targets)+1)
	for _, existing := range targets {
		if t.ID != 0 && existing.ID == t.ID {
			continue
		}
		out = append(out, existing)
	}
	return append(out, t)
}

func CreateAllocationTarget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		var req allocationTargetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			l.Error().Err(err).Msg("failed to decode create allocation target request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		target := models.AllocationTarget{
			UserID:    int(userID),
			Name:      req.Name,
			Percent:   req.Percent,
			AccountID: req.AccountID,
		}

		existing, err := db.GetAllAllocationTargetsForUser(r.Context(), pool, userID)
		if err != nil {
			l.Error().Err(err).Msg("failed to get allocation targets")
			http.Error(w, "failed to create allocation target", http.StatusInternalServerError)
			return
		}
		if err := allocation.ValidateTargets(withTarget(existing, target)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := db.CreateAllocationTarget(r.Context(), pool, &target)
		if err != nil {
			l.Error().Err(err).Msg("failed to create allocation target")
			http.Error(w, "failed to create allocation target", http.StatusInternalServerError)
			return
		}
		l.Info().Int("target_id", created.ID).Str("name", created.Name).Msg("created allocation target")
		writeJSON(w, http.StatusCreated, created)
	}
}

func GetAllocationTargetByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		targetIDStr := chi.URLParam(r, "target_id")
		targetID, err := strconv.Atoi(targetIDStr)
		if err != nil {
			http.Error(w, "invalid target id", http.StatusBadRequest)
			return
		}
		target, err := db.GetAllocationTargetByID(r.Context(), pool, int(userID), targetID)
		if err != nil {
			l.Warn().Err(err).Int("target_id", targetID).Msg("allocation target not found")
			http.Error(w, "allocation target not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, target)
	}
}

func GetAllAllocationTargets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		targets, err := db.GetAllAllocationTargetsForUser(r.Context(), pool, userID)
		if err != nil {
			l.Error().Err(err).Msg("failed to get allocation targets")
			http.Error(w, "failed to get allocation targets", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, targets)
	}
}

func UpdateAllocationTarget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		targetIDStr := chi.URLParam(r, "target_id")
		targetID, err := strconv.Atoi(targetIDStr)
		if err != nil {
			http.Error(w, "invalid target id", http.StatusBadRequest)
			return
		}
		var req allocationTargetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			l.Error().Err(err).Msg("failed to decode update allocation target request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		target := models.AllocationTarget{
			ID:        targetID,
			UserID:    int(userID),
			Name:      req.Name,
			Percent:   req.Percent,
			AccountID: req.AccountID,
		}

		existing, err := db.GetAllAllocationTargetsForUser(r.Context(), pool, userID)
		if err != nil {
			l.Error().Err(err).Msg("failed to get allocation targets")
			http.Error(w, "failed to update allocation target", http.StatusInternalServerError)
			return
		}
		if err := allocation.ValidateTargets(withTarget(existing, target)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateAllocationTarget(r.Context(), pool, &target)
		if err != nil {
			l.Error().Err(err).Int("target_id", targetID).Msg("failed to update allocation target")
			http.Error(w, "failed to update allocation target", http.StatusInternalServerError)
			return
		}
		l.Info().Int("target_id", updated.ID).Msg("updated allocation target")
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteAllocationTarget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		targetIDStr := chi.URLParam(r, "target_id")
		targetID, err := strconv.Atoi(targetIDStr)
		if err != nil {
			http.Error(w, "invalid target id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteAllocationTarget(r.Context(), pool, int(userID), targetID); err != nil {
			l.Error().Err(err).Int("target_id", targetID).Msg("failed to delete allocation target")
			http.Error(w, "failed to delete allocation target", http.StatusInternalServerError)
			return
		}
		l.Info().Int("target_id", targetID).Msg("deleted allocation target")
		writeJSON(w, http.StatusOK, map[string]string{"message": "allocation target deleted"})
	}
}
