package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"budgee-insights/src/classifier"
	db "budgee-insights/src/db/sql"
	"budgee-insights/src/models"
	"budgee-insights/src/service"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type bucketRuleRequest struct {
	Name       string          `json:"name"`
	Conditions json.RawMessage `json:"conditions"`
	Bucket     string          `json:"bucket"`
}

// rule validates the request as the user's rule with the given id.
func (req bucketRuleRequest) rule(userID int64, ruleID int) (*models.BucketRule, error) {
	bucket, err := models.ParseBucket(req.Bucket)
	if err != nil {
		return nil, err
	}
	rule := &models.BucketRule{
		ID:         ruleID,
		UserID:     int(userID),
		Name:       req.Name,
		Conditions: req.Conditions,
		Bucket:     bucket,
	}
	if _, err := classifier.CompileBucketRule(*rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// Bucket rules change classification, so every write drops the user's
// cached analysis.

func CreateBucketRule(pool *pgxpool.Pool, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		var req bucketRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Error().Err(err).Msg("failed to decode create bucket rule request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		rule, err := req.rule(userID, 0)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := db.CreateBucketRule(r.Context(), pool, rule)
		if err != nil {
			l.Error().Err(err).Msg("failed to create bucket rule")
			http.Error(w, "failed to create bucket rule", http.StatusInternalServerError)
			return
		}
		svc.Invalidate(userID)
		l.Info().Int("rule_id", created.ID).Str("name", created.Name).Msg("created bucket rule")
		writeJSON(w, http.StatusCreated, created)
	}
}

func GetBucketRuleByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.Atoi(ruleIDStr)
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		rule, err := db.GetBucketRuleByID(r.Context(), pool, int(userID), ruleID)
		if err != nil {
			l.Warn().Err(err).Int("rule_id", ruleID).Msg("bucket rule not found")
			http.Error(w, "bucket rule not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, rule)
	}
}

func GetAllBucketRules(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		rules, err := db.GetAllBucketRules(r.Context(), pool, userID)
		if err != nil {
			l.Error().Err(err).Msg("failed to get bucket rules")
			http.Error(w, "failed to get bucket rules", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rules)
	}
}

func UpdateBucketRule(pool *pgxpool.Pool, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.Atoi(ruleIDStr)
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		var req bucketRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Error().Err(err).Msg("failed to decode update bucket rule request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		rule, err := req.rule(userID, ruleID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		updated, err := db.UpdateBucketRule(r.Context(), pool, rule)
		if err != nil {
			l.Error().Err(err).Int("rule_id", ruleID).Msg("failed to update bucket rule")
			http.Error(w, "failed to update bucket rule", http.StatusInternalServerError)
			return
		}
		svc.Invalidate(userID)
		l.Info().Int("rule_id", updated.ID).Msg("updated bucket rule")
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteBucketRule(pool *pgxpool.Pool, svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, l := requestUser(r)
		ruleIDStr := chi.URLParam(r, "rule_id")
		ruleID, err := strconv.Atoi(ruleIDStr)
		if err != nil {
			http.Error(w, "invalid rule id", http.StatusBadRequest)
			return
		}
		if err := db.DeleteBucketRule(r.Context(), pool, int(userID), ruleID); err != nil {
			l.Error().Err(err).Int("rule_id", ruleID).Msg("failed to delete bucket rule")
			http.Error(w, "failed to delete bucket rule", http.StatusInternalServerError)
			return
		}
		svc.Invalidate(userID)
		l.Info().Int("rule_id", ruleID).Msg("deleted bucket rule")
		writeJSON(w, http.StatusOK, map[string]string{"message": "bucket rule deleted"})
	}
}
