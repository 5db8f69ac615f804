package db

import (
	"context"
	"errors"
	"time"

	"budgee-insights/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const scheduleColumns = `id, frequency, estimated_amount, confidence, user_confirmed, anchors,
	COALESCE(reference_date, '0001-01-01'::date), COALESCE(source_transaction_ids, '{}'), updated_at`

func scanSchedule(row pgx.Row) (models.PaycheckSchedule, error) {
	var (
		s          models.PaycheckSchedule
		frequency  string
		confidence string
	)
	err := row.Scan(&s.ID, &frequency, &s.EstimatedAmount, &confidence, &s.UserConfirmed, &s.Anchors,
		&s.ReferenceDate, &s.SourceTransactionIDs, &s.UpdatedAt)
	s.Frequency = models.PayFrequency(frequency)
	s.Confidence = models.DetectionConfidence(confidence)
	return s, err
}

// GetPaycheckSchedule returns the user's schedule, or nil when none is stored.
func GetPaycheckSchedule(ctx context.Context, pool *pgxpool.Pool, userID int64) (*models.PaycheckSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM paycheck_schedules WHERE user_id = $1`
	s, err := scanSchedule(pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SavePaycheckSchedule stores the user's single schedule, replacing the
// previous one.
func SavePaycheckSchedule(ctx context.Context, pool *pgxpool.Pool, userID int64, s models.PaycheckSchedule) (*models.PaycheckSchedule, error) {
	query := `
		INSERT INTO paycheck_schedules (user_id, frequency, estimated_amount, confidence, user_confirmed,
			anchors, reference_date, source_transaction_ids, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			frequency = $2,
			estimated_amount = $3,
			confidence = $4,
			user_confirmed = $5,
			anchors = $6,
			reference_date = $7,
			source_transaction_ids = $8,
			updated_at = $9
		RETURNING ` + scheduleColumns

	var reference *time.Time
	if !s.ReferenceDate.IsZero() {
		reference = &s.ReferenceDate
	}
	saved, err := scanSchedule(pool.QueryRow(ctx, query,
		userID,
		string(s.Frequency),
		s.EstimatedAmount,
		string(s.Confidence),
		s.UserConfirmed,
		s.Anchors,
		reference,
		s.SourceTransactionIDs,
		s.UpdatedAt,
	))
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
