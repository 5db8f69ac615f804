package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgee-insights/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const allocationColumns = `id, COALESCE(schedule_id, 0), target_name, paycheck_date, amount, status,
	reminder_sent_at, execution_id, resolved_at, created_at`

func scanAllocation(row pgx.Row) (models.ScheduledAllocation, error) {
	var (
		a      models.ScheduledAllocation
		status string
	)
	err := row.Scan(&a.ID, &a.ScheduleID, &a.TargetName, &a.PaycheckDate, &a.Amount, &status,
		&a.ReminderSentAt, &a.ExecutionID, &a.ResolvedAt, &a.CreatedAt)
	a.Status = models.AllocationStatus(status)
	return a, err
}

// ReplaceUpcomingAllocations swaps the user's not yet actioned allocations
// dated on or after from for allocs, in one transaction. Allocations already
// executed or skipped keep their row.
func ReplaceUpcomingAllocations(ctx context.Context, pool *pgxpool.Pool, userID int64, from time.Time, allocs []models.ScheduledAllocation) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM scheduled_allocations WHERE user_id = $1 AND status = $2 AND paycheck_date >= $3::date`,
		userID, string(models.AllocationUpcoming), from)
	if err != nil {
		return fmt.Errorf("delete upcoming allocations: %w", err)
	}

	batch := &pgx.Batch{}
	for _, a := range allocs {
		batch.Queue(`
			INSERT INTO scheduled_allocations (id, user_id, schedule_id, target_name, paycheck_date, amount, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			a.ID, userID, a.ScheduleID, a.TargetName, a.PaycheckDate, a.Amount.String(), string(a.Status), a.CreatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert allocations: %w", err)
	}

	return tx.Commit(ctx)
}

func ListScheduledAllocations(ctx context.Context, pool *pgxpool.Pool, userID int64, from time.Time) ([]models.ScheduledAllocation, error) {
	query := `SELECT ` + allocationColumns + `
		FROM scheduled_allocations
		WHERE user_id = $1 AND paycheck_date >= $2::date
		ORDER BY paycheck_date, target_name
	`
	rows, err := pool.Query(ctx, query, userID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allocs := []models.ScheduledAllocation{}
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocs = append(allocs, a)
	}
	return allocs, rows.Err()
}

func GetScheduledAllocation(ctx context.Context, pool *pgxpool.Pool, userID int64, id string) (*models.ScheduledAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM scheduled_allocations WHERE user_id = $1 AND id = $2`
	a, err := scanAllocation(pool.QueryRow(ctx, query, userID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func UpdateScheduledAllocation(ctx context.Context, pool *pgxpool.Pool, userID int64, a models.ScheduledAllocation) error {
	query := `
		UPDATE scheduled_allocations
		SET status = $1, reminder_sent_at = $2, execution_id = $3, resolved_at = $4
		WHERE user_id = $5 AND id = $6
	`
	cmd, err := pool.Exec(ctx, query, string(a.Status), a.ReminderSentAt, a.ExecutionID, a.ResolvedAt, userID, a.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("allocation not found")
	}
	return nil
}
