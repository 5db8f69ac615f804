package db

import (
	"context"
	"fmt"

	"budgee-insights/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const targetColumns = `id, user_id, name, percent, account_id, created_at, updated_at`

func scanTarget(row pgx.Row) (models.AllocationTarget, error) {
	var t models.AllocationTarget
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Percent, &t.AccountID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func CreateAllocationTarget(ctx context.Context, pool *pgxpool.Pool, target *models.AllocationTarget) (*models.AllocationTarget, error) {
	query := `
		INSERT INTO allocation_targets (user_id, name, percent, account_id)
		VALUES ($1, $2, $3::numeric, $4)
		RETURNING ` + targetColumns
	t, err := scanTarget(pool.QueryRow(ctx, query, target.UserID, target.Name, target.Percent.String(), target.AccountID))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func GetAllocationTargetByID(ctx context.Context, pool *pgxpool.Pool, userID, targetID int) (*models.AllocationTarget, error) {
	query := `SELECT ` + targetColumns + ` FROM allocation_targets WHERE id = $1 AND user_id = $2`
	t, err := scanTarget(pool.QueryRow(ctx, query, targetID, userID))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func GetAllAllocationTargetsForUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.AllocationTarget, error) {
	query := `SELECT ` + targetColumns + ` FROM allocation_targets WHERE user_id = $1 ORDER BY id`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := []models.AllocationTarget{}
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func UpdateAllocationTarget(ctx context.Context, pool *pgxpool.Pool, target *models.AllocationTarget) (*models.AllocationTarget, error) {
	query := `
		UPDATE allocation_targets
		SET name = $1, percent = $2::numeric, account_id = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + targetColumns
	t, err := scanTarget(pool.QueryRow(ctx, query, target.Name, target.Percent.String(), target.AccountID, target.ID, target.UserID))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func DeleteAllocationTarget(ctx context.Context, pool *pgxpool.Pool, userID, targetID int) error {
	query := `DELETE FROM allocation_targets WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, targetID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("allocation target not found")
	}
	return nil
}
