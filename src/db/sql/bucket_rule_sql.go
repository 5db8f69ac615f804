package db

import (
	"context"
	"fmt"

	"budgee-insights/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bucketRuleColumns = `id, user_id, name, conditions, bucket, created_at, updated_at`

func scanBucketRule(row pgx.Row) (models.BucketRule, error) {
	var (
		r      models.BucketRule
		bucket string
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.Conditions, &bucket, &r.CreatedAt, &r.UpdatedAt)
	r.Bucket = models.Bucket(bucket)
	return r, err
}

func CreateBucketRule(ctx context.Context, pool *pgxpool.Pool, rule *models.BucketRule) (*models.BucketRule, error) {
	query := `
		INSERT INTO bucket_rules (user_id, name, conditions, bucket)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + bucketRuleColumns
	r, err := scanBucketRule(pool.QueryRow(ctx, query, rule.UserID, rule.Name, rule.Conditions, string(rule.Bucket)))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func GetBucketRuleByID(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int) (*models.BucketRule, error) {
	query := `SELECT ` + bucketRuleColumns + ` FROM bucket_rules WHERE id = $1 AND user_id = $2`
	r, err := scanBucketRule(pool.QueryRow(ctx, query, ruleID, userID))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetAllBucketRules returns the user's rules in evaluation order.
func GetAllBucketRules(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]models.BucketRule, error) {
	query := `SELECT ` + bucketRuleColumns + ` FROM bucket_rules WHERE user_id = $1 ORDER BY id`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []models.BucketRule{}
	for rows.Next() {
		r, err := scanBucketRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func UpdateBucketRule(ctx context.Context, pool *pgxpool.Pool, rule *models.BucketRule) (*models.BucketRule, error) {
	query := `
		UPDATE bucket_rules
		SET name = $1, conditions = $2, bucket = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + bucketRuleColumns
	r, err := scanBucketRule(pool.QueryRow(ctx, query, rule.Name, rule.Conditions, string(rule.Bucket), rule.ID, rule.UserID))
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func DeleteBucketRule(ctx context.Context, pool *pgxpool.Pool, userID, ruleID int) error {
	query := `DELETE FROM bucket_rules WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, ruleID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("bucket rule not found")
	}
	return nil
}
