package db

import (
	"context"
	_ "embed"
	"time"

	"budgee-insights/src/models"
	"budgee-insights/src/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Migrate creates any missing tables.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

// Store is the Postgres-backed service.Repository.
type Store struct {
	pool *pgxpool.Pool
}

var _ service.Repository = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ListTransactions(ctx context.Context, userID int64, since time.Time) ([]models.Transaction, error) {
	return ListTransactionsForUser(ctx, s.pool, userID, since)
}

func (s *Store) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	return ListAccountsForUser(ctx, s.pool, userID)
}

func (s *Store) GetTransaction(ctx context.Context, userID int64, transactionID string) (*models.Transaction, error) {
	return GetTransaction(ctx, s.pool, userID, transactionID)
}

func (s *Store) SetTransactionOverride(ctx context.Context, userID int64, transactionID string, bucket models.Bucket) error {
	return SetTransactionOverride(ctx, s.pool, userID, transactionID, bucket)
}

func (s *Store) ListBucketRules(ctx context.Context, userID int64) ([]models.BucketRule, error) {
	return GetAllBucketRules(ctx, s.pool, userID)
}

func (s *Store) ListAllocationTargets(ctx context.Context, userID int64) ([]models.AllocationTarget, error) {
	return GetAllAllocationTargetsForUser(ctx, s.pool, userID)
}

func (s *Store) GetPaycheckSchedule(ctx context.Context, userID int64) (*models.PaycheckSchedule, error) {
	return GetPaycheckSchedule(ctx, s.pool, userID)
}

func (s *Store) SavePaycheckSchedule(ctx context.Context, userID int64, schedule models.PaycheckSchedule) (*models.PaycheckSchedule, error) {
	return SavePaycheckSchedule(ctx, s.pool, userID, schedule)
}

func (s *Store) ReplaceUpcomingAllocations(ctx context.Context, userID int64, from time.Time, allocs []models.ScheduledAllocation) error {
	return ReplaceUpcomingAllocations(ctx, s.pool, userID, from, allocs)
}

func (s *Store) ListScheduledAllocations(ctx context.Context, userID int64, from time.Time) ([]models.ScheduledAllocation, error) {
	return ListScheduledAllocations(ctx, s.pool, userID, from)
}

func (s *Store) GetScheduledAllocation(ctx context.Context, userID int64, id string) (*models.ScheduledAllocation, error) {
	return GetScheduledAllocation(ctx, s.pool, userID, id)
}

func (s *Store) UpdateScheduledAllocation(ctx context.Context, userID int64, a models.ScheduledAllocation) error {
	return UpdateScheduledAllocation(ctx, s.pool, userID, a)
}
