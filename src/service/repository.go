package service

import (
	"context"
	"time"

	"budgee-insights/src/models"
)

// Repository is the persistence the service needs. Getters return a nil
// value and a nil error when the record does not exist.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=repository.go Repository
type Repository interface {
	ListTransactions(ctx context.Context, userID int64, since time.Time) ([]models.Transaction, error)
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)
	GetTransaction(ctx context.Context, userID int64, transactionID string) (*models.Transaction, error)
	SetTransactionOverride(ctx context.Context, userID int64, transactionID string, bucket models.Bucket) error

	ListBucketRules(ctx context.Context, userID int64) ([]models.BucketRule, error)
	ListAllocationTargets(ctx context.Context, userID int64) ([]models.AllocationTarget, error)

	GetPaycheckSchedule(ctx context.Context, userID int64) (*models.PaycheckSchedule, error)
	SavePaycheckSchedule(ctx context.Context, userID int64, s models.PaycheckSchedule) (*models.PaycheckSchedule, error)

	// ReplaceUpcomingAllocations drops upcoming allocations dated on or
	// after from and stores allocs in their place.
	ReplaceUpcomingAllocations(ctx context.Context, userID int64, from time.Time, allocs []models.ScheduledAllocation) error
	ListScheduledAllocations(ctx context.Context, userID int64, from time.Time) ([]models.ScheduledAllocation, error)
	GetScheduledAllocation(ctx context.Context, userID int64, id string) (*models.ScheduledAllocation, error)
	UpdateScheduledAllocation(ctx context.Context, userID int64, a models.ScheduledAllocation) error
}
