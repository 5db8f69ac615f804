// Package service runs the classification, analysis, paycheck and
// allocation engines over a user's stored data.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgee-insights/src/allocation"
	"budgee-insights/src/analysis"
	"budgee-insights/src/classifier"
	"budgee-insights/src/db"
	"budgee-insights/src/models"
	"budgee-insights/src/paycheck"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrAlreadyValidated     = errors.New("transaction bucket already validated")
	ErrScheduleNotConfirmed = errors.New("paycheck schedule not confirmed")
	ErrNothingToConfirm     = errors.New("no paycheck schedule to confirm")
)

const DefaultAllocationHorizon = 6

type Options struct {
	LookbackMonths int
	Paycheck       paycheck.Options
	// AllocationHorizon is how many paychecks ahead allocations are scheduled.
	AllocationHorizon int
}

type Service struct {
	Repo  Repository
	Cache *db.Cache
	Now   func() time.Time
	opts  Options
}

func New(repo Repository, cache *db.Cache, opts Options) *Service {
	if opts.LookbackMonths <= 0 {
		opts.LookbackMonths = analysis.DefaultLookbackMonths
	}
	if opts.AllocationHorizon <= 0 {
		opts.AllocationHorizon = DefaultAllocationHorizon
	}
	return &Service{Repo: repo, Cache: cache, Now: time.Now, opts: opts}
}

// Report is the analysis plus the recommended split of disposable income.
type Report struct {
	models.Analysis
	Recommendations []allocation.Recommendation `json:"recommendations"`
}

// Analysis returns the user's analysis, computing it when the cache has no
// snapshot.
func (s *Service) Analysis(ctx context.Context, userID int64) (Report, error) {
	a, err := s.snapshot(ctx, userID)
	if err != nil {
		return Report{}, err
	}
	targets, err := s.Repo.ListAllocationTargets(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("list allocation targets: %w", err)
	}
	recs, err := allocation.Recommend(a.Flow, targets)
	if err != nil {
		return Report{}, err
	}
	return Report{Analysis: a, Recommendations: recs}, nil
}

func (s *Service) snapshot(ctx context.Context, userID int64) (models.Analysis, error) {
	gen := s.Cache.Generation(userID)
	if a, ok := s.Cache.GetAnalysis(userID); ok {
		return a, nil
	}

	now := s.Now()
	txs, err := s.Repo.ListTransactions(ctx, userID, now.AddDate(0, -s.opts.LookbackMonths, 0))
	if err != nil {
		return models.Analysis{}, fmt.Errorf("list transactions: %w", err)
	}
	accounts, err := s.Repo.ListAccounts(ctx, userID)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("list accounts: %w", err)
	}
	rules, err := s.Repo.ListBucketRules(ctx, userID)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("list bucket rules: %w", err)
	}

	a := analysis.Analyze(txs, accounts, analysis.Options{
		Now:            now,
		LookbackMonths: s.opts.LookbackMonths,
		UserRules:      classifier.CompileBucketRules(rules),
	})
	s.Cache.SetAnalysis(userID, gen, a)
	return a, nil
}

// DetectPaycheck proposes a schedule from recent income. A schedule the
// user already confirmed is returned as is and never replaced.
func (s *Service) DetectPaycheck(ctx context.Context, userID int64) (paycheck.Detection, error) {
	gen := s.Cache.Generation(userID)
	existing, err := s.Repo.GetPaycheckSchedule(ctx, userID)
	if err != nil {
		return paycheck.Detection{}, fmt.Errorf("get paycheck schedule: %w", err)
	}
	if existing != nil && existing.UserConfirmed {
		return paycheck.Detection{
			Schedule:   existing,
			Confidence: existing.Confidence,
			Message:    fmt.Sprintf("Using your confirmed %s paycheck schedule.", existing.Frequency),
		}, nil
	}
	if d, ok := s.Cache.GetDetection(userID); ok {
		return d, nil
	}

	opts := s.opts.Paycheck
	opts.Now = s.Now()
	opts.LookbackMonths = s.opts.LookbackMonths
	txs, err := s.Repo.ListTransactions(ctx, userID, opts.Now.AddDate(0, -opts.LookbackMonths, 0))
	if err != nil {
		return paycheck.Detection{}, fmt.Errorf("list transactions: %w", err)
	}

	d := paycheck.Detect(txs, opts)
	if d.Detected() {
		proposal := *d.Schedule
		if existing != nil {
			proposal.ID = existing.ID
		}
		saved, err := s.Repo.SavePaycheckSchedule(ctx, userID, proposal)
		if err != nil {
			return paycheck.Detection{}, fmt.Errorf("save paycheck proposal: %w", err)
		}
		d.Schedule = saved
	}
	s.Cache.SetDetection(userID, gen, d)
	return d, nil
}

// ConfirmPaycheck accepts the stored proposal, or applies the user's edit
// when one is given. An edit needs no prior proposal.
func (s *Service) ConfirmPaycheck(ctx context.Context, userID int64, edit *paycheck.Edit) (*models.PaycheckSchedule, error) {
	existing, err := s.Repo.GetPaycheckSchedule(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get paycheck schedule: %w", err)
	}

	now := s.Now()
	var confirmed models.PaycheckSchedule
	switch {
	case edit != nil:
		base := models.PaycheckSchedule{}
		if existing != nil {
			base = *existing
		}
		confirmed, err = paycheck.ApplyEdit(base, *edit, now)
		if err != nil {
			return nil, err
		}
	case existing == nil:
		return nil, ErrNothingToConfirm
	default:
		confirmed = paycheck.Confirm(*existing, now)
	}

	saved, err := s.Repo.SavePaycheckSchedule(ctx, userID, confirmed)
	if err != nil {
		return nil, fmt.Errorf("save paycheck schedule: %w", err)
	}
	s.Cache.InvalidateUser(userID)
	return saved, nil
}

// GenerateAllocations schedules the next paychecks' allocations from the
// confirmed schedule, replacing any upcoming ones.
func (s *Service) GenerateAllocations(ctx context.Context, userID int64) ([]models.ScheduledAllocation, error) {
	schedule, err := s.Repo.GetPaycheckSchedule(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get paycheck schedule: %w", err)
	}
	if schedule == nil || !schedule.UserConfirmed {
		return nil, ErrScheduleNotConfirmed
	}

	a, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	targets, err := s.Repo.ListAllocationTargets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list allocation targets: %w", err)
	}

	now := s.Now()
	plan := allocation.Plan{
		Schedule:          *schedule,
		Targets:           targets,
		MonthlyDisposable: a.Flow.DiscretionaryIncome(),
	}
	allocs, err := allocation.Schedule(plan, now, s.opts.AllocationHorizon, now)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceUpcomingAllocations(ctx, userID, now, allocs); err != nil {
		return nil, fmt.Errorf("save allocations: %w", err)
	}
	return allocs, nil
}

func (s *Service) ListAllocations(ctx context.Context, userID int64) ([]models.ScheduledAllocation, error) {
	now := s.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.Repo.ListScheduledAllocations(ctx, userID, from)
}

// TransitionAllocation applies a lifecycle action to one allocation.
func (s *Service) TransitionAllocation(ctx context.Context, userID int64, id string, action allocation.Action, executionID string) (*models.ScheduledAllocation, error) {
	current, err := s.Repo.GetScheduledAllocation(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	if current == nil {
		return nil, ErrNotFound
	}

	next, err := allocation.Apply(*current, action, executionID, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateScheduledAllocation(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("update allocation: %w", err)
	}
	return &next, nil
}

// OverrideBucket records the user's bucket for a transaction. The first
// validated override is final.
func (s *Service) OverrideBucket(ctx context.Context, userID int64, transactionID string, bucket models.Bucket) (classifier.Classification, error) {
	if _, err := models.ParseBucket(string(bucket)); err != nil {
		return classifier.Classification{}, err
	}
	tx, err := s.Repo.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return classifier.Classification{}, fmt.Errorf("get transaction: %w", err)
	}
	if tx == nil {
		return classifier.Classification{}, ErrNotFound
	}
	if tx.UserValidated && tx.HasUserDecision() {
		return classifier.Classification{}, ErrAlreadyValidated
	}

	if err := s.Repo.SetTransactionOverride(ctx, userID, transactionID, bucket); err != nil {
		return classifier.Classification{}, fmt.Errorf("set override: %w", err)
	}
	s.Cache.InvalidateUser(userID)

	tx.OverrideBucket = &bucket
	tx.UserValidated = true
	return classifier.Classify(*tx), nil
}

// Invalidate drops cached snapshots after the user's data changed.
func (s *Service) Invalidate(userID int64) {
	s.Cache.InvalidateUser(userID)
}
