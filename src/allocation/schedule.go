package allocation

import (
	"fmt"
	"time"

	"budgee-insights/src/models"
	"budgee-insights/src/paycheck"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// allocationNamespace seeds allocation ids so the same schedule, date and
// target always map to the same id.
var allocationNamespace = uuid.MustParse("6f1c2b8e-4d0a-4f57-9a3e-1b7d5c2e9f40")

// AllocationID is the stable id of the allocation for one target on one
// paycheck date of a schedule.
func AllocationID(scheduleID int64, paycheckDate time.Time, target string) string {
	key := fmt.Sprintf("%d|%s|%s", scheduleID, paycheckDate.Format(time.DateOnly), target)
	return uuid.NewSHA1(allocationNamespace, []byte(key)).String()
}

// Plan is everything needed to schedule allocations.
type Plan struct {
	Schedule models.PaycheckSchedule
	Targets  []models.AllocationTarget
	// MonthlyDisposable is the disposable income the allocations are funded
	// from. Each paycheck carries its share of it, never more than the
	// paycheck itself.
	MonthlyDisposable float64
}

// PerPaycheck is the amount available for allocation on each paycheck.
func (p Plan) PerPaycheck() decimal.Decimal {
	perMonth := p.Schedule.Frequency.PaychecksPerMonth()
	if perMonth <= 0 || p.MonthlyDisposable <= 0 {
		return decimal.Zero
	}
	pool := decimal.NewFromFloat(p.MonthlyDisposable).Div(decimal.NewFromFloat(perMonth))
	paycheckAmount := decimal.NewFromFloat(p.Schedule.EstimatedAmount)
	if pool.GreaterThan(paycheckAmount) {
		pool = paycheckAmount
	}
	return pool.Round(2)
}

// Schedule expands the next n paycheck dates on or after from into one
// upcoming allocation per target and date, ordered by date then target.
// Targets with a zero share are left out. Ids are derived from the schedule,
// date and target, so repeated calls yield the same allocations.
func Schedule(plan Plan, from time.Time, n int, now time.Time) ([]models.ScheduledAllocation, error) {
	if err := ValidateTargets(plan.Targets); err != nil {
		return nil, err
	}
	if err := plan.Schedule.Validate(); err != nil {
		return nil, err
	}

	amounts := split(plan.PerPaycheck(), plan.Targets)
	dates := paycheck.NextPaycheckDates(plan.Schedule, from, n)

	out := make([]models.ScheduledAllocation, 0, len(dates)*len(plan.Targets))
	for _, d := range dates {
		for i, t := range plan.Targets {
			if amounts[i].IsZero() {
				continue
			}
			out = append(out, models.ScheduledAllocation{
				ID:           AllocationID(plan.Schedule.ID, d, t.Name),
				ScheduleID:   plan.Schedule.ID,
				TargetName:   t.Name,
				PaycheckDate: d,
				Amount:       amounts[i],
				Status:       models.AllocationUpcoming,
				CreatedAt:    now,
			})
		}
	}
	return out, nil
}
