// Package allocation splits disposable income across a user's allocation
// targets and turns a paycheck schedule into dated allocation events.
package allocation

import (
	"errors"
	"fmt"

	"budgee-insights/src/models"

	"github.com/shopspring/decimal"
)

var ErrInvalidTargets = errors.New("invalid allocation targets")

var hundred = decimal.NewFromInt(100)

// Recommendation is the share of disposable income assigned to one target.
type Recommendation struct {
	Target  string          `json:"target"`
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// ValidateTargets rejects negative percentages and totals above 100.
func ValidateTargets(targets []models.AllocationTarget) error {
	total := decimal.Zero
	for _, t := range targets {
		if t.Percent.IsNegative() {
			return fmt.Errorf("%w: %s has a negative percent", ErrInvalidTargets, t.Name)
		}
		total = total.Add(t.Percent)
	}
	if total.GreaterThan(hundred) {
		return fmt.Errorf("%w: percentages add up to %s", ErrInvalidTargets, total.String())
	}
	return nil
}

// Recommend splits the monthly disposable income across targets. A negative
// disposable income recommends nothing for every target.
func Recommend(flow models.MonthlyFlow, targets []models.AllocationTarget) ([]Recommendation, error) {
	if err := ValidateTargets(targets); err != nil {
		return nil, err
	}
	amounts := split(decimal.NewFromFloat(flow.DiscretionaryIncome()), targets)

	out := make([]Recommendation, len(targets))
	for i, t := range targets {
		out[i] = Recommendation{Target: t.Name, Percent: t.Percent, Amount: amounts[i]}
	}
	return out, nil
}

// split divides pool by percent, in cents. Each share is rounded down and
// the rounding remainder goes to the first target so the shares add up to
// exactly pool * sum(percent) / 100.
func split(pool decimal.Decimal, targets []models.AllocationTarget) []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(targets))
	for i := range amounts {
		amounts[i] = decimal.Zero
	}
	pool = pool.Round(2)
	if len(targets) == 0 || !pool.IsPositive() {
		return amounts
	}

	totalPercent := decimal.Zero
	allocated := decimal.Zero
	for i, t := range targets {
		totalPercent = totalPercent.Add(t.Percent)
		amounts[i] = pool.Mul(t.Percent).Div(hundred).RoundFloor(2)
		allocated = allocated.Add(amounts[i])
	}
	want := pool.Mul(totalPercent).Div(hundred).RoundFloor(2)
	amounts[0] = amounts[0].Add(want.Sub(allocated))
	return amounts
}
