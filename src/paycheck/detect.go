// Package paycheck infers a recurring paycheck schedule from income history
// and projects future paycheck dates from a schedule.
package paycheck

import (
	"fmt"
	"math"
	"sort"
	"time"

	"budgee-insights/src/classifier"
	"budgee-insights/src/models"
)

const (
	DefaultLookbackMonths = 6
	DefaultMinAmount      = 500.0
	DefaultTolerance      = 0.10
	DefaultMinOccurrences = 2
)

type Options struct {
	Now            time.Time
	LookbackMonths int
	// MinAmount is the smallest deposit considered a paycheck.
	MinAmount float64
	// Tolerance is the relative distance from a group's running average
	// amount within which a deposit joins the group.
	Tolerance      float64
	MinOccurrences int
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.LookbackMonths <= 0 {
		o.LookbackMonths = DefaultLookbackMonths
	}
	if o.MinAmount <= 0 {
		o.MinAmount = DefaultMinAmount
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MinOccurrences < 2 {
		o.MinOccurrences = DefaultMinOccurrences
	}
	return o
}

// Candidate is one amount group that repeated often enough to be scored.
type Candidate struct {
	Frequency       models.PayFrequency        `json:"frequency"`
	AverageAmount   float64                    `json:"average_amount"`
	Occurrences     int                        `json:"occurrences"`
	AverageInterval float64                    `json:"average_interval_days"`
	Score           float64                    `json:"score"`
	Confidence      models.DetectionConfidence `json:"confidence"`
	Transactions    []models.Transaction       `json:"-"`
}

// Detection is the detector's proposal. Schedule is nil when no pattern
// was found; Message explains the outcome either way.
type Detection struct {
	Schedule   *models.PaycheckSchedule   `json:"schedule"`
	Confidence models.DetectionConfidence `json:"confidence,omitempty"`
	Message    string                     `json:"message"`
	Candidates []Candidate                `json:"candidates"`
}

func (d Detection) Detected() bool {
	return d.Schedule != nil
}

// Detect looks for a recurring paycheck in the income history. It only ever
// proposes a schedule; confirming it is a separate step.
func Detect(txs []models.Transaction, opts Options) Detection {
	opts = opts.withDefaults()

	deposits := paycheckDeposits(txs, opts)
	groups := groupByAmount(deposits, opts.Tolerance)

	candidates := make([]Candidate, 0, len(groups))
	for _, g := range groups {
		if len(g) < opts.MinOccurrences {
			continue
		}
		candidates = append(candidates, scoreGroup(g))
	}

	if len(candidates) == 0 {
		return Detection{
			Message:    fmt.Sprintf("No recurring paycheck found in the last %d months.", opts.LookbackMonths),
			Candidates: candidates,
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score || (c.Score == best.Score && c.Occurrences > best.Occurrences) {
			best = c
		}
	}

	schedule := &models.PaycheckSchedule{
		Frequency:            best.Frequency,
		EstimatedAmount:      best.AverageAmount,
		Confidence:           best.Confidence,
		Anchors:              anchorsFor(best.Frequency, best.Transactions),
		ReferenceDate:        dateOnly(best.Transactions[len(best.Transactions)-1].Date),
		SourceTransactionIDs: transactionIDs(best.Transactions),
		UpdatedAt:            opts.Now,
	}
	return Detection{
		Schedule:   schedule,
		Confidence: best.Confidence,
		Message:    describe(best),
		Candidates: candidates,
	}
}

// paycheckDeposits filters to settled income deposits of at least MinAmount
// inside the window, oldest first.
func paycheckDeposits(txs []models.Transaction, opts Options) []models.Transaction {
	start := opts.Now.AddDate(0, -opts.LookbackMonths, 0)
	out := make([]models.Transaction, 0)
	for _, tx := range txs {
		if tx.Pending || tx.Date.Before(start) || tx.Date.After(opts.Now) {
			continue
		}
		if !classifier.IsActualIncome(tx) || math.Abs(tx.Amount) < opts.MinAmount {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// groupByAmount greedily assigns each deposit to the first group whose
// running average is within tolerance, or starts a new group.
func groupByAmount(deposits []models.Transaction, tolerance float64) [][]models.Transaction {
	var (
		groups [][]models.Transaction
		totals []float64
	)
	for _, tx := range deposits {
		amount := math.Abs(tx.Amount)
		placed := false
		for i := range groups {
			avg := totals[i] / float64(len(groups[i]))
			if math.Abs(amount-avg) <= tolerance*avg {
				groups[i] = append(groups[i], tx)
				totals[i] += amount
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []models.Transaction{tx})
			totals = append(totals, amount)
		}
	}
	return groups
}

func scoreGroup(g []models.Transaction) Candidate {
	total := 0.0
	for _, tx := range g {
		total += math.Abs(tx.Amount)
	}

	gaps := make([]float64, 0, len(g)-1)
	for i := 1; i < len(g); i++ {
		gaps = append(gaps, float64(daysBetween(g[i-1].Date, g[i].Date)))
	}
	avgGap := mean(gaps)
	freq := frequencyForInterval(avgGap)

	score := (occurrenceScore(len(g)) + consistencyScore(gaps, freq.ExpectedInterval())) / 2
	return Candidate{
		Frequency:       freq,
		AverageAmount:   total / float64(len(g)),
		Occurrences:     len(g),
		AverageInterval: avgGap,
		Score:           score,
		Confidence:      confidenceFor(score),
		Transactions:    g,
	}
}

func frequencyForInterval(days float64) models.PayFrequency {
	switch {
	case days < 10:
		return models.FrequencyWeekly
	case days < 21:
		return models.FrequencyBiweekly
	case days < 28:
		return models.FrequencySemimonthly
	default:
		return models.FrequencyMonthly
	}
}

func occurrenceScore(n int) float64 {
	switch {
	case n >= 6:
		return 1.0
	case n >= 4:
		return 0.7
	default:
		return 0.4
	}
}

// consistencyScore rates how tightly the gaps cluster, as the standard
// deviation of the gaps relative to the expected interval.
func consistencyScore(gaps []float64, expected float64) float64 {
	if len(gaps) == 0 || expected <= 0 {
		return 0.4
	}
	m := mean(gaps)
	variance := 0.0
	for _, g := range gaps {
		variance += (g - m) * (g - m)
	}
	variance /= float64(len(gaps))
	spread := math.Sqrt(variance) / expected
	switch {
	case spread < 0.05:
		return 1.0
	case spread < 0.10:
		return 0.7
	default:
		return 0.4
	}
}

func confidenceFor(score float64) models.DetectionConfidence {
	switch {
	case score >= 0.85:
		return models.DetectionHigh
	case score >= 0.55:
		return models.DetectionMedium
	default:
		return models.DetectionLow
	}
}

func describe(c Candidate) string {
	return fmt.Sprintf("Detected a %s paycheck of about $%.2f from %d deposits (%s confidence).",
		c.Frequency, c.AverageAmount, c.Occurrences, c.Confidence)
}

func transactionIDs(txs []models.Transaction) []string {
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	return ids
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}
