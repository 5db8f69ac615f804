package analysis

import (
	"math"
	"strings"
	"time"

	"budgee-insights/src/classifier"
	"budgee-insights/src/models"
)

// DefaultLookbackMonths is the analysis window used when none is configured.
const DefaultLookbackMonths = 6

type Options struct {
	// Now anchors the lookback window. Required for reproducible output.
	Now            time.Time
	LookbackMonths int
	// UserRules are the user's own bucket rules, applied when classifying.
	UserRules []classifier.UserRule
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.LookbackMonths <= 0 {
		o.LookbackMonths = DefaultLookbackMonths
	}
	return o
}

// Window returns the non-pending transactions dated inside the lookback
// window ending at opts.Now, in input order.
func Window(txs []models.Transaction, opts Options) []models.Transaction {
	opts = opts.withDefaults()
	start := opts.Now.AddDate(0, -opts.LookbackMonths, 0)
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Pending || tx.Date.Before(start) || tx.Date.After(opts.Now) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// MonthsBetween counts whole calendar months elapsed from start to end.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		start, end = end, start
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}

// Analyze derives the monthly flow, position, expense breakdown and metadata
// from raw transactions and accounts. It never mutates its inputs and returns
// a fresh snapshot on every call.
func Analyze(txs []models.Transaction, accounts []models.Account, opts Options) models.Analysis {
	window := Window(txs, opts)

	var start, end time.Time
	for i, tx := range window {
		if i == 0 || tx.Date.Before(start) {
			start = tx.Date
		}
		if i == 0 || tx.Date.After(end) {
			end = tx.Date
		}
	}
	months := max(MonthsBetween(start, end), 1)
	m := float64(months)

	var (
		income        float64
		contributions float64
		expenses      = make([]models.Transaction, 0, len(window))
		needsReview   int
	)
	classified := classifier.ClassifyAll(window, opts.UserRules...)
	for i, tx := range window {
		c := classified[i]
		if c.NeedsValidation {
			needsReview++
		}

		// A user override or rule decides membership outright.
		if c.Rule == classifier.RuleUserOverride || c.Rule == classifier.RuleUserRule {
			switch c.Bucket {
			case models.BucketIncome:
				income += math.Abs(tx.Amount)
			case models.BucketInvested:
				if tx.Amount > 0 {
					contributions += tx.Amount
				}
			case models.BucketExpenses:
				expenses = append(expenses, tx)
			}
			continue
		}

		if classifier.IsInvestmentContribution(tx) {
			// Withdrawals from a brokerage are not contributions.
			if tx.Amount > 0 {
				contributions += tx.Amount
			}
		} else if classifier.IsActualIncome(tx) {
			income += -tx.Amount
		}
		if classifier.IsEssentialExpense(tx) {
			expenses = append(expenses, tx)
		}
	}

	breakdown := CategorizeEssentialExpenses(expenses, months)
	position, debtMinimums := Position(accounts)
	position.MonthlyInvestmentRate = contributions / m

	return models.Analysis{
		Flow: models.MonthlyFlow{
			Income:            income / m,
			EssentialExpenses: breakdown.Total(),
			DebtMinimums:      debtMinimums,
		},
		Position:  position,
		Breakdown: breakdown,
		Buckets:   classifier.BucketTotals(classified, window),
		Metadata: models.AnalysisMetadata{
			ItemCount:            countItems(accounts),
			TransactionsAnalyzed: len(window),
			NeedsValidation:      needsReview,
			MonthsAnalyzed:       months,
			Start:                start,
			End:                  end,
			OverallConfidence:    overallConfidence(breakdown.Confidence, needsReview, len(window)),
		},
	}
}

// Position computes the point-in-time balances and the sum of monthly debt
// minimums across credit and loan accounts.
func Position(accounts []models.Account) (models.FinancialPosition, float64) {
	p := models.FinancialPosition{Debts: []models.DebtRecord{}}
	var minimums float64
	for _, a := range accounts {
		switch {
		case a.Type == models.AccountTypeDepository:
			if strings.EqualFold(a.Subtype, "cd") {
				continue
			}
			p.Cash += a.Spendable()
			if a.HasTag(models.TagEmergencyFund) {
				p.EmergencyFund += a.Spendable()
			}
		case a.IsDebt():
			rec := debtRecord(a)
			p.Debts = append(p.Debts, rec)
			minimums += rec.MinimumPayment
		case a.Type == models.AccountTypeInvestment:
			p.Investments += a.Current()
		}
	}
	return p, minimums
}

func countItems(accounts []models.Account) int {
	seen := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		seen[a.ItemID] = struct{}{}
	}
	return len(seen)
}

// overallConfidence averages the expense confidence with the share of
// transactions that need no review.
func overallConfidence(expenseConfidence float64, needsReview, total int) float64 {
	settled := unknownConfidence
	if total > 0 {
		settled = 1 - float64(needsReview)/float64(total)
	}
	return (expenseConfidence + settled) / 2
}
