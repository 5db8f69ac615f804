package analysis_test

import (
	"encoding/json"
	"testing"
	"time"

	"budgee-insights/src/analysis"
	"budgee-insights/src/classifier"
	"budgee-insights/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func householdFixture() ([]models.Transaction, []models.Account) {
	var txs []models.Transaction
	for m := time.January; m <= time.June; m++ {
		txs = append(txs, models.Transaction{
			ID: "pay-" + m.String(), AccountID: "checking", Amount: -3000,
			Date: date(2025, m, 15), Name: "ACME Payroll", Categories: []string{"Payroll"},
		})
	}
	for m := time.February; m <= time.June; m++ {
		txs = append(txs, models.Transaction{
			ID: "rent-" + m.String(), AccountID: "checking", Amount: 1500,
			Date: date(2025, m, 1), Name: "Landlord LLC",
			Structured: pfc("RENT_AND_UTILITIES", "RENT_AND_UTILITIES_RENT", models.ConfidenceVeryHigh),
		})
	}
	txs = append(txs,
		models.Transaction{ID: "ira", Amount: 500, Date: date(2025, 3, 20), Name: "Vanguard contribution"},
		models.Transaction{ID: "pending", Amount: 80, Date: date(2025, 6, 20), Name: "Kroger", Pending: true},
		models.Transaction{ID: "old", Amount: 80, Date: date(2024, 11, 20), Name: "Kroger"},
		models.Transaction{ID: "future", Amount: 80, Date: date(2025, 7, 2), Name: "Kroger"},
	)

	accounts := []models.Account{
		{ID: "checking", ItemID: "item-1", Type: models.AccountTypeDepository, Subtype: "checking", CurrentBalance: f(2500), AvailableBalance: f(2000)},
		{ID: "savings", ItemID: "item-1", Type: models.AccountTypeDepository, Subtype: "savings", CurrentBalance: f(5000), Tags: []string{models.TagEmergencyFund}},
		{ID: "cd", ItemID: "item-1", Type: models.AccountTypeDepository, Subtype: "cd", CurrentBalance: f(10000)},
		{ID: "card", ItemID: "item-2", Name: "Visa", Type: models.AccountTypeCredit, Subtype: "credit card", CurrentBalance: f(1000)},
		{ID: "student", ItemID: "item-2", Name: "Navient", Type: models.AccountTypeLoan, Subtype: "student", CurrentBalance: f(12000), MinimumPayment: f(150), APR: f(4.2)},
		{ID: "brokerage", ItemID: "item-2", Type: models.AccountTypeInvestment, Subtype: "brokerage", CurrentBalance: f(20000)},
	}
	return txs, accounts
}

func TestAnalyze(t *testing.T) {
	txs, accounts := householdFixture()
	a := analysis.Analyze(txs, accounts, analysis.Options{Now: date(2025, 7, 1), LookbackMonths: 6})

	assert.Equal(t, 5, a.Metadata.MonthsAnalyzed)
	assert.Equal(t, date(2025, 1, 15), a.Metadata.Start)
	assert.Equal(t, date(2025, 6, 15), a.Metadata.End)
	assert.Equal(t, 12, a.Metadata.TransactionsAnalyzed)
	assert.Equal(t, 7, a.Metadata.NeedsValidation)
	assert.Equal(t, 2, a.Metadata.ItemCount)
	assert.InDelta(t, (1.0+5.0/12.0)/2, a.Metadata.OverallConfidence, 1e-9)

	assert.InDelta(t, 3600, a.Flow.Income, 1e-9)
	assert.InDelta(t, 1500, a.Flow.EssentialExpenses, 1e-9)
	assert.InDelta(t, 175, a.Flow.DebtMinimums, 1e-9)
	assert.InDelta(t, 1925, a.Flow.DiscretionaryIncome(), 1e-9)

	assert.InDelta(t, 7000, a.Position.Cash, 1e-9)
	assert.InDelta(t, 5000, a.Position.EmergencyFund, 1e-9)
	assert.InDelta(t, 20000, a.Position.Investments, 1e-9)
	assert.InDelta(t, 100, a.Position.MonthlyInvestmentRate, 1e-9)
	assert.InDelta(t, 13000, a.Position.TotalDebt(), 1e-9)
	assert.InDelta(t, 14000, a.Position.NetWorth(), 1e-9)

	require.Len(t, a.Position.Debts, 2)
	card := a.Position.Debts[0]
	assert.Equal(t, "card", card.AccountID)
	assert.InDelta(t, 25, card.MinimumPayment, 1e-9)
	assert.Equal(t, 22.99, card.APR)
	assert.True(t, card.Estimated)
	loan := a.Position.Debts[1]
	assert.Equal(t, 150.0, loan.MinimumPayment)
	assert.Equal(t, 4.2, loan.APR)
	assert.False(t, loan.Estimated)
}

func TestAnalyzeBucketTotalsAndUserRules(t *testing.T) {
	txs, accounts := householdFixture()
	now := date(2025, 7, 1)

	a := analysis.Analyze(txs, accounts, analysis.Options{Now: now})
	assert.InDelta(t, 18000, a.Buckets[models.BucketIncome], 1e-9)
	assert.InDelta(t, 7500, a.Buckets[models.BucketExpenses], 1e-9)
	assert.InDelta(t, 500, a.Buckets[models.BucketInvested], 1e-9)

	rules := classifier.CompileBucketRules([]models.BucketRule{{
		Name:       "payroll",
		Conditions: json.RawMessage(`{"field":"name","op":"contains","value":"payroll"}`),
		Bucket:     models.BucketIncome,
	}})
	withRules := analysis.Analyze(txs, accounts, analysis.Options{Now: now, UserRules: rules})
	assert.Equal(t, 1, withRules.Metadata.NeedsValidation)
	assert.InDelta(t, 18000, withRules.Buckets[models.BucketIncome], 1e-9)
	assert.Equal(t, a.Flow, withRules.Flow)
}

func TestAnalyzeHonorsUserDecisions(t *testing.T) {
	now := date(2025, 7, 1)
	excluded := models.BucketExcluded
	expenses := models.BucketExpenses
	txs := []models.Transaction{
		{ID: "pay-1", Amount: -3000, Date: date(2025, 6, 2), Name: "ACME Payroll", Categories: []string{"Payroll"}},
		{ID: "pay-2", Amount: -3000, Date: date(2025, 6, 16), Name: "ACME Payroll", Categories: []string{"Payroll"},
			OverrideBucket: &excluded, UserValidated: true},
		{ID: "rent", Amount: 1200, Date: date(2025, 6, 1), Name: "Landlord LLC",
			Structured:     pfc("RENT_AND_UTILITIES", "RENT_AND_UTILITIES_RENT", models.ConfidenceVeryHigh),
			OverrideBucket: &excluded, UserValidated: true},
		{ID: "venmo", Amount: 300, Date: date(2025, 6, 5), Name: "Venmo Daycare",
			OverrideBucket: &expenses, UserValidated: true},
	}

	a := analysis.Analyze(txs, nil, analysis.Options{Now: now})
	assert.InDelta(t, 3000, a.Flow.Income, 1e-9)
	assert.InDelta(t, 3000, a.Buckets[models.BucketIncome], 1e-9)
	assert.InDelta(t, 4200, a.Buckets[models.BucketExcluded], 1e-9)
	assert.InDelta(t, 300, a.Flow.EssentialExpenses, 1e-9)
}

func TestAnalyzeIgnoresBrokerageWithdrawals(t *testing.T) {
	now := date(2025, 7, 1)
	txs := []models.Transaction{
		{ID: "withdrawal", Amount: -1000, Date: date(2025, 6, 3), Name: "Vanguard transfer"},
		{ID: "deposit", Amount: 250, Date: date(2025, 6, 10), Name: "Vanguard transfer"},
	}

	a := analysis.Analyze(txs, nil, analysis.Options{Now: now})
	assert.InDelta(t, 250, a.Position.MonthlyInvestmentRate, 1e-9)
	assert.Equal(t, 0.0, a.Flow.Income)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	txs, accounts := householdFixture()
	opts := analysis.Options{Now: date(2025, 7, 1)}
	first := analysis.Analyze(txs, accounts, opts)
	second := analysis.Analyze(txs, accounts, opts)
	assert.Equal(t, first, second)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	txs, accounts := householdFixture()
	before := make([]models.Transaction, len(txs))
	copy(before, txs)
	analysis.Analyze(txs, accounts, analysis.Options{Now: date(2025, 7, 1)})
	assert.Equal(t, before, txs)
}

func TestAnalyzeEmpty(t *testing.T) {
	a := analysis.Analyze(nil, nil, analysis.Options{Now: date(2025, 7, 1)})
	assert.Equal(t, 1, a.Metadata.MonthsAnalyzed)
	assert.Equal(t, 0, a.Metadata.ItemCount)
	assert.Equal(t, 0.0, a.Flow.Income)
	assert.Equal(t, 0.0, a.Flow.DiscretionaryIncome())
	assert.Equal(t, 0.5, a.Breakdown.Confidence)
	assert.Equal(t, 0.5, a.Metadata.OverallConfidence)
	assert.NotNil(t, a.Position.Debts)
	assert.Empty(t, a.Position.Debts)
}

func TestMonthsAnalyzedFloor(t *testing.T) {
	now := date(2025, 7, 1)
	single := []models.Transaction{{Amount: -100, Date: date(2025, 6, 3), Name: "Interest"}}
	assert.Equal(t, 1, analysis.Analyze(single, nil, analysis.Options{Now: now}).Metadata.MonthsAnalyzed)

	sameDay := []models.Transaction{
		{Amount: 10, Date: date(2025, 6, 3), Name: "a"},
		{Amount: 20, Date: date(2025, 6, 3), Name: "b"},
	}
	assert.Equal(t, 1, analysis.Analyze(sameDay, nil, analysis.Options{Now: now}).Metadata.MonthsAnalyzed)
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 5, analysis.MonthsBetween(date(2025, 1, 15), date(2025, 6, 15)))
	assert.Equal(t, 4, analysis.MonthsBetween(date(2025, 1, 15), date(2025, 6, 14)))
	assert.Equal(t, 12, analysis.MonthsBetween(date(2025, 6, 1), date(2024, 6, 1)))
	assert.Equal(t, 0, analysis.MonthsBetween(time.Time{}, time.Time{}))
}

func TestDiscretionaryIncomeMayBeNegative(t *testing.T) {
	flow := models.MonthlyFlow{Income: 1000, EssentialExpenses: 900, DebtMinimums: 300}
	assert.Equal(t, -200.0, flow.DiscretionaryIncome())
	assert.Equal(t, flow.Income-flow.EssentialExpenses-flow.DebtMinimums, flow.DiscretionaryIncome())
}
