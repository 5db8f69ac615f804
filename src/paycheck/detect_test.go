package paycheck_test

import (
	"fmt"
	"testing"
	"time"

	"budgee-insights/src/models"
	"budgee-insights/src/paycheck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func deposit(id string, amount float64, on time.Time) models.Transaction {
	return models.Transaction{
		ID: id, Amount: -amount, Date: on, Name: "ACME Payroll", Categories: []string{"Payroll"},
	}
}

func TestDetectMonthlyHighConfidence(t *testing.T) {
	gaps := []int{30, 31, 29, 30, 31}
	amounts := []float64{3000, 2990, 3010, 3005, 2995, 3000}
	day := date(2025, 1, 2)
	txs := []models.Transaction{deposit("p0", amounts[0], day)}
	for i, g := range gaps {
		day = day.AddDate(0, 0, g)
		txs = append(txs, deposit(fmt.Sprintf("p%d", i+1), amounts[i+1], day))
	}

	d := paycheck.Detect(txs, paycheck.Options{Now: date(2025, 6, 10)})
	require.True(t, d.Detected())
	assert.Equal(t, models.FrequencyMonthly, d.Schedule.Frequency)
	assert.Equal(t, models.DetectionHigh, d.Confidence)
	assert.Equal(t, models.DetectionHigh, d.Schedule.Confidence)
	assert.InDelta(t, 3000, d.Schedule.EstimatedAmount, 1e-9)
	assert.Equal(t, []models.Anchor{models.DayAnchor(2)}, d.Schedule.Anchors)
	assert.Equal(t, []string{"p0", "p1", "p2", "p3", "p4", "p5"}, d.Schedule.SourceTransactionIDs)
	assert.Equal(t, date(2025, 6, 2), d.Schedule.ReferenceDate)
	assert.False(t, d.Schedule.UserConfirmed)
	assert.NoError(t, d.Schedule.Validate())
	assert.Contains(t, d.Message, "monthly")
	assert.Contains(t, d.Message, "about $3000.00 from 6 deposits")
}

func TestDetectBiweeklyAtMinimumOccurrences(t *testing.T) {
	txs := []models.Transaction{
		deposit("a", 2000, date(2025, 5, 2)),
		deposit("b", 2000, date(2025, 5, 16)),
	}
	d := paycheck.Detect(txs, paycheck.Options{Now: date(2025, 6, 1)})
	require.True(t, d.Detected())
	assert.Equal(t, models.FrequencyBiweekly, d.Schedule.Frequency)
	assert.Contains(t, []models.DetectionConfidence{models.DetectionLow, models.DetectionMedium}, d.Confidence)
	assert.Equal(t, models.DetectionMedium, d.Confidence)
	require.Len(t, d.Schedule.Anchors, 1)
	assert.Equal(t, time.Friday, *d.Schedule.Anchors[0].Weekday)
}

func TestDetectWeekly(t *testing.T) {
	var txs []models.Transaction
	start := date(2025, 4, 4)
	for i := 0; i < 8; i++ {
		txs = append(txs, deposit(fmt.Sprintf("w%d", i), 800, start.AddDate(0, 0, 7*i)))
	}
	d := paycheck.Detect(txs, paycheck.Options{Now: date(2025, 6, 1)})
	require.True(t, d.Detected())
	assert.Equal(t, models.FrequencyWeekly, d.Schedule.Frequency)
	assert.Equal(t, models.DetectionHigh, d.Confidence)
}

func TestDetectSemimonthlyAnchors(t *testing.T) {
	txs := []models.Transaction{
		deposit("s1", 1800, date(2025, 1, 1)),
		deposit("s2", 1800, date(2025, 1, 25)),
		deposit("s3", 1800, date(2025, 2, 18)),
		deposit("s4", 1800, date(2025, 3, 14)),
		deposit("s5", 1800, date(2025, 4, 7)),
	}
	d := paycheck.Detect(txs, paycheck.Options{Now: date(2025, 5, 1)})
	require.True(t, d.Detected())
	assert.Equal(t, models.FrequencySemimonthly, d.Schedule.Frequency)
	assert.Equal(t, []models.Anchor{models.DayAnchor(1), models.DayAnchor(7)}, d.Schedule.Anchors)
	assert.NoError(t, d.Schedule.Validate())
}

func TestDetectGroupsByAmount(t *testing.T) {
	var txs []models.Transaction
	for i := 0; i < 6; i++ {
		txs = append(txs, deposit(fmt.Sprintf("main%d", i), 2500, date(2025, 1, 3).AddDate(0, 0, 14*i)))
	}
	// A side income deposit that repeats only twice, and small transfers that never qualify.
	txs = append(txs,
		deposit("gig1", 700, date(2025, 1, 20)),
		deposit("gig2", 700, date(2025, 3, 20)),
		deposit("tiny1", 100, date(2025, 1, 5)),
		deposit("tiny2", 100, date(2025, 1, 12)),
	)

	d := paycheck.Detect(txs, paycheck.Options{Now: date(2025, 4, 1)})
	require.True(t, d.Detected())
	assert.Len(t, d.Candidates, 2)
	assert.Equal(t, models.FrequencyBiweekly, d.Schedule.Frequency)
	assert.InDelta(t, 2500, d.Schedule.EstimatedAmount, 1e-9)
	assert.Len(t, d.Schedule.SourceTransactionIDs, 6)
}

func TestDetectIgnoresNonIncomePendingAndOld(t *testing.T) {
	txs := []models.Transaction{
		{ID: "spend1", Amount: 2000, Date: date(2025, 5, 1), Name: "Rent"},
		{ID: "spend2", Amount: 2000, Date: date(2025, 5, 15), Name: "Rent"},
		{ID: "pending1", Amount: -2000, Date: date(2025, 5, 1), Name: "ACME Payroll", Categories: []string{"Payroll"}, Pending: true},
		{ID: "pending2", Amount: -2000, Date: date(2025, 5, 15), Name: "ACME Payroll", Categories: []string{"Payroll"}, Pending: true},
		deposit("old1", 2000, date(2024, 1, 1)),
		deposit("old2", 2000, date(2024, 1, 15)),
	}
	d := paycheck.Detect(txs, paycheck.Options{Now: date(2025, 6, 1)})
	assert.False(t, d.Detected())
	assert.Nil(t, d.Schedule)
	assert.Equal(t, "No recurring paycheck found in the last 6 months.", d.Message)
}

func TestDetectEmpty(t *testing.T) {
	d := paycheck.Detect(nil, paycheck.Options{Now: date(2025, 6, 1)})
	assert.False(t, d.Detected())
	assert.Empty(t, d.Candidates)
}

func TestDetectIsIdempotent(t *testing.T) {
	txs := []models.Transaction{
		deposit("a", 2000, date(2025, 5, 2)),
		deposit("b", 2000, date(2025, 5, 16)),
		deposit("c", 2000, date(2025, 5, 30)),
	}
	opts := paycheck.Options{Now: date(2025, 6, 1)}
	assert.Equal(t, paycheck.Detect(txs, opts), paycheck.Detect(txs, opts))
}

func TestConfirmAndEdit(t *testing.T) {
	now := date(2025, 6, 1)
	proposal := models.PaycheckSchedule{
		Frequency:       models.FrequencyMonthly,
		EstimatedAmount: 3000,
		Confidence:      models.DetectionMedium,
		Anchors:         []models.Anchor{models.DayAnchor(1)},
	}

	confirmed := paycheck.Confirm(proposal, now)
	assert.True(t, confirmed.UserConfirmed)
	assert.Equal(t, models.DetectionMedium, confirmed.Confidence)
	assert.False(t, proposal.UserConfirmed)

	amount := 1500.0
	edited, err := paycheck.ApplyEdit(confirmed, paycheck.Edit{
		Frequency:       models.FrequencySemimonthly,
		Anchors:         []models.Anchor{models.DayAnchor(1), models.DayAnchor(15)},
		EstimatedAmount: &amount,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, models.DetectionManual, edited.Confidence)
	assert.True(t, edited.UserConfirmed)
	assert.Equal(t, 1500.0, edited.EstimatedAmount)

	_, err = paycheck.ApplyEdit(confirmed, paycheck.Edit{
		Frequency: models.FrequencySemimonthly,
		Anchors:   []models.Anchor{models.DayAnchor(1)},
	}, now)
	assert.ErrorIs(t, err, models.ErrInvalidAnchors)
}
