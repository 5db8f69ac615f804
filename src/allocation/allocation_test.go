package allocation_test

import (
	"testing"
	"time"

	"budgee-insights/src/allocation"
	"budgee-insights/src/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func target(name string, percent string) models.AllocationTarget {
	return models.AllocationTarget{Name: name, Percent: decimal.RequireFromString(percent)}
}

func amounts(recs []allocation.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Amount.StringFixed(2)
	}
	return out
}

func TestRecommend(t *testing.T) {
	t.Run("splits disposable income by percent", func(t *testing.T) {
		flow := models.MonthlyFlow{Income: 3600, EssentialExpenses: 1500, DebtMinimums: 175}
		recs, err := allocation.Recommend(flow, []models.AllocationTarget{
			target("Emergency Fund", "50"), target("Investments", "30"), target("Fun", "20"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"962.50", "577.50", "385.00"}, amounts(recs))
		assert.Equal(t, "Emergency Fund", recs[0].Target)
	})

	t.Run("rounding remainder goes to the first target", func(t *testing.T) {
		flow := models.MonthlyFlow{Income: 1000.11}
		recs, err := allocation.Recommend(flow, []models.AllocationTarget{target("A", "50"), target("B", "50")})
		require.NoError(t, err)
		assert.Equal(t, []string{"500.06", "500.05"}, amounts(recs))
	})

	t.Run("partial allocation leaves the rest unassigned", func(t *testing.T) {
		flow := models.MonthlyFlow{Income: 1000}
		recs, err := allocation.Recommend(flow, []models.AllocationTarget{target("A", "50"), target("B", "30")})
		require.NoError(t, err)
		assert.Equal(t, []string{"500.00", "300.00"}, amounts(recs))
	})

	t.Run("negative disposable income recommends nothing", func(t *testing.T) {
		flow := models.MonthlyFlow{Income: 1000, EssentialExpenses: 1200}
		recs, err := allocation.Recommend(flow, []models.AllocationTarget{target("A", "60"), target("B", "40")})
		require.NoError(t, err)
		assert.Equal(t, []string{"0.00", "0.00"}, amounts(recs))
	})

	t.Run("rejects targets over one hundred percent", func(t *testing.T) {
		_, err := allocation.Recommend(models.MonthlyFlow{Income: 1000}, []models.AllocationTarget{target("A", "60"), target("B", "40.01")})
		assert.ErrorIs(t, err, allocation.ErrInvalidTargets)
	})

	t.Run("rejects negative targets", func(t *testing.T) {
		_, err := allocation.Recommend(models.MonthlyFlow{Income: 1000}, []models.AllocationTarget{target("A", "-5")})
		assert.ErrorIs(t, err, allocation.ErrInvalidTargets)
	})

	t.Run("no targets", func(t *testing.T) {
		recs, err := allocation.Recommend(models.MonthlyFlow{Income: 1000}, nil)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}

func monthlySchedule(day int, amount float64) models.PaycheckSchedule {
	return models.PaycheckSchedule{
		ID:              7,
		Frequency:       models.FrequencyMonthly,
		EstimatedAmount: amount,
		Anchors:         []models.Anchor{models.DayAnchor(day)},
		UserConfirmed:   true,
	}
}

func TestPerPaycheck(t *testing.T) {
	tests := []struct {
		name string
		plan allocation.Plan
		want string
	}{
		{"monthly", allocation.Plan{Schedule: monthlySchedule(1, 3000), MonthlyDisposable: 1925}, "1925.00"},
		{"capped at the paycheck", allocation.Plan{Schedule: monthlySchedule(1, 3000), MonthlyDisposable: 10000}, "3000.00"},
		{"semimonthly", allocation.Plan{
			Schedule:          models.PaycheckSchedule{Frequency: models.FrequencySemimonthly, EstimatedAmount: 1800},
			MonthlyDisposable: 1000,
		}, "500.00"},
		{"biweekly", allocation.Plan{
			Schedule:          models.PaycheckSchedule{Frequency: models.FrequencyBiweekly, EstimatedAmount: 1800},
			MonthlyDisposable: 1925,
		}, "888.46"},
		{"nothing disposable", allocation.Plan{Schedule: monthlySchedule(1, 3000), MonthlyDisposable: -50}, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plan.PerPaycheck().StringFixed(2))
		})
	}
}

func TestSchedule(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	plan := allocation.Plan{
		Schedule:          monthlySchedule(15, 3000),
		Targets:           []models.AllocationTarget{target("Emergency Fund", "60"), target("Investments", "40"), target("Paused", "0")},
		MonthlyDisposable: 1000,
	}

	got, err := allocation.Schedule(plan, from, 2, now)
	require.NoError(t, err)
	require.Len(t, got, 4)

	seen := make(map[string]bool)
	for _, a := range got {
		assert.NotEmpty(t, a.ID)
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.Equal(t, models.AllocationUpcoming, a.Status)
		assert.Equal(t, int64(7), a.ScheduleID)
		assert.Equal(t, now, a.CreatedAt)
	}

	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), got[0].PaycheckDate)
	assert.Equal(t, "Emergency Fund", got[0].TargetName)
	assert.Equal(t, "600.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, "Investments", got[1].TargetName)
	assert.Equal(t, "400.00", got[1].Amount.StringFixed(2))
	assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), got[3].PaycheckDate)
}

func TestScheduleIsDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	plan := allocation.Plan{
		Schedule:          monthlySchedule(15, 3000),
		Targets:           []models.AllocationTarget{target("Emergency Fund", "60"), target("Investments", "40")},
		MonthlyDisposable: 1000,
	}

	first, err := allocation.Schedule(plan, from, 3, now)
	require.NoError(t, err)
	second, err := allocation.Schedule(plan, from, 3, now)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	day := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, first[0].ID, allocation.AllocationID(7, day, "Emergency Fund"))
	assert.NotEqual(t, allocation.AllocationID(7, day, "Emergency Fund"), allocation.AllocationID(8, day, "Emergency Fund"))
	assert.NotEqual(t, allocation.AllocationID(7, day, "Emergency Fund"), allocation.AllocationID(7, day.AddDate(0, 1, 0), "Emergency Fund"))
}

func TestScheduleRejectsBadInput(t *testing.T) {
	now := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	_, err := allocation.Schedule(allocation.Plan{
		Schedule: monthlySchedule(1, 3000),
		Targets:  []models.AllocationTarget{target("A", "101")},
	}, now, 2, now)
	assert.ErrorIs(t, err, allocation.ErrInvalidTargets)

	_, err = allocation.Schedule(allocation.Plan{
		Schedule: models.PaycheckSchedule{Frequency: models.FrequencySemimonthly, Anchors: []models.Anchor{models.DayAnchor(1)}},
		Targets:  []models.AllocationTarget{target("A", "100")},
	}, now, 2, now)
	assert.ErrorIs(t, err, models.ErrInvalidAnchors)
}

func TestLifecycle(t *testing.T) {
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	upcoming := models.ScheduledAllocation{ID: "a1", Status: models.AllocationUpcoming}

	t.Run("reminder then complete", func(t *testing.T) {
		reminded, err := allocation.MarkReminderSent(upcoming, now)
		require.NoError(t, err)
		assert.Equal(t, models.AllocationReminderSent, reminded.Status)
		require.NotNil(t, reminded.ReminderSentAt)
		assert.Equal(t, now, *reminded.ReminderSentAt)
		assert.Equal(t, models.AllocationUpcoming, upcoming.Status)

		done, err := allocation.Complete(reminded, "exec-1", now)
		require.NoError(t, err)
		assert.Equal(t, models.AllocationCompleted, done.Status)
		require.NotNil(t, done.ExecutionID)
		assert.Equal(t, "exec-1", *done.ExecutionID)
		assert.Equal(t, now, *done.ResolvedAt)
	})

	t.Run("complete without execution id records a new one", func(t *testing.T) {
		done, err := allocation.Complete(upcoming, "", now)
		require.NoError(t, err)
		require.NotNil(t, done.ExecutionID)
		assert.NotEmpty(t, *done.ExecutionID)
	})

	t.Run("skip from upcoming", func(t *testing.T) {
		skipped, err := allocation.Skip(upcoming, now)
		require.NoError(t, err)
		assert.Equal(t, models.AllocationSkipped, skipped.Status)
		assert.Nil(t, skipped.ExecutionID)
	})

	t.Run("reminder twice is invalid", func(t *testing.T) {
		reminded, err := allocation.MarkReminderSent(upcoming, now)
		require.NoError(t, err)
		_, err = allocation.MarkReminderSent(reminded, now)
		assert.ErrorIs(t, err, allocation.ErrInvalidTransition)
	})

	t.Run("terminal states reject every action", func(t *testing.T) {
		for _, status := range []models.AllocationStatus{models.AllocationCompleted, models.AllocationSkipped} {
			a := models.ScheduledAllocation{ID: "a2", Status: status}
			for _, action := range []allocation.Action{allocation.ActionRemind, allocation.ActionComplete, allocation.ActionSkip} {
				got, err := allocation.Apply(a, action, "", now)
				assert.ErrorIs(t, err, allocation.ErrTerminalState)
				assert.Equal(t, status, got.Status)
			}
		}
	})
}

func TestParseAction(t *testing.T) {
	a, err := allocation.ParseAction("complete")
	require.NoError(t, err)
	assert.Equal(t, allocation.ActionComplete, a)

	_, err = allocation.ParseAction("undo")
	assert.ErrorIs(t, err, allocation.ErrInvalidTransition)
}
