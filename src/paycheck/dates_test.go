package paycheck_test

import (
	"testing"
	"time"

	"budgee-insights/src/models"
	"budgee-insights/src/paycheck"

	"github.com/stretchr/testify/assert"
)

func TestNextPaycheckDates(t *testing.T) {
	tests := []struct {
		name     string
		schedule models.PaycheckSchedule
		from     time.Time
		n        int
		want     []time.Time
	}{
		{
			name:     "monthly anchor past short month end",
			schedule: models.PaycheckSchedule{Frequency: models.FrequencyMonthly, Anchors: []models.Anchor{models.DayAnchor(31)}},
			from:     date(2025, 1, 20),
			n:        3,
			want:     []time.Time{date(2025, 1, 31), date(2025, 2, 28), date(2025, 3, 31)},
		},
		{
			name:     "monthly includes from day",
			schedule: models.PaycheckSchedule{Frequency: models.FrequencyMonthly, Anchors: []models.Anchor{models.DayAnchor(15)}},
			from:     date(2025, 11, 15),
			n:        3,
			want:     []time.Time{date(2025, 11, 15), date(2025, 12, 15), date(2026, 1, 15)},
		},
		{
			name:     "semimonthly in order within month",
			schedule: models.PaycheckSchedule{Frequency: models.FrequencySemimonthly, Anchors: []models.Anchor{models.DayAnchor(15), models.DayAnchor(1)}},
			from:     date(2025, 1, 10),
			n:        4,
			want:     []time.Time{date(2025, 1, 15), date(2025, 2, 1), date(2025, 2, 15), date(2025, 3, 1)},
		},
		{
			name:     "semimonthly anchors collapsing in february",
			schedule: models.PaycheckSchedule{Frequency: models.FrequencySemimonthly, Anchors: []models.Anchor{models.DayAnchor(29), models.DayAnchor(31)}},
			from:     date(2025, 2, 1),
			n:        3,
			want:     []time.Time{date(2025, 2, 28), date(2025, 3, 29), date(2025, 3, 31)},
		},
		{
			name:     "weekly",
			schedule: models.PaycheckSchedule{Frequency: models.FrequencyWeekly, Anchors: []models.Anchor{models.WeekdayAnchor(time.Friday)}},
			from:     date(2025, 1, 1),
			n:        3,
			want:     []time.Time{date(2025, 1, 3), date(2025, 1, 10), date(2025, 1, 17)},
		},
		{
			name: "biweekly follows reference phase",
			schedule: models.PaycheckSchedule{
				Frequency: models.FrequencyBiweekly, Anchors: []models.Anchor{models.WeekdayAnchor(time.Friday)},
				ReferenceDate: date(2024, 12, 20),
			},
			from: date(2025, 1, 1),
			n:    2,
			want: []time.Time{date(2025, 1, 3), date(2025, 1, 17)},
		},
		{
			name: "biweekly with reference after from",
			schedule: models.PaycheckSchedule{
				Frequency: models.FrequencyBiweekly, Anchors: []models.Anchor{models.WeekdayAnchor(time.Friday)},
				ReferenceDate: date(2025, 1, 31),
			},
			from: date(2025, 1, 1),
			n:    2,
			want: []time.Time{date(2025, 1, 3), date(2025, 1, 17)},
		},
		{
			name:     "zero count",
			schedule: models.PaycheckSchedule{Frequency: models.FrequencyMonthly, Anchors: []models.Anchor{models.DayAnchor(1)}},
			from:     date(2025, 1, 1),
			n:        0,
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paycheck.NextPaycheckDates(tt.schedule, tt.from, tt.n))
		})
	}
}

func TestNextPaycheckDatesPanicsOnMalformedSchedule(t *testing.T) {
	assert.Panics(t, func() {
		paycheck.NextPaycheckDates(models.PaycheckSchedule{Frequency: models.FrequencySemimonthly, Anchors: []models.Anchor{models.DayAnchor(1)}}, date(2025, 1, 1), 2)
	})
	assert.Panics(t, func() {
		paycheck.NextPaycheckDates(models.PaycheckSchedule{Frequency: models.FrequencyWeekly}, date(2025, 1, 1), 2)
	})
}
