package models

import (
	"errors"
	"fmt"
	"time"
)

type PayFrequency string

const (
	FrequencyWeekly      PayFrequency = "weekly"
	FrequencyBiweekly    PayFrequency = "biweekly"
	FrequencySemimonthly PayFrequency = "semimonthly"
	FrequencyMonthly     PayFrequency = "monthly"
)

// PaychecksPerMonth is the average number of paychecks in a month.
func (f PayFrequency) PaychecksPerMonth() float64 {
	switch f {
	case FrequencyWeekly:
		return 52.0 / 12.0
	case FrequencyBiweekly:
		return 26.0 / 12.0
	case FrequencySemimonthly:
		return 2
	case FrequencyMonthly:
		return 1
	default:
		return 0
	}
}

// ExpectedInterval is the nominal number of days between paychecks.
func (f PayFrequency) ExpectedInterval() float64 {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencySemimonthly:
		return 365.25 / 24
	case FrequencyMonthly:
		return 365.25 / 12
	default:
		return 0
	}
}

func (f PayFrequency) anchorCount() int {
	switch f {
	case FrequencySemimonthly:
		return 2
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return 1
	default:
		return 0
	}
}

type DetectionConfidence string

const (
	DetectionHigh   DetectionConfidence = "high"
	DetectionMedium DetectionConfidence = "medium"
	DetectionLow    DetectionConfidence = "low"
	DetectionManual DetectionConfidence = "manual"
)

// Anchor pins a paycheck to either a day of the month or a weekday.
type Anchor struct {
	DayOfMonth int           `json:"day_of_month,omitempty"`
	Weekday    *time.Weekday `json:"weekday,omitempty"`
}

func DayAnchor(day int) Anchor {
	return Anchor{DayOfMonth: day}
}

func WeekdayAnchor(d time.Weekday) Anchor {
	return Anchor{Weekday: &d}
}

var ErrInvalidAnchors = errors.New("invalid paycheck anchors")

type PaycheckSchedule struct {
	ID              int64               `json:"id,omitempty"`
	Frequency       PayFrequency        `json:"frequency"`
	EstimatedAmount float64             `json:"estimated_amount"`
	Confidence      DetectionConfidence `json:"confidence"`
	UserConfirmed   bool                `json:"user_confirmed"`
	Anchors         []Anchor            `json:"anchors"`
	// ReferenceDate is the most recent observed paycheck; it fixes the phase
	// of biweekly schedules.
	ReferenceDate        time.Time `json:"reference_date"`
	SourceTransactionIDs []string  `json:"source_transaction_ids"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Validate checks the anchor shape required by the frequency: semimonthly
// needs two day-of-month anchors, monthly one, weekly and biweekly one weekday.
func (s PaycheckSchedule) Validate() error {
	want := s.Frequency.anchorCount()
	if want == 0 {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidAnchors, s.Frequency)
	}
	if len(s.Anchors) != want {
		return fmt.Errorf("%w: %s requires %d anchor(s), got %d", ErrInvalidAnchors, s.Frequency, want, len(s.Anchors))
	}
	for _, a := range s.Anchors {
		switch s.Frequency {
		case FrequencyWeekly, FrequencyBiweekly:
			if a.Weekday == nil {
				return fmt.Errorf("%w: %s requires a weekday anchor", ErrInvalidAnchors, s.Frequency)
			}
		default:
			if a.DayOfMonth < 1 || a.DayOfMonth > 31 {
				return fmt.Errorf("%w: day of month %d out of range", ErrInvalidAnchors, a.DayOfMonth)
			}
		}
	}
	return nil
}
