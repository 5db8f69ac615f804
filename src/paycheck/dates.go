package paycheck

import (
	"fmt"
	"sort"
	"time"

	"budgee-insights/src/models"
)

// NextPaycheckDates returns the next n paycheck dates on or after from.
// Day-of-month anchors past the end of a short month land on its last day.
// It panics on a schedule whose anchors do not fit its frequency, which is
// a programming error rather than a data problem.
func NextPaycheckDates(s models.PaycheckSchedule, from time.Time, n int) []time.Time {
	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("paycheck: %v", err))
	}
	if n <= 0 {
		return nil
	}
	from = dateIn(from, from.Location())

	switch s.Frequency {
	case models.FrequencyWeekly:
		return stepDates(nextWeekday(from, *s.Anchors[0].Weekday), 7, n)
	case models.FrequencyBiweekly:
		return stepDates(biweeklyStart(s, from), 14, n)
	default:
		return monthlyDates(s.Anchors, from, n)
	}
}

func stepDates(first time.Time, days, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = first.AddDate(0, 0, i*days)
	}
	return out
}

// biweeklyStart finds the first date on or after from that is on the
// reference date's fortnightly cycle.
func biweeklyStart(s models.PaycheckSchedule, from time.Time) time.Time {
	wd := *s.Anchors[0].Weekday
	if s.ReferenceDate.IsZero() {
		return nextWeekday(from, wd)
	}
	ref := nextWeekday(dateIn(s.ReferenceDate, from.Location()), wd)
	diff := daysBetween(ref, from)
	if diff <= 0 {
		// Walk back whole fortnights while staying on or after from.
		return ref.AddDate(0, 0, (diff/14)*14)
	}
	periods := (diff + 13) / 14
	return ref.AddDate(0, 0, periods*14)
}

func monthlyDates(anchors []models.Anchor, from time.Time, n int) []time.Time {
	days := make([]int, len(anchors))
	for i, a := range anchors {
		days[i] = a.DayOfMonth
	}
	sort.Ints(days)

	out := make([]time.Time, 0, n)
	year, month := from.Year(), from.Month()
	for len(out) < n {
		for _, day := range days {
			d := clampedDate(year, month, day, from.Location())
			if d.Before(from) {
				continue
			}
			if len(out) > 0 && !d.After(out[len(out)-1]) {
				continue
			}
			out = append(out, d)
			if len(out) == n {
				break
			}
		}
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return out
}

func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func nextWeekday(from time.Time, wd time.Weekday) time.Time {
	offset := (int(wd) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset)
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
