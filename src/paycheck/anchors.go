package paycheck

import (
	"sort"
	"time"

	"budgee-insights/src/models"
)

// anchorsFor derives the anchor descriptors for a detected frequency: the
// most frequent weekday for weekly and biweekly pay, the most common day of
// month for monthly pay, and the two most common days for semimonthly pay.
func anchorsFor(freq models.PayFrequency, txs []models.Transaction) []models.Anchor {
	switch freq {
	case models.FrequencyWeekly, models.FrequencyBiweekly:
		return []models.Anchor{models.WeekdayAnchor(mostCommonWeekday(txs))}
	case models.FrequencySemimonthly:
		first, second := twoMostCommonDays(txs)
		return []models.Anchor{models.DayAnchor(first), models.DayAnchor(second)}
	default:
		days := rankedDays(txs)
		return []models.Anchor{models.DayAnchor(days[0])}
	}
}

func mostCommonWeekday(txs []models.Transaction) time.Weekday {
	var counts [7]int
	for _, tx := range txs {
		counts[tx.Date.Weekday()]++
	}
	best := time.Sunday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

// rankedDays returns the distinct days of month ordered by frequency, ties
// broken by the earlier day.
func rankedDays(txs []models.Transaction) []int {
	counts := make(map[int]int)
	for _, tx := range txs {
		counts[tx.Date.Day()]++
	}
	days := make([]int, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		if counts[days[i]] != counts[days[j]] {
			return counts[days[i]] > counts[days[j]]
		}
		return days[i] < days[j]
	})
	return days
}

// twoMostCommonDays returns two sorted anchor days. A single observed day is
// paired with the day half a month away.
func twoMostCommonDays(txs []models.Transaction) (int, int) {
	days := rankedDays(txs)
	first := days[0]
	var second int
	if len(days) > 1 {
		second = days[1]
	} else if first <= 15 {
		second = first + 15
	} else {
		second = first - 15
	}
	if second < first {
		first, second = second, first
	}
	return first, second
}
