package analysis

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// dayKey derives the trading-session date of a timestamp. The wall-clock date
// is used as-is: the trading-days and overnight rules are defined by the
// trader's local session, not by any event timezone.
func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// DailyStats is the shared per-day aggregation consumed by the evaluators.
type DailyStats struct {
	// Results maps session date to the summed net result of that day.
	Results map[string]float64

	DaysTraded       int
	WinningDays      int
	LargestDayProfit float64
	TotalProfit      float64
}

// AggregateByDay groups trades by their open-timestamp session date and sums
// net results. LargestDayProfit is 0 for an empty trade set, by definition.
func AggregateByDay(trades []TradeRecord, profile RuleProfile) (DailyStats, error) {
	stats := DailyStats{Results: make(map[string]float64, len(trades))}

	for i, tr := range trades {
		if tr.OpenedAt.IsZero() {
			return DailyStats{}, fmt.Errorf("trade %d (%s) has no open timestamp", i, tr.Symbol)
		}
		stats.Results[dayKey(tr.OpenedAt)] += tr.NetResult
		stats.TotalProfit += tr.NetResult
	}

	stats.DaysTraded = len(stats.Results)

	first := true
	for _, sum := range stats.Results {
		if sum >= profile.MinWinningDayProfit {
			stats.WinningDays++
		}
		if first || sum > stats.LargestDayProfit {
			stats.LargestDayProfit = sum
			first = false
		}
	}
	if stats.DaysTraded == 0 {
		stats.LargestDayProfit = 0
	}
	return stats, nil
}
