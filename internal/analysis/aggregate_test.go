package analysis

import (
	"testing"
	"time"
)

// trade builds a same-day trade with the given net result.
func trade(day, hour, min int, net float64) TradeRecord {
	opened := time.Date(2025, 6, day, hour, min, 0, 0, time.UTC)
	return TradeRecord{
		Symbol:    "WINFUT",
		OpenedAt:  opened,
		ClosedAt:  opened.Add(20 * time.Minute),
		NetResult: net,
	}
}

func TestAggregateByDayGroupsBySessionDate(t *testing.T) {
	profile := DefaultProfiles()[MasterFunded]
	trades := []TradeRecord{
		trade(2, 9, 0, 100),
		trade(2, 14, 30, -40),
		trade(3, 10, 0, 200),
		trade(4, 10, 0, -10),
	}

	stats, err := AggregateByDay(trades, profile)
	if err != nil {
		t.Fatalf("AggregateByDay: %v", err)
	}

	if stats.DaysTraded != 3 {
		t.Errorf("DaysTraded = %d, want 3", stats.DaysTraded)
	}
	if got := stats.Results["2025-06-02"]; got != 60 {
		t.Errorf("day 2025-06-02 sum = %v, want 60", got)
	}
	if stats.TotalProfit != 250 {
		t.Errorf("TotalProfit = %v, want 250", stats.TotalProfit)
	}
	if stats.LargestDayProfit != 200 {
		t.Errorf("LargestDayProfit = %v, want 200", stats.LargestDayProfit)
	}
	// Only 2025-06-02 (60) and 2025-06-03 (200) clear the $50 bar.
	if stats.WinningDays != 2 {
		t.Errorf("WinningDays = %d, want 2", stats.WinningDays)
	}
}

func TestAggregateByDayAllLosingDays(t *testing.T) {
	profile := DefaultProfiles()[MasterFunded]
	trades := []TradeRecord{
		trade(2, 9, 0, -100),
		trade(3, 9, 0, -50),
	}

	stats, err := AggregateByDay(trades, profile)
	if err != nil {
		t.Fatalf("AggregateByDay: %v", err)
	}

	if stats.WinningDays != 0 {
		t.Errorf("WinningDays = %d, want 0", stats.WinningDays)
	}
	// Largest day is the least-negative day, not zero.
	if stats.LargestDayProfit != -50 {
		t.Errorf("LargestDayProfit = %v, want -50", stats.LargestDayProfit)
	}
}

func TestAggregateByDayRejectsZeroTimestamp(t *testing.T) {
	profile := DefaultProfiles()[MasterFunded]
	trades := []TradeRecord{{Symbol: "WDOFUT", NetResult: 10}}

	if _, err := AggregateByDay(trades, profile); err == nil {
		t.Fatal("expected error for trade without open timestamp")
	}
}

func TestAggregateByDayEmpty(t *testing.T) {
	stats, err := AggregateByDay(nil, DefaultProfiles()[MasterFunded])
	if err != nil {
		t.Fatalf("AggregateByDay: %v", err)
	}
	if stats.DaysTraded != 0 || stats.LargestDayProfit != 0 {
		t.Errorf("empty set: DaysTraded=%d LargestDayProfit=%v, want zeros",
			stats.DaysTraded, stats.LargestDayProfit)
	}
}
