package analysis

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ylos-analyzer/pkg/i18n"
)

func newTestAnalyzer(events EventSource) *Analyzer {
	return New(DefaultProfiles(), events, time.Second)
}

// compliantTrades is ten single-trade days of +100 each: every rule passes
// for a Master Funded account.
func compliantTrades() []TradeRecord {
	var trades []TradeRecord
	for d := 2; d < 12; d++ {
		trades = append(trades, trade(d, 9, 30, 100))
	}
	return trades
}

func TestAnalyzeApproved(t *testing.T) {
	a := newTestAnalyzer(nil)

	verdict, err := a.Analyze(context.Background(), Request{AccountType: MasterFunded}, compliantTrades())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !verdict.Approved {
		t.Fatalf("approved = false, violations = %+v", verdict.Violations)
	}
	if verdict.TotalTrades != 10 || verdict.DaysTraded != 10 || verdict.WinningDays != 10 {
		t.Errorf("counts = %d/%d/%d, want 10/10/10",
			verdict.TotalTrades, verdict.DaysTraded, verdict.WinningDays)
	}
	if verdict.TotalProfit != 1000 || verdict.LargestDayProfit != 100 {
		t.Errorf("profit = %v/%v, want 1000/100", verdict.TotalProfit, verdict.LargestDayProfit)
	}
	if !verdict.ConsistencyPassed {
		t.Error("ConsistencyPassed = false, want true")
	}
	if len(verdict.Violations) != 0 {
		t.Errorf("violations = %+v, want empty slice", verdict.Violations)
	}
	if verdict.Violations == nil {
		t.Error("violations is nil, want empty slice")
	}
	if len(verdict.Recommendations) != 1 || verdict.Recommendations[0] != i18n.M().RecommendCompliant {
		t.Errorf("recommendations = %v, want single compliant line", verdict.Recommendations)
	}
	if len(verdict.NextSteps) != 3 {
		t.Errorf("next steps = %v, want the three approved lines", verdict.NextSteps)
	}
}

func TestAnalyzeWarningOnlyStillApproves(t *testing.T) {
	a := newTestAnalyzer(nil)

	trades := compliantTrades()
	loser := trade(2, 14, 0, -30)
	loser.UsedAveraging = true
	trades = append(trades, loser)

	verdict, err := a.Analyze(context.Background(), Request{AccountType: MasterFunded}, trades)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !verdict.Approved {
		t.Errorf("approved = false with only WARNING violations: %+v", verdict.Violations)
	}
	if len(verdict.Violations) != 1 || verdict.Violations[0].Code != CodeAveraging {
		t.Errorf("violations = %v, want one averaging warning", codesOf(verdict.Violations))
	}
	if len(verdict.Recommendations) != 1 || verdict.Recommendations[0] != i18n.M().RecommendAveraging {
		t.Errorf("recommendations = %v, want averaging line only", verdict.Recommendations)
	}
}

func TestAnalyzeConsistencyRejection(t *testing.T) {
	a := newTestAnalyzer(nil)

	// Five winning days for Instant Funding, but one day dominates:
	// 1000 / 1840 = 54% > 30%.
	trades := []TradeRecord{
		trade(2, 9, 0, 1000),
		trade(3, 9, 0, 210),
		trade(4, 9, 0, 210),
		trade(5, 9, 0, 210),
		trade(6, 9, 0, 210),
	}

	verdict, err := a.Analyze(context.Background(), Request{AccountType: InstantFunding}, trades)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if verdict.Approved {
		t.Fatal("approved = true, want rejection on consistency")
	}
	if verdict.ConsistencyPassed {
		t.Error("ConsistencyPassed = true, want false")
	}
	if !hasCode(verdict.Violations, CodeConsistency) {
		t.Errorf("violations = %v, want consistency", codesOf(verdict.Violations))
	}
	// Rejected next steps end with the critical-count line.
	if len(verdict.NextSteps) != 4 {
		t.Errorf("next steps = %v, want 3 rejected lines plus critical count", verdict.NextSteps)
	}
}

func TestAnalyzeRecommendationOrderAndDedup(t *testing.T) {
	a := newTestAnalyzer(nil)

	// Two days only, both held overnight, one averaging loss: min-days,
	// win-days, consistency, overnight (twice) and averaging all fire.
	overnight1 := TradeRecord{
		Symbol:    "WINFUT",
		OpenedAt:  time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC),
		ClosedAt:  time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		NetResult: 20,
	}
	overnight2 := TradeRecord{
		Symbol:    "WDOFUT",
		OpenedAt:  time.Date(2025, 6, 3, 17, 0, 0, 0, time.UTC),
		ClosedAt:  time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC),
		NetResult: 20,
	}
	averaged := trade(2, 10, 0, -60)
	averaged.UsedAveraging = true

	verdict, err := a.Analyze(context.Background(), Request{AccountType: MasterFunded},
		[]TradeRecord{overnight1, overnight2, averaged})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	m := i18n.M()
	want := []string{
		m.RecommendMinDays,
		m.RecommendWinDays,
		m.RecommendConsistency,
		m.RecommendAveraging,
		m.RecommendOvernight,
	}
	if !reflect.DeepEqual(verdict.Recommendations, want) {
		t.Errorf("recommendations = %v, want %v", verdict.Recommendations, want)
	}
}

func TestAnalyzeEmptyReport(t *testing.T) {
	a := newTestAnalyzer(nil)
	if _, err := a.Analyze(context.Background(), Request{AccountType: MasterFunded}, nil); !errors.Is(err, ErrEmptyReport) {
		t.Errorf("err = %v, want ErrEmptyReport", err)
	}
}

func TestAnalyzeUnknownAccountType(t *testing.T) {
	a := newTestAnalyzer(nil)
	if _, err := a.Analyze(context.Background(), Request{AccountType: "evaluation"}, compliantTrades()); err == nil {
		t.Error("expected error for unknown account type")
	}
}

func TestAnalyzeNewsCheck(t *testing.T) {
	newYork := mustLoad(t, "America/New_York")

	// Compliant baseline plus one trade that sits on a high-impact release.
	// Day 2 trades open 09:30 São Paulo = 08:30 New York.
	source := &stubSource{events: []CalendarEvent{
		{Name: "Nonfarm Payrolls", Time: time.Date(2025, 6, 2, 8, 30, 0, 0, newYork)},
	}}
	a := newTestAnalyzer(source)

	verdict, err := a.Analyze(context.Background(), Request{
		AccountType:    MasterFunded,
		TimezoneOffset: "-03",
		CheckNews:      true,
	}, compliantTrades())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if source.calls != 1 {
		t.Errorf("calendar calls = %d, want 1", source.calls)
	}
	if verdict.Approved {
		t.Error("approved = true, want rejection on news overlap")
	}
	if !hasCode(verdict.Violations, CodeNews) {
		t.Errorf("violations = %v, want news", codesOf(verdict.Violations))
	}
	if len(verdict.NewsDetails) == 0 {
		t.Error("news details empty, want at least one overlap")
	}
}

func TestAnalyzeNewsCheckUnsupportedOffset(t *testing.T) {
	a := newTestAnalyzer(&stubSource{})
	_, err := a.Analyze(context.Background(), Request{
		AccountType:    MasterFunded,
		TimezoneOffset: "+09",
		CheckNews:      true,
	}, compliantTrades())
	if err == nil {
		t.Error("expected error for unsupported timezone offset")
	}
}

func TestAnalyzeNewsCheckWithoutSource(t *testing.T) {
	a := newTestAnalyzer(nil)
	verdict, err := a.Analyze(context.Background(), Request{
		AccountType:    MasterFunded,
		TimezoneOffset: "-03",
		CheckNews:      true,
	}, compliantTrades())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !verdict.Approved {
		t.Errorf("approved = false without a calendar source: %+v", verdict.Violations)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := newTestAnalyzer(nil)
	req := Request{AccountType: InstantFunding}
	trades := []TradeRecord{
		trade(2, 9, 0, 1000),
		trade(3, 9, 0, 210),
	}

	first, err := a.Analyze(context.Background(), req, trades)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := a.Analyze(context.Background(), req, trades)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("verdicts differ between runs:\n%+v\n%+v", first, second)
	}
}
