package analysis

import (
	"fmt"

	"ylos-analyzer/pkg/i18n"
)

// Verdict is the sole output artifact of an analysis run. It is created once
// per run and never mutated afterwards.
type Verdict struct {
	Approved          bool         `json:"approved"`
	TotalTrades       int          `json:"total_trades"`
	DaysTraded        int          `json:"days_traded"`
	WinningDays       int          `json:"winning_days"`
	TotalProfit       float64      `json:"total_profit"`
	LargestDayProfit  float64      `json:"largest_day_profit"`
	ConsistencyPassed bool         `json:"consistency_passed"`
	Violations        []Violation  `json:"violations"`
	NewsDetails       []NewsDetail `json:"news_details,omitempty"`
	Recommendations   []string     `json:"recommendations"`
	NextSteps         []string     `json:"next_steps"`
}

// recommendationOrder fixes the iteration order for recommendation lines so
// output is reproducible regardless of violation-list order.
var recommendationOrder = []string{
	CodeMinDays,
	CodeWinDays,
	CodeConsistency,
	CodeAveraging,
	CodeOvernight,
	CodeNews,
}

func recommendationFor(code string) string {
	m := i18n.M()
	switch code {
	case CodeMinDays:
		return m.RecommendMinDays
	case CodeWinDays:
		return m.RecommendWinDays
	case CodeConsistency:
		return m.RecommendConsistency
	case CodeAveraging:
		return m.RecommendAveraging
	case CodeOvernight:
		return m.RecommendOvernight
	case CodeNews:
		return m.RecommendNews
	}
	return ""
}

// buildRecommendations emits one line per distinct violation code, in the
// fixed evaluator order, or a single congratulatory line when clean.
func buildRecommendations(violations []Violation) []string {
	present := make(map[string]bool, len(violations))
	for _, v := range violations {
		present[v.Code] = true
	}

	var recs []string
	for _, code := range recommendationOrder {
		if present[code] {
			recs = append(recs, recommendationFor(code))
		}
	}
	if len(recs) == 0 {
		recs = append(recs, i18n.M().RecommendCompliant)
	}
	return recs
}

// buildNextSteps returns the fixed next-steps text for the approval outcome,
// plus a critical-count line on rejection.
func buildNextSteps(violations []Violation, approved bool) []string {
	m := i18n.M()
	if approved {
		return []string{
			m.NextApprovedWithdraw,
			m.NextApprovedProceed,
			m.NextApprovedDiscipline,
		}
	}

	steps := []string{
		m.NextRejectedBlocked,
		m.NextRejectedReview,
		m.NextRejectedAdjust,
	}
	if critical := countCritical(violations); critical > 0 {
		steps = append(steps, fmt.Sprintf(m.NextFixCritical, critical))
	}
	return steps
}

// composeVerdict merges violations into the final verdict. Approval holds iff
// no violation is CRITICAL; WARNING-only runs still approve.
func composeVerdict(trades []TradeRecord, daily DailyStats, consistencyPassed bool, violations []Violation, details []NewsDetail) *Verdict {
	approved := countCritical(violations) == 0

	if violations == nil {
		violations = []Violation{}
	}

	return &Verdict{
		Approved:          approved,
		TotalTrades:       len(trades),
		DaysTraded:        daily.DaysTraded,
		WinningDays:       daily.WinningDays,
		TotalProfit:       daily.TotalProfit,
		LargestDayProfit:  daily.LargestDayProfit,
		ConsistencyPassed: consistencyPassed,
		Violations:        violations,
		NewsDetails:       details,
		Recommendations:   buildRecommendations(violations),
		NextSteps:         buildNextSteps(violations, approved),
	}
}
