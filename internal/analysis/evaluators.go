package analysis

import (
	"fmt"

	"ylos-analyzer/pkg/i18n"
)

const tsLayout = "2006-01-02 15:04:05"

// evaluateActivity checks the minimum days-traded and winning-days bounds.
// Each unmet bound is an independent CRITICAL violation.
func evaluateActivity(daily DailyStats, profile RuleProfile) []Violation {
	var violations []Violation

	if daily.DaysTraded < profile.MinDaysTraded {
		violations = append(violations, Violation{
			Code:        CodeMinDays,
			Title:       i18n.M().ViolationMinDaysTitle,
			Description: fmt.Sprintf(i18n.M().ViolationMinDaysDesc, daily.DaysTraded, profile.MinDaysTraded),
			Severity:    SeverityCritical,
		})
	}

	if daily.WinningDays < profile.MinWinningDays {
		violations = append(violations, Violation{
			Code:        CodeWinDays,
			Title:       i18n.M().ViolationWinDaysTitle,
			Description: fmt.Sprintf(i18n.M().ViolationWinDaysDesc, daily.WinningDays, profile.MinWinningDays),
			Severity:    SeverityCritical,
		})
	}

	return violations
}

// evaluateConsistency applies the profit-concentration cap. The denominator is
// the sum of strictly positive days only; when that sum is not positive the
// rule passes vacuously (a net-losing account cannot fail a profit rule).
func evaluateConsistency(daily DailyStats, profile RuleProfile) ([]Violation, bool) {
	var positiveTotal float64
	for _, sum := range daily.Results {
		if sum > 0 {
			positiveTotal += sum
		}
	}

	if positiveTotal <= 0 {
		return nil, true
	}

	pct := daily.LargestDayProfit / positiveTotal * 100
	if pct <= profile.ConsistencyCapPct {
		return nil, true
	}

	return []Violation{{
		Code:        CodeConsistency,
		Title:       i18n.M().ViolationConsistencyTitle,
		Description: fmt.Sprintf(i18n.M().ViolationConsistencyDesc, pct, profile.ConsistencyCapPct),
		Severity:    SeverityCritical,
		Impact:      daily.LargestDayProfit,
	}}, false
}

// evaluateAveraging flags averaging trades that closed at a loss. The report
// records only that averaging was used, not how many additions occurred, so
// this is a WARNING for manual review rather than an automatic breach.
func evaluateAveraging(trades []TradeRecord) []Violation {
	var violations []Violation

	for _, tr := range trades {
		if !tr.UsedAveraging || tr.NetResult >= 0 {
			continue
		}
		violations = append(violations, Violation{
			Code:        CodeAveraging,
			Title:       i18n.M().ViolationAveragingTitle,
			Description: fmt.Sprintf(i18n.M().ViolationAveragingDesc, tr.NetResult),
			Severity:    SeverityWarning,
			AffectedTrades: []TradeRef{{
				Symbol:   tr.Symbol,
				OpenedAt: tr.OpenedAt.Format(tsLayout),
				Result:   tr.NetResult,
			}},
		})
	}

	return violations
}

// evaluateOvernight flags trades whose open and close fall on different
// session dates. Dates are compared without re-localization, same as the day
// aggregation: overnight is a session-boundary concept.
func evaluateOvernight(trades []TradeRecord) []Violation {
	var violations []Violation

	for _, tr := range trades {
		openDay := dayKey(tr.OpenedAt)
		closeDay := dayKey(tr.ClosedAt)
		if openDay == closeDay {
			continue
		}
		violations = append(violations, Violation{
			Code:        CodeOvernight,
			Title:       i18n.M().ViolationOvernightTitle,
			Description: fmt.Sprintf(i18n.M().ViolationOvernightDesc, tr.Symbol, openDay, closeDay),
			Severity:    SeverityCritical,
			AffectedTrades: []TradeRef{{
				Symbol:   tr.Symbol,
				OpenedAt: tr.OpenedAt.Format(tsLayout),
				ClosedAt: tr.ClosedAt.Format(tsLayout),
			}},
		})
	}

	return violations
}
