package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ylos-analyzer/pkg/i18n"
)

// ErrEmptyReport is returned when the trade set has no rows.
var ErrEmptyReport = errors.New("trade report contains no trades")

// Request carries the caller-supplied parameters of one analysis run.
type Request struct {
	AccountType     AccountType
	CurrentBalance  float64
	TimezoneOffset  string
	CheckNews       bool
	WithdrawalsMade int
}

// Analyzer sequences the rule evaluators against an account-type profile.
// It holds no per-run state; every run is fully isolated.
type Analyzer struct {
	profiles        map[AccountType]RuleProfile
	events          EventSource // nil when no calendar capability is configured
	calendarTimeout time.Duration
}

// New builds an Analyzer. events may be nil; the news check then degrades to
// a no-op. calendarTimeout bounds the external calendar call.
func New(profiles map[AccountType]RuleProfile, events EventSource, calendarTimeout time.Duration) *Analyzer {
	if calendarTimeout <= 0 {
		calendarTimeout = 10 * time.Second
	}
	return &Analyzer{
		profiles:        profiles,
		events:          events,
		calendarTimeout: calendarTimeout,
	}
}

// Profiles returns the resolved rule profiles.
func (a *Analyzer) Profiles() map[AccountType]RuleProfile {
	return a.profiles
}

// Analyze runs the full evaluator sequence and composes the verdict.
// Evaluator order is fixed: activity, consistency, averaging, news (when
// enabled), overnight. Only the recommendation text depends on it; the
// evaluators themselves are independent.
func (a *Analyzer) Analyze(ctx context.Context, req Request, trades []TradeRecord) (*Verdict, error) {
	if len(trades) == 0 {
		return nil, ErrEmptyReport
	}

	profile, err := ProfileFor(a.profiles, req.AccountType)
	if err != nil {
		return nil, err
	}

	log.Printf("[ANALYSIS] "+i18n.M().AnalysisStarted, req.AccountType, len(trades), req.CheckNews)

	daily, err := AggregateByDay(trades, profile)
	if err != nil {
		return nil, fmt.Errorf("aggregate trades: %w", err)
	}

	violations := evaluateActivity(daily, profile)

	consistencyViolations, consistencyPassed := evaluateConsistency(daily, profile)
	violations = append(violations, consistencyViolations...)

	violations = append(violations, evaluateAveraging(trades)...)

	var details []NewsDetail
	if req.CheckNews {
		newsViolations, newsDetails, err := a.runNewsCheck(ctx, req, trades)
		if err != nil {
			return nil, err
		}
		violations = append(violations, newsViolations...)
		details = newsDetails
	}

	violations = append(violations, evaluateOvernight(trades)...)

	verdict := composeVerdict(trades, daily, consistencyPassed, violations, details)

	log.Printf("[ANALYSIS] "+i18n.M().AnalysisCompleted,
		verdict.Approved, len(verdict.Violations), countCritical(verdict.Violations))

	return verdict, nil
}

// runNewsCheck gates the news evaluator: it needs a resolvable source
// timezone and a configured calendar capability. A missing capability is a
// graceful skip; an unsupported offset is an input error.
func (a *Analyzer) runNewsCheck(ctx context.Context, req Request, trades []TradeRecord) ([]Violation, []NewsDetail, error) {
	sourceLoc, err := ResolveOffset(req.TimezoneOffset)
	if err != nil {
		return nil, nil, err
	}

	if a.events == nil {
		log.Printf("[NEWS] %s", i18n.M().NewsCheckSkipped)
		return nil, nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.calendarTimeout)
	defer cancel()

	violations, details := evaluateNews(ctx, trades, a.events, sourceLoc)
	return violations, details, nil
}
