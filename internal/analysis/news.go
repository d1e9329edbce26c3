package analysis

import (
	"context"
	"fmt"
	"log"
	"time"

	"ylos-analyzer/pkg/i18n"
)

// CalendarEvent is one high-impact economic-calendar entry. Time is in the
// market reference timezone.
type CalendarEvent struct {
	Name string
	Time time.Time
}

// EventSource provides high-impact events for a date range. Implementations
// are expected to fail soft at the network level; any error returned here
// degrades the news check to "no violations".
type EventSource interface {
	HighImpactEvents(ctx context.Context, from, to time.Time) ([]CalendarEvent, error)
}

// marketZone is the reference timezone news events are published in.
const marketZone = "America/New_York"

// newsWindow is the symmetric exclusion window around each event.
const newsWindow = 5 * time.Minute

// offsetZones maps the supported source-timezone offsets to IANA zones.
// "-04" is New York under DST, "-05" without; both resolve to the same zone.
var offsetZones = map[string]string{
	"-03": "America/Sao_Paulo",
	"-04": "America/New_York",
	"-05": "America/New_York",
	"+00": "UTC",
	"+01": "Europe/London",
}

// SupportedOffsets lists the accepted source-timezone offsets.
func SupportedOffsets() []string {
	return []string{"-03", "-04", "-05", "+00", "+01"}
}

// ResolveOffset maps an offset string to a concrete timezone.
func ResolveOffset(offset string) (*time.Location, error) {
	name, ok := offsetZones[offset]
	if !ok {
		return nil, fmt.Errorf("unsupported timezone offset %q", offset)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", name, err)
	}
	return loc, nil
}

// localize re-interprets a wall-clock timestamp in the given zone.
func localize(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// evaluateNews checks every trade against every high-impact event in the
// report's date range (full cross product: a trade overlapping three events
// yields three violations). Calendar failures are logged and yield nothing;
// the overall analysis continues.
func evaluateNews(ctx context.Context, trades []TradeRecord, source EventSource, sourceLoc *time.Location) ([]Violation, []NewsDetail) {
	if len(trades) == 0 {
		return nil, nil
	}

	marketLoc, err := time.LoadLocation(marketZone)
	if err != nil {
		log.Printf("[NEWS] "+i18n.M().CalendarLookupFailed, err)
		return nil, nil
	}

	from, to := trades[0].OpenedAt, trades[0].OpenedAt
	for _, tr := range trades[1:] {
		if tr.OpenedAt.Before(from) {
			from = tr.OpenedAt
		}
		if tr.OpenedAt.After(to) {
			to = tr.OpenedAt
		}
	}

	events, err := source.HighImpactEvents(ctx, from, to)
	if err != nil {
		log.Printf("[NEWS] "+i18n.M().CalendarLookupFailed, err)
		return nil, nil
	}

	var violations []Violation
	var details []NewsDetail

	for _, tr := range trades {
		openMkt := localize(tr.OpenedAt, sourceLoc).In(marketLoc)
		closeMkt := localize(tr.ClosedAt, sourceLoc).In(marketLoc)

		for _, ev := range events {
			windowStart := ev.Time.Add(-newsWindow)
			windowEnd := ev.Time.Add(newsWindow)

			// Inclusive-inclusive interval overlap.
			if openMkt.After(windowEnd) || closeMkt.Before(windowStart) {
				continue
			}

			violations = append(violations, Violation{
				Code:        CodeNews,
				Title:       i18n.M().ViolationNewsTitle,
				Description: fmt.Sprintf(i18n.M().ViolationNewsDesc, ev.Name),
				Severity:    SeverityCritical,
				AffectedTrades: []TradeRef{{
					Symbol:   tr.Symbol,
					OpenedAt: tr.OpenedAt.Format(tsLayout),
					ClosedAt: tr.ClosedAt.Format(tsLayout),
					Event:    ev.Name,
					EventAt:  ev.Time.Format(tsLayout),
				}},
			})
			details = append(details, NewsDetail{
				TradeOpenedAt:       tr.OpenedAt.Format(tsLayout),
				TradeOpenedAtMarket: openMkt.Format("2006-01-02 15:04:05 MST"),
				Event:               ev.Name,
				EventAt:             ev.Time.Format(tsLayout),
			})
		}
	}

	return violations, details
}
