// Package calendar provides the economic-calendar capability backed by the
// Finnhub API. All failures are soft: callers treat errors as "no events".
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"ylos-analyzer/internal/analysis"
	"ylos-analyzer/pkg/cache"
)

// eventTimeLayout is Finnhub's timestamp format, in the market timezone.
const eventTimeLayout = "2006-01-02 15:04:05"

// Client fetches high-impact economic events. It implements
// analysis.EventSource.
type Client struct {
	http      *resty.Client
	cache     *cache.Sharded[[]analysis.CalendarEvent]
	apiKey    string
	marketLoc *time.Location
}

// finnhubEvent is one entry of the economic calendar response.
type finnhubEvent struct {
	Event  string `json:"event"`
	Date   string `json:"date"`
	Impact string `json:"impact"`
}

// NewClient builds a Finnhub calendar client. Responses are cached per date
// range for cacheTTL.
func NewClient(baseURL, apiKey string, timeout, cacheTTL time.Duration) (*Client, error) {
	marketLoc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load market timezone: %w", err)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)

	return &Client{
		http:      httpClient,
		cache:     cache.NewSharded[[]analysis.CalendarEvent](cacheTTL),
		apiKey:    apiKey,
		marketLoc: marketLoc,
	}, nil
}

// HighImpactEvents returns the high-impact events between from and to
// (inclusive, date granularity).
func (c *Client) HighImpactEvents(ctx context.Context, from, to time.Time) ([]analysis.CalendarEvent, error) {
	fromStr := from.Format("2006-01-02")
	toStr := to.Format("2006-01-02")

	cacheKey := fromStr + "|" + toStr
	if events, ok := c.cache.Get(cacheKey); ok {
		return events, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"from":  fromStr,
			"to":    toStr,
			"token": c.apiKey,
		}).
		Get("/calendar/economic")
	if err != nil {
		return nil, fmt.Errorf("fetch economic calendar: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("economic calendar status %d", resp.StatusCode())
	}

	var payload struct {
		EconomicCalendar []finnhubEvent `json:"economicCalendar"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("parse economic calendar response: %w", err)
	}

	events := make([]analysis.CalendarEvent, 0, len(payload.EconomicCalendar))
	for _, ev := range payload.EconomicCalendar {
		if ev.Impact != "high" {
			continue
		}
		ts, err := time.ParseInLocation(eventTimeLayout, ev.Date, c.marketLoc)
		if err != nil {
			return nil, fmt.Errorf("parse event time %q: %w", ev.Date, err)
		}
		events = append(events, analysis.CalendarEvent{Name: ev.Event, Time: ts})
	}

	c.cache.Set(cacheKey, events)
	return events, nil
}
