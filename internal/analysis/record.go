package analysis

import (
	"fmt"
	"strings"
	"time"
)

// AccountType selects which rule profile applies to an analysis.
type AccountType string

const (
	MasterFunded   AccountType = "master_funded"
	InstantFunding AccountType = "instant_funding"
)

// ParseAccountType accepts the string form used by the rules endpoint.
func ParseAccountType(v string) (AccountType, error) {
	switch AccountType(strings.ToLower(strings.TrimSpace(v))) {
	case MasterFunded:
		return MasterFunded, nil
	case InstantFunding:
		return InstantFunding, nil
	}
	return "", fmt.Errorf("unknown account type %q", v)
}

// AccountTypeFromCode accepts the numeric form used by the analyze endpoint
// (1 = Master Funded, 2 = Instant Funding).
func AccountTypeFromCode(code int) (AccountType, error) {
	switch code {
	case 1:
		return MasterFunded, nil
	case 2:
		return InstantFunding, nil
	}
	return "", fmt.Errorf("unknown account type code %d", code)
}

// TradeRecord is one executed trade from the trader's exported report.
// Timestamps are wall-clock times in the trader's local session; no timezone
// is attached until the news evaluator localizes them. Records are immutable
// once parsed.
type TradeRecord struct {
	Symbol   string    `json:"symbol"`
	OpenedAt time.Time `json:"opened_at"`
	ClosedAt time.Time `json:"closed_at"`
	Duration string    `json:"duration"`

	BuyQty  int    `json:"buy_qty"`
	SellQty int    `json:"sell_qty"`
	Side    string `json:"side"` // "C" (buy) or "V" (sell)

	BuyPrice    float64 `json:"buy_price"`
	SellPrice   float64 `json:"sell_price"`
	MarketPrice float64 `json:"market_price"`

	UsedAveraging bool `json:"used_averaging"`

	IntervalResult    float64 `json:"interval_result"`
	IntervalResultPct float64 `json:"interval_result_pct"`
	NetResult         float64 `json:"net_result"`
	NetResultPct      float64 `json:"net_result_pct"`
	Total             float64 `json:"total"`
}
