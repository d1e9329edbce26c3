package analysis

// Severity classifies how a violation affects the verdict. CRITICAL blocks
// approval on its own; WARNING never does.
type Severity string

const (
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Stable rule codes carried on violations and used for recommendation lookup.
const (
	CodeMinDays     = "YLOS_MIN_DAYS"
	CodeWinDays     = "YLOS_WIN_DAYS"
	CodeConsistency = "YLOS_CONSISTENCY"
	CodeAveraging   = "YLOS_AVERAGING"
	CodeOvernight   = "YLOS_OVERNIGHT"
	CodeNews        = "YLOS_NEWS"
)

// TradeRef points at a trade (and optionally an event) a violation concerns.
type TradeRef struct {
	Symbol   string  `json:"symbol,omitempty"`
	OpenedAt string  `json:"opened_at"`
	ClosedAt string  `json:"closed_at,omitempty"`
	Result   float64 `json:"result,omitempty"`
	Event    string  `json:"event,omitempty"`
	EventAt  string  `json:"event_at,omitempty"`
}

// Violation is one broken (or suspect) withdrawal rule.
type Violation struct {
	Code           string     `json:"code"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Severity       Severity   `json:"severity"`
	AffectedTrades []TradeRef `json:"affected_trades,omitempty"`
	Impact         float64    `json:"impact,omitempty"`
}

// NewsDetail records one trade/event overlap for the verdict's news section.
type NewsDetail struct {
	TradeOpenedAt       string `json:"trade_opened_at"`
	TradeOpenedAtMarket string `json:"trade_opened_at_market"`
	Event               string `json:"event"`
	EventAt             string `json:"event_at"`
}

func countCritical(violations []Violation) int {
	n := 0
	for _, v := range violations {
		if v.Severity == SeverityCritical {
			n++
		}
	}
	return n
}
