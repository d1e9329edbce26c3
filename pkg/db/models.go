package db

import "time"

// User represents an application user.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AnalysisRun is the audit record of one completed analysis. VerdictJSON
// holds the full serialized verdict; the scalar columns exist for listing
// without deserializing it.
type AnalysisRun struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id,omitempty"`
	AccountType    string    `json:"account_type"`
	Approved       bool      `json:"approved"`
	TotalTrades    int       `json:"total_trades"`
	DaysTraded     int       `json:"days_traded"`
	WinningDays    int       `json:"winning_days"`
	TotalProfit    float64   `json:"total_profit"`
	ViolationCount int       `json:"violation_count"`
	CriticalCount  int       `json:"critical_count"`
	NewsChecked    bool      `json:"news_checked"`
	VerdictJSON    string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
