package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// CreateUser inserts a new user row.
func (d *Database) CreateUser(ctx context.Context, u User) error {
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByEmail returns the user with the given email, or nil when absent.
func (d *Database) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := d.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?
	`, email)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// InsertAnalysisRun records a completed analysis.
func (d *Database) InsertAnalysisRun(ctx context.Context, run AnalysisRun) error {
	_, err := d.DB.ExecContext(ctx, `
		INSERT INTO analysis_runs (
			id, user_id, account_type, approved, total_trades, days_traded,
			winning_days, total_profit, violation_count, critical_count,
			news_checked, verdict_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, nullable(run.UserID), run.AccountType, run.Approved, run.TotalTrades,
		run.DaysTraded, run.WinningDays, run.TotalProfit, run.ViolationCount,
		run.CriticalCount, run.NewsChecked, run.VerdictJSON, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis run: %w", err)
	}
	return nil
}

// ListAnalysisRuns returns a user's analysis history, newest first.
func (d *Database) ListAnalysisRuns(ctx context.Context, userID string, limit int) ([]AnalysisRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.DB.QueryContext(ctx, `
		SELECT id, COALESCE(user_id, ''), account_type, approved, total_trades,
		       days_traded, winning_days, total_profit, violation_count,
		       critical_count, news_checked, created_at
		FROM analysis_runs
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []AnalysisRun
	for rows.Next() {
		var run AnalysisRun
		if err := rows.Scan(&run.ID, &run.UserID, &run.AccountType, &run.Approved,
			&run.TotalTrades, &run.DaysTraded, &run.WinningDays, &run.TotalProfit,
			&run.ViolationCount, &run.CriticalCount, &run.NewsChecked, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetAnalysisRun returns one of a user's runs including its verdict JSON.
func (d *Database) GetAnalysisRun(ctx context.Context, userID, id string) (*AnalysisRun, error) {
	row := d.DB.QueryRowContext(ctx, `
		SELECT id, COALESCE(user_id, ''), account_type, approved, total_trades,
		       days_traded, winning_days, total_profit, violation_count,
		       critical_count, news_checked, verdict_json, created_at
		FROM analysis_runs
		WHERE id = ? AND user_id = ?
	`, id, userID)

	var run AnalysisRun
	err := row.Scan(&run.ID, &run.UserID, &run.AccountType, &run.Approved,
		&run.TotalTrades, &run.DaysTraded, &run.WinningDays, &run.TotalProfit,
		&run.ViolationCount, &run.CriticalCount, &run.NewsChecked,
		&run.VerdictJSON, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan analysis run: %w", err)
	}
	return &run, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
