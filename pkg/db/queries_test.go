package db

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	d, err := New(":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := ApplyMigrations(d); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	return d
}

func TestUserRoundTrip(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	u := User{
		ID:           "u-1",
		Email:        "trader@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := d.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := d.GetUserByEmail(ctx, "trader@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got == nil || got.ID != "u-1" || got.PasswordHash != "hash" {
		t.Errorf("got = %+v", got)
	}

	missing, err := d.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if missing != nil {
		t.Errorf("missing user = %+v, want nil", missing)
	}

	// Unique email constraint.
	if err := d.CreateUser(ctx, u); err == nil {
		t.Error("duplicate CreateUser succeeded")
	}
}

func TestAnalysisRunHistory(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	user := User{ID: "u-1", Email: "t@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
	if err := d.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	for i := 0; i < 3; i++ {
		run := AnalysisRun{
			ID:             "run-" + string(rune('a'+i)),
			UserID:         "u-1",
			AccountType:    "master_funded",
			Approved:       i == 0,
			TotalTrades:    10 + i,
			DaysTraded:     10,
			WinningDays:    8,
			TotalProfit:    1500.50,
			ViolationCount: i,
			CriticalCount:  i,
			NewsChecked:    true,
			VerdictJSON:    `{"approved":true}`,
			CreatedAt:      now.Add(time.Duration(i) * time.Minute),
		}
		if err := d.InsertAnalysisRun(ctx, run); err != nil {
			t.Fatalf("InsertAnalysisRun: %v", err)
		}
	}

	runs, err := d.ListAnalysisRuns(ctx, "u-1", 2)
	if err != nil {
		t.Fatalf("ListAnalysisRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want limit 2", len(runs))
	}
	// Newest first.
	if runs[0].ID != "run-c" {
		t.Errorf("first run = %s, want run-c", runs[0].ID)
	}
	// Listing omits the verdict payload.
	if runs[0].VerdictJSON != "" {
		t.Errorf("list returned verdict JSON: %q", runs[0].VerdictJSON)
	}

	run, err := d.GetAnalysisRun(ctx, "u-1", "run-a")
	if err != nil {
		t.Fatalf("GetAnalysisRun: %v", err)
	}
	if run.VerdictJSON != `{"approved":true}` || !run.Approved {
		t.Errorf("run = %+v", run)
	}

	if _, err := d.GetAnalysisRun(ctx, "u-1", "run-z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	// Another user's run is invisible.
	if _, err := d.GetAnalysisRun(ctx, "u-2", "run-a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user err = %v, want ErrNotFound", err)
	}
}

func TestAnonymousRunNotListed(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	run := AnalysisRun{
		ID:          "run-anon",
		AccountType: "instant_funding",
		VerdictJSON: "{}",
		CreatedAt:   time.Now().UTC(),
	}
	if err := d.InsertAnalysisRun(ctx, run); err != nil {
		t.Fatalf("InsertAnalysisRun: %v", err)
	}

	runs, err := d.ListAnalysisRuns(ctx, "u-1", 10)
	if err != nil {
		t.Fatalf("ListAnalysisRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs for u-1, want 0", len(runs))
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	d := newTestDB(t)
	if err := ApplyMigrations(d); err != nil {
		t.Fatalf("second ApplyMigrations: %v", err)
	}
}
