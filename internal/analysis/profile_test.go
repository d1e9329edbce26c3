package analysis

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseAccountType(t *testing.T) {
	cases := []struct {
		in      string
		want    AccountType
		wantErr bool
	}{
		{"master_funded", MasterFunded, false},
		{"INSTANT_FUNDING", InstantFunding, false},
		{" master_funded ", MasterFunded, false},
		{"evaluation", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParseAccountType(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseAccountType(%q) err = %v, wantErr %t", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ParseAccountType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAccountTypeFromCode(t *testing.T) {
	if at, err := AccountTypeFromCode(1); err != nil || at != MasterFunded {
		t.Errorf("code 1 = %q, %v", at, err)
	}
	if at, err := AccountTypeFromCode(2); err != nil || at != InstantFunding {
		t.Errorf("code 2 = %q, %v", at, err)
	}
	if _, err := AccountTypeFromCode(3); err == nil {
		t.Error("code 3 succeeded, want error")
	}
}

func TestLoadProfilesPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "master_funded:\n  min_days_traded: 12\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}

	mf := profiles[MasterFunded]
	if mf.MinDaysTraded != 12 {
		t.Errorf("MinDaysTraded = %d, want overridden 12", mf.MinDaysTraded)
	}
	// Unspecified fields keep their defaults.
	if mf.MinWinningDays != 7 || mf.ConsistencyCapPct != 40.0 {
		t.Errorf("defaults clobbered: %+v", mf)
	}
	if profiles[InstantFunding] != DefaultProfiles()[InstantFunding] {
		t.Errorf("untouched profile changed: %+v", profiles[InstantFunding])
	}
}

func TestLoadProfilesUnknownAccountType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("evaluation:\n  min_days_traded: 1\n"), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
	if _, err := LoadProfiles(path); err == nil {
		t.Error("expected error for unknown account type in rules file")
	}
}

func TestLoadProfilesEmptyPathUsesDefaults(t *testing.T) {
	profiles, err := LoadProfiles("")
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if profiles[MasterFunded] != DefaultProfiles()[MasterFunded] {
		t.Errorf("profiles differ from defaults: %+v", profiles[MasterFunded])
	}
}
