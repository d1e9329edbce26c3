package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleProfile is a named set of withdrawal-eligibility thresholds. Exactly two
// profiles exist; selection is by AccountType and the chosen profile is
// immutable for the duration of an analysis.
type RuleProfile struct {
	Name                 string  `yaml:"name" json:"name"`
	MinDaysTraded        int     `yaml:"min_days_traded" json:"min_days_traded"`
	MinWinningDays       int     `yaml:"min_winning_days" json:"min_winning_days"`
	MinWinningDayProfit  float64 `yaml:"min_winning_day_profit" json:"min_winning_day_profit"`
	ConsistencyCapPct    float64 `yaml:"consistency_cap_pct" json:"consistency_cap_pct"`
	MaxAveragingPerTrade int     `yaml:"max_averaging_per_trade" json:"max_averaging_per_trade"`
	AllowNewsTrading     bool    `yaml:"allow_news_trading" json:"allow_news_trading"`
	AllowOvernight       bool    `yaml:"allow_overnight" json:"allow_overnight"`
}

// DefaultProfiles returns the built-in rule set for both account types.
func DefaultProfiles() map[AccountType]RuleProfile {
	return map[AccountType]RuleProfile{
		MasterFunded: {
			Name:                 "Master Funded",
			MinDaysTraded:        10,
			MinWinningDays:       7,
			MinWinningDayProfit:  50.0,
			ConsistencyCapPct:    40.0,
			MaxAveragingPerTrade: 3,
			AllowNewsTrading:     false,
			AllowOvernight:       false,
		},
		InstantFunding: {
			Name:                 "Instant Funding",
			MinDaysTraded:        5,
			MinWinningDays:       5,
			MinWinningDayProfit:  200.0,
			ConsistencyCapPct:    30.0,
			MaxAveragingPerTrade: 3,
			AllowNewsTrading:     false,
			AllowOvernight:       false,
		},
	}
}

// LoadProfiles returns the defaults overlaid with entries from a YAML file.
// The file maps account type to profile fields, e.g.:
//
//	master_funded:
//	  min_days_traded: 12
func LoadProfiles(path string) (map[AccountType]RuleProfile, error) {
	profiles := DefaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var overrides map[AccountType]yaml.Node
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	for at, node := range overrides {
		base, ok := profiles[at]
		if !ok {
			return nil, fmt.Errorf("unknown account type %q in rules file", at)
		}
		// Decode on top of the defaults so partial overrides keep the rest.
		if err := node.Decode(&base); err != nil {
			return nil, fmt.Errorf("decode rules for %s: %w", at, err)
		}
		profiles[at] = base
	}
	return profiles, nil
}

// ProfileFor selects the rule profile for an account type.
func ProfileFor(profiles map[AccountType]RuleProfile, at AccountType) (RuleProfile, error) {
	p, ok := profiles[at]
	if !ok {
		return RuleProfile{}, fmt.Errorf("no rule profile for account type %q", at)
	}
	return p, nil
}
