package tier

import (
	"fmt"
	"time"
)

// Default expiry windows.
const (
	FreeExpiry    = 24 * time.Hour
	PremiumExpiry = 3 * 24 * time.Hour
	VipExpiry     = 7 * 24 * time.Hour
)

// Policy is the static configuration of one tier.
type Policy struct {
	ExpiryDuration time.Duration
	Badge          string
	Label          string
	UpgradeTargets []Tier
}

// Table holds exactly one Policy per tier.
type Table struct {
	policies [count]Policy
}

// Overrides replaces default expiry windows; zero fields keep the default.
type Overrides struct {
	Free    time.Duration
	Premium time.Duration
	Vip     time.Duration
}

// Default is the table built from the built-in policies.
var Default = MustTable(Overrides{})

func defaultPolicies() [count]Policy {
	return [count]Policy{
		Free: {
			ExpiryDuration: FreeExpiry,
			Label:          "Free",
			UpgradeTargets: []Tier{Premium, Vip},
		},
		Premium: {
			ExpiryDuration: PremiumExpiry,
			Badge:          "⭐",
			Label:          "Premium",
			UpgradeTargets: []Tier{Vip},
		},
		Vip: {
			ExpiryDuration: VipExpiry,
			Badge:          "👑",
			Label:          "VIP",
		},
	}
}

// NewTable builds and validates a policy table.
func NewTable(o Overrides) (*Table, error) {
	t := &Table{policies: defaultPolicies()}
	for tr, d := range map[Tier]time.Duration{Free: o.Free, Premium: o.Premium, Vip: o.Vip} {
		if d < 0 {
			return nil, fmt.Errorf("%w: %s expiry %s is negative", ErrInvalidPolicy, tr, d)
		}
		if d > 0 {
			t.policies[tr].ExpiryDuration = d
		}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustTable is NewTable for package initialisation; it panics on a bad table.
func MustTable(o Overrides) *Table {
	t, err := NewTable(o)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) validate() error {
	for i, p := range t.policies {
		tr := Tier(i)
		if p.ExpiryDuration <= 0 {
			return fmt.Errorf("%w: %s has no expiry duration", ErrInvalidPolicy, tr)
		}
		if p.Label == "" {
			return fmt.Errorf("%w: %s has no label", ErrInvalidPolicy, tr)
		}
		for _, target := range p.UpgradeTargets {
			if !target.Valid() || target.Precedence() <= tr.Precedence() {
				return fmt.Errorf("%w: %s cannot upgrade to %s", ErrInvalidPolicy, tr, target)
			}
		}
	}
	return nil
}

// policy resolves t, treating unknown values as Free.
func (t *Table) policy(tr Tier) Policy {
	if !tr.Valid() {
		tr = Free
	}
	return t.policies[tr]
}

func (t *Table) ExpiryDurationOf(tr Tier) time.Duration {
	return t.policy(tr).ExpiryDuration
}

// UpgradeTargetsOf returns the tiers tr can upgrade to, lowest first.
func (t *Table) UpgradeTargetsOf(tr Tier) []Tier {
	targets := t.policy(tr).UpgradeTargets
	out := make([]Tier, len(targets))
	copy(out, targets)
	return out
}

func (t *Table) BadgeOf(tr Tier) string {
	return t.policy(tr).Badge
}

func (t *Table) LabelOf(tr Tier) string {
	return t.policy(tr).Label
}

// Package-level lookups against Default.

func ExpiryDurationOf(tr Tier) time.Duration { return Default.ExpiryDurationOf(tr) }
func UpgradeTargetsOf(tr Tier) []Tier        { return Default.UpgradeTargetsOf(tr) }
func BadgeOf(tr Tier) string                 { return Default.BadgeOf(tr) }
func LabelOf(tr Tier) string                 { return Default.LabelOf(tr) }
