// Package tier describes subscription tiers and the policy attached to each of them:
// how long a post created under the tier stays visible, how the tier is displayed and
// which tiers a user may upgrade to.
package tier

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is a subscription level. The zero value is Free.
type Tier uint8

const (
	Free Tier = iota
	Premium
	Vip

	count = iota
)

var tierNames = [count]string{
	"free",
	"premium",
	"vip",
}

var (
	ErrUnknownTier   = errors.New("unknown tier")
	ErrInvalidPolicy = errors.New("invalid tier policy")
)

// All returns every tier in ascending precedence.
func All() []Tier {
	return []Tier{Free, Premium, Vip}
}

// Valid reports whether t is one of the declared variants.
func (t Tier) Valid() bool {
	return t < count
}

// OrFree returns t, or Free when t is not a declared variant.
func (t Tier) OrFree() Tier {
	if !t.Valid() {
		return Free
	}
	return t
}

// Precedence orders tiers; a higher value is a higher tier.
func (t Tier) Precedence() int {
	return int(t)
}

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tier(%d)", uint8(t))
	}
	return tierNames[t]
}

// Parse converts a wire name into a Tier.
func Parse(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return Free, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Normalize parses s and falls back to Free for anything unrecognised.
// Partially migrated records may carry stale or empty tier names.
func Normalize(s string) Tier {
	t, err := Parse(s)
	if err != nil {
		return Free
	}
	return t
}

func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, uint8(t))
	}
	return []byte(tierNames[t]), nil
}

// UnmarshalText never fails: unknown names decode as Free.
func (t *Tier) UnmarshalText(b []byte) error {
	*t = Normalize(string(b))
	return nil
}
