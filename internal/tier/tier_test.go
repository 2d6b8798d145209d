package tier

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Tier
		ok   bool
	}{
		{"free", Free, true},
		{"Premium", Premium, true},
		{" vip ", Vip, true},
		{"gold", Free, false},
		{"", Free, false},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if c.ok {
			require.NoError(t, err, c.in)
		} else {
			require.ErrorIs(t, err, ErrUnknownTier, c.in)
		}
		assert.Equal(t, c.want, got, c.in)
		assert.Equal(t, c.want, Normalize(c.in), c.in)
	}
}

func TestUpgradeTargets(t *testing.T) {
	assert.Equal(t, []Tier{Premium, Vip}, UpgradeTargetsOf(Free))
	assert.Equal(t, []Tier{Vip}, UpgradeTargetsOf(Premium))
	assert.Empty(t, UpgradeTargetsOf(Vip))

	targets := UpgradeTargetsOf(Free)
	targets[0] = Vip
	assert.Equal(t, []Tier{Premium, Vip}, UpgradeTargetsOf(Free), "callers get a copy")
}

func TestUpgradeTargetsAreStrictlyHigher(t *testing.T) {
	for _, tr := range All() {
		for _, target := range UpgradeTargetsOf(tr) {
			assert.Greater(t, target.Precedence(), tr.Precedence(), "%s -> %s", tr, target)
		}
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, 24*time.Hour, ExpiryDurationOf(Free))
	assert.Equal(t, 72*time.Hour, ExpiryDurationOf(Premium))
	assert.Equal(t, 7*24*time.Hour, ExpiryDurationOf(Vip))

	assert.Empty(t, BadgeOf(Free))
	assert.NotEmpty(t, BadgeOf(Premium))
	assert.Equal(t, "VIP", LabelOf(Vip))

	// out-of-range values resolve as Free
	assert.Equal(t, ExpiryDurationOf(Free), ExpiryDurationOf(Tier(9)))
	assert.Equal(t, LabelOf(Free), LabelOf(Tier(9)))
}

func TestNewTable_Overrides(t *testing.T) {
	table, err := NewTable(Overrides{Premium: 48 * time.Hour})
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, table.ExpiryDurationOf(Premium))
	assert.Equal(t, FreeExpiry, table.ExpiryDurationOf(Free))

	_, err = NewTable(Overrides{Vip: -time.Second})
	assert.True(t, errors.Is(err, ErrInvalidPolicy))
}

func TestTable_ValidateRejectsDowngradeTarget(t *testing.T) {
	table := &Table{policies: defaultPolicies()}
	table.policies[Premium].UpgradeTargets = []Tier{Free}
	assert.ErrorIs(t, table.validate(), ErrInvalidPolicy)

	table = &Table{policies: defaultPolicies()}
	table.policies[Vip].ExpiryDuration = 0
	assert.ErrorIs(t, table.validate(), ErrInvalidPolicy)
}

func TestJSON(t *testing.T) {
	type rec struct {
		Tier Tier `json:"tier"`
	}
	b, err := json.Marshal(rec{Tier: Premium})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"premium"}`, string(b))

	var r rec
	require.NoError(t, json.Unmarshal([]byte(`{"tier":"platinum"}`), &r))
	assert.Equal(t, Free, r.Tier)

	require.NoError(t, json.Unmarshal([]byte(`{"tier":"vip"}`), &r))
	assert.Equal(t, Vip, r.Tier)
}
