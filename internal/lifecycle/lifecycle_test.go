package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func post(id string, tr tier.Tier, age time.Duration, now time.Time) models.Post {
	return models.Post{ID: id, OwnerID: "u-" + id, Category: "cars", Tier: tr, CreatedAt: now.Add(-age)}
}

func TestIsExpired_Boundary(t *testing.T) {
	for _, tr := range tier.All() {
		p := models.Post{ID: "p", Tier: tr, CreatedAt: epoch}
		window := tier.ExpiryDurationOf(tr)

		assert.False(t, IsExpired(p, epoch), "%s: fresh post", tr)
		assert.False(t, IsExpired(p, epoch.Add(window)), "%s: age == window is still active", tr)
		assert.True(t, IsExpired(p, epoch.Add(window+time.Millisecond)), "%s: one ms past window", tr)
	}
}

func TestIsExpired_Monotonic(t *testing.T) {
	p := models.Post{ID: "p", Tier: tier.Premium, CreatedAt: epoch}
	expired := false
	for step := time.Duration(0); step <= 5*24*time.Hour; step += 30 * time.Minute {
		now := epoch.Add(step)
		got := IsExpired(p, now)
		if expired {
			require.True(t, got, "post reverted to active at +%s", step)
		}
		expired = got
	}
	assert.True(t, expired)
}

func TestIsExpired_UnknownTierFallsBackToFree(t *testing.T) {
	p := models.Post{ID: "p", Tier: tier.Tier(42), CreatedAt: epoch}

	assert.False(t, IsExpired(p, epoch.Add(24*time.Hour)))
	assert.True(t, IsExpired(p, epoch.Add(24*time.Hour+time.Millisecond)))

	display, ok := RemainingDisplay(p, epoch.Add(23*time.Hour))
	require.True(t, ok)
	assert.Equal(t, "1h", display)
}

func TestRemainingDisplay(t *testing.T) {
	cases := []struct {
		name string
		tier tier.Tier
		age  time.Duration
		want string
		ok   bool
	}{
		{"free one hour left", tier.Free, 23 * time.Hour, "1h", true},
		{"free just created", tier.Free, 0, "1d", true},
		{"free 30 minutes left", tier.Free, 23*time.Hour + 30*time.Minute, "0h", true},
		{"vip 166h left", tier.Vip, 2 * time.Hour, "6d", true},
		{"premium 30h left", tier.Premium, 42 * time.Hour, "1d", true},
		{"premium 23h left", tier.Premium, 49 * time.Hour, "23h", true},
		{"free at boundary", tier.Free, 24 * time.Hour, "", false},
		{"free past boundary", tier.Free, 25 * time.Hour, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := models.Post{ID: "p", Tier: c.tier, CreatedAt: epoch}
			got, ok := RemainingDisplay(p, epoch.Add(c.age))
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestRemaining_ClampsAtZero(t *testing.T) {
	p := models.Post{ID: "p", Tier: tier.Free, CreatedAt: epoch}
	assert.Equal(t, time.Hour, Default.Remaining(p, epoch.Add(23*time.Hour)))
	assert.Equal(t, time.Duration(0), Default.Remaining(p, epoch.Add(48*time.Hour)))
	assert.Equal(t, epoch.Add(24*time.Hour), Default.ExpiresAt(p))
}

func TestFilterActive(t *testing.T) {
	now := epoch
	posts := []models.Post{
		post("a", tier.Free, 2*time.Hour, now),
		post("b", tier.Free, 30*time.Hour, now),
		post("c", tier.Premium, 30*time.Hour, now),
		post("d", tier.Vip, 8*24*time.Hour, now),
		post("e", tier.Vip, 6*24*time.Hour, now),
	}
	input := append([]models.Post(nil), posts...)

	active := FilterActive(posts, now)
	ids := make([]string, 0, len(active))
	for _, p := range active {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "c", "e"}, ids)
	assert.Equal(t, input, posts, "input must not be mutated")

	again := FilterActive(active, now)
	assert.Equal(t, active, again, "filtering twice is a no-op")
}

func TestFilterActive_Empty(t *testing.T) {
	got := FilterActive(nil, epoch)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterByOwnerAndCategory(t *testing.T) {
	posts := []models.Post{
		{ID: "1", OwnerID: "alice", Category: "cars"},
		{ID: "2", OwnerID: "bob", Category: "flats"},
		{ID: "3", OwnerID: "alice", Category: "flats"},
	}

	mine := FilterByOwner(posts, "alice")
	require.Len(t, mine, 2)
	assert.Equal(t, "1", mine[0].ID)
	assert.Equal(t, "3", mine[1].ID)

	flats := FilterByCategory(posts, "flats")
	require.Len(t, flats, 2)
	assert.Equal(t, "2", flats[0].ID)
	assert.Equal(t, "3", flats[1].ID)

	assert.Empty(t, FilterByOwner(posts, "carol"))
}

func TestEngine_CustomTable(t *testing.T) {
	table, err := tier.NewTable(tier.Overrides{Free: time.Hour})
	require.NoError(t, err)
	e := New(table)

	p := models.Post{ID: "p", Tier: tier.Free, CreatedAt: epoch}
	assert.True(t, e.IsExpired(p, epoch.Add(61*time.Minute)))
	assert.False(t, Default.IsExpired(p, epoch.Add(61*time.Minute)))
}
