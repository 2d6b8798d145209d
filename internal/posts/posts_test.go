package posts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/store"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setup(t *testing.T) (*Service, *store.Records, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	records := store.NewRecords(store.NewMemory())
	return NewService(records, nil, WithClock(c.now)), records, c
}

func input(title, category string) Input {
	return Input{Title: title, Content: "  \n\n  Bike in good condition\r\n  call me  ", Category: category, City: "New York"}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	s, records, c := setup(t)
	owner := &models.User{ID: "u1", Tier: tier.Premium}

	p, err := s.Create(ctx, owner, input("Bike", "Sports Gear"))
	require.NoError(t, err)
	assert.Len(t, p.ID, idLength)
	assert.Equal(t, "u1", p.OwnerID)
	assert.Equal(t, tier.Premium, p.Tier)
	assert.Equal(t, "sports-gear", p.Category)
	assert.Equal(t, "new-york", p.City)
	assert.Equal(t, "Bike in good condition\ncall me", p.Content)
	assert.True(t, c.t.Equal(p.CreatedAt))

	stored, err := records.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, p.ID, stored[0].ID)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	s, _, _ := setup(t)
	owner := &models.User{ID: "u1"}

	_, err := s.Create(ctx, nil, input("Bike", "sports"))
	assert.ErrorIs(t, err, ErrNoOwner)

	cases := map[string]Input{
		"empty title":    {Title: "  ", Content: "x", Category: "cars"},
		"empty content":  {Title: "t", Content: "\n\n", Category: "cars"},
		"no category":    {Title: "t", Content: "x"},
		"symbol only":    {Title: "t", Content: "x", Category: "!!!"},
		"title too long": {Title: strings.Repeat("я", MaxTitleLen+1), Content: "x", Category: "cars"},
	}
	for name, in := range cases {
		_, err := s.Create(ctx, owner, in)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}

	// Length is counted in characters, not bytes.
	_, err = s.Create(ctx, owner, Input{Title: strings.Repeat("я", MaxTitleLen), Content: "x", Category: "cars"})
	assert.NoError(t, err)
}

func TestTierSnapshotSurvivesUpgrade(t *testing.T) {
	ctx := context.Background()
	s, _, c := setup(t)
	owner := &models.User{ID: "u1", Tier: tier.Free}

	p, err := s.Create(ctx, owner, input("Sofa", "furniture"))
	require.NoError(t, err)

	owner.Tier = tier.Vip
	c.t = c.t.Add(25 * time.Hour)

	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound, "post keeps its free-tier window after the owner upgrades")
}

func TestActiveHidesExpired(t *testing.T) {
	ctx := context.Background()
	s, _, c := setup(t)

	free, err := s.Create(ctx, &models.User{ID: "u1", Tier: tier.Free}, input("Free one", "cars"))
	require.NoError(t, err)
	c.t = c.t.Add(time.Hour)
	vip, err := s.Create(ctx, &models.User{ID: "u2", Tier: tier.Vip}, input("VIP one", "cars"))
	require.NoError(t, err)

	active, err := s.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, vip.ID, active[0].ID, "newest first")
	assert.Equal(t, "7d", active[0].Remaining)
	assert.Equal(t, "23h", active[1].Remaining)

	c.t = c.t.Add(24 * time.Hour)
	active, err = s.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, vip.ID, active[0].ID)

	mine, err := s.ByOwner(ctx, "u1", false)
	require.NoError(t, err)
	assert.Empty(t, mine)

	mine, err = s.ByOwner(ctx, "u1", true)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, free.ID, mine[0].ID)
	assert.True(t, mine[0].Expired)
	assert.Empty(t, mine[0].Remaining)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "expiry never deletes")
}

func TestByCategory(t *testing.T) {
	ctx := context.Background()
	s, _, _ := setup(t)
	owner := &models.User{ID: "u1", Tier: tier.Free}

	_, err := s.Create(ctx, owner, input("Car", "Used Cars"))
	require.NoError(t, err)
	_, err = s.Create(ctx, owner, input("Flat", "flats"))
	require.NoError(t, err)

	got, err := s.ByCategory(ctx, "used cars")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Car", got[0].Title)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, _, _ := setup(t)
	alice := &models.User{ID: "alice"}
	bob := &models.User{ID: "bob"}

	p, err := s.Create(ctx, alice, input("Lamp", "home"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, bob, p.ID), ErrForbidden)
	assert.ErrorIs(t, s.Delete(ctx, alice, "missing"), ErrNotFound)
	require.NoError(t, s.Delete(ctx, alice, p.ID))

	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
