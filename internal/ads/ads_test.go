package ads

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/access"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/store"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

func TestDefaultAds(t *testing.T) {
	list, err := DefaultAds()
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for _, ad := range list {
		assert.Len(t, ad.ID, idLength)
		assert.NotEmpty(t, ad.Title)
		assert.NotEmpty(t, ad.Link)
	}
}

func TestParseAds_Invalid(t *testing.T) {
	_, err := ParseAds([]byte("title: [unterminated"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	records := store.NewRecords(store.NewMemory())

	first, err := Seed(ctx, records)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := Seed(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, first, second, "existing list is not replaced")

	custom := []models.Ad{{ID: "x", Title: "Custom"}}
	require.NoError(t, records.SaveAds(ctx, custom))
	got, err := Seed(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}

func TestPick(t *testing.T) {
	list := []models.Ad{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	p := NewProvider(list, rand.New(rand.NewPCG(1, 2)))
	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		ad, ok := p.Pick(nil)
		require.True(t, ok)
		seen[ad.ID]++
	}
	assert.Len(t, seen, 3, "every ad is reachable")

	// Same seed, same sequence.
	p1 := NewProvider(list, rand.New(rand.NewPCG(7, 7)))
	p2 := NewProvider(list, rand.New(rand.NewPCG(7, 7)))
	viewer := &access.Viewer{ID: "u1", Tier: tier.Premium}
	for i := 0; i < 10; i++ {
		a1, _ := p1.Pick(viewer)
		a2, _ := p2.Pick(viewer)
		assert.Equal(t, a1, a2)
	}
}

func TestPick_Suppressed(t *testing.T) {
	p := NewProvider([]models.Ad{{ID: "a"}}, nil)

	_, ok := p.Pick(&access.Viewer{ID: "u1", Tier: tier.Vip})
	assert.False(t, ok)

	_, ok = p.Pick(&access.Viewer{ID: "u1", Tier: tier.Free})
	assert.True(t, ok)

	_, ok = NewProvider(nil, nil).Pick(nil)
	assert.False(t, ok)
}
