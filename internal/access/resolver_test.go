package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	routes, err := DefaultRoutes()
	require.NoError(t, err)
	return NewResolver(routes, nil)
}

func ids(routes []RouteDefinition) []string {
	out := make([]string, 0, len(routes))
	for _, r := range routes {
		out = append(out, r.ID)
	}
	return out
}

func TestCanAccessRoute(t *testing.T) {
	r := newTestResolver(t)
	protected := RouteDefinition{ID: "x", Label: "X", Protected: true}
	vipOnly := RouteDefinition{ID: "y", Label: "Y", RequiredTiers: []tier.Tier{tier.Vip}}
	open := RouteDefinition{ID: "z", Label: "Z"}

	assert.False(t, r.CanAccessRoute(protected, nil))
	assert.False(t, r.CanAccessRoute(protected, &Viewer{Tier: tier.Vip}), "tier without id is anonymous")
	for _, tr := range tier.All() {
		assert.True(t, r.CanAccessRoute(protected, &Viewer{ID: "u1", Tier: tr}), tr.String())
	}

	assert.False(t, r.CanAccessRoute(vipOnly, &Viewer{ID: "u1", Tier: tier.Premium}))
	assert.True(t, r.CanAccessRoute(vipOnly, &Viewer{ID: "u1", Tier: tier.Vip}))
	assert.False(t, r.CanAccessRoute(vipOnly, nil))

	assert.True(t, r.CanAccessRoute(open, nil))
	assert.True(t, r.CanAccessRoute(open, &Viewer{ID: "u1"}))
}

func TestCanAccess_UnknownRoute(t *testing.T) {
	r := newTestResolver(t)
	assert.False(t, r.CanAccess("nope", &Viewer{ID: "u1", Tier: tier.Vip}))
	assert.True(t, r.CanAccess("home", nil))
}

func TestNavigationFor(t *testing.T) {
	r := newTestResolver(t)

	assert.Equal(t, []string{"home", "auth"}, ids(r.NavigationFor(nil)))

	assert.Equal(t,
		[]string{"home", "create", "my-posts", "messages", "subscription", "profile"},
		ids(r.NavigationFor(&Viewer{ID: "u1", Tier: tier.Free})))

	assert.Equal(t,
		[]string{"home", "create", "my-posts", "messages", "post-ad", "subscription", "profile"},
		ids(r.NavigationFor(&Viewer{ID: "u1", Tier: tier.Premium})))

	assert.Equal(t,
		[]string{"home", "create", "my-posts", "messages", "post-ad", "vip-lounge", "profile"},
		ids(r.NavigationFor(&Viewer{ID: "u1", Tier: tier.Vip})))
}

func TestNavigationFor_NeverShowsAuthWhenSignedIn(t *testing.T) {
	r := newTestResolver(t)
	for _, tr := range tier.All() {
		assert.NotContains(t, ids(r.NavigationFor(&Viewer{ID: "u1", Tier: tr})), AuthRouteID)
	}
	assert.Contains(t, ids(r.NavigationFor(&Viewer{})), AuthRouteID)
}

func TestFeaturesFor(t *testing.T) {
	r := newTestResolver(t)

	assert.Equal(t, Features{}, r.FeaturesFor(nil))

	free := r.FeaturesFor(&Viewer{ID: "u1", Tier: tier.Free})
	assert.Equal(t, Features{CanCreatePost: true, CanUpgrade: true, CanAccessMessages: true, CanAccessProfile: true}, free)

	premium := r.FeaturesFor(&Viewer{ID: "u1", Tier: tier.Premium})
	assert.True(t, premium.CanPostAds)
	assert.True(t, premium.CanUpgrade)

	vip := r.FeaturesFor(&Viewer{ID: "u1", Tier: tier.Vip})
	assert.True(t, vip.CanPostAds)
	assert.False(t, vip.CanUpgrade)
}

func TestRestrictedRoutesFor(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, []string{"post-ad", "vip-lounge"}, ids(r.RestrictedRoutesFor(tier.Free)))
	assert.Equal(t, []string{"vip-lounge"}, ids(r.RestrictedRoutesFor(tier.Premium)))
	assert.Equal(t, []string{"subscription"}, ids(r.RestrictedRoutesFor(tier.Vip)))
	assert.Equal(t, []string{"post-ad", "vip-lounge"}, ids(r.RestrictedRoutesFor(tier.Tier(42))))
}

func TestUnknownTierActsAsFree(t *testing.T) {
	r := newTestResolver(t)
	odd := &Viewer{ID: "u1", Tier: tier.Tier(42)}
	free := &Viewer{ID: "u1", Tier: tier.Free}

	assert.Equal(t, r.FeaturesFor(free), r.FeaturesFor(odd))
	assert.True(t, r.CanAccess("subscription", odd))
	assert.False(t, r.CanAccess("post-ad", odd))
	assert.Equal(t, ids(r.NavigationFor(free)), ids(r.NavigationFor(odd)))
}

func TestBreadcrumbsFor(t *testing.T) {
	r := newTestResolver(t)
	assert.Empty(t, r.BreadcrumbsFor(nil))

	create, ok := r.Route("create")
	require.True(t, ok)
	crumbs := r.BreadcrumbsFor(&create)
	require.Len(t, crumbs, 2)
	assert.Equal(t, "Home", crumbs[0].Label)
	assert.False(t, crumbs[0].Current)
	assert.Equal(t, "Create Post", crumbs[1].Label)
	assert.True(t, crumbs[1].Current)
}

func TestUpgradePath(t *testing.T) {
	r := newTestResolver(t)
	assert.Empty(t, r.UpgradePath(nil))
	assert.Empty(t, r.UpgradePath(&Viewer{ID: "u1", Tier: tier.Vip}))

	path := r.UpgradePath(&Viewer{ID: "u1", Tier: tier.Free})
	require.Len(t, path, 2)
	assert.Equal(t, tier.Premium, path[0].Tier)
	assert.Equal(t, tier.Vip, path[1].Tier)
	assert.Equal(t, "VIP", path[1].Label)
}

func TestParseRoutes_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":        ``,
		"no id":        `- label: X`,
		"no label":     `- id: x`,
		"duplicate":    "- id: x\n  label: X\n- id: x\n  label: Y",
		"unknown tier": "- id: x\n  label: X\n  required_tiers: [gold]",
		"not a list":   `id: x`,
	}
	for name, doc := range cases {
		_, err := ParseRoutes([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidRoutes, name)
	}
}

func TestMustRoutes_Panics(t *testing.T) {
	assert.Panics(t, func() { MustRoutes(ParseRoutes([]byte(`- id: x`))) })
}
