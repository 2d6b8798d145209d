// Package access decides which routes and features a visitor can use, based on
// whether they are signed in and on their subscription tier.
package access

import (
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

// Viewer is the visitor as seen by access checks. A nil *Viewer or an empty ID is anonymous.
type Viewer struct {
	ID   string
	Tier tier.Tier
}

// ViewerOf adapts a user record; nil stays anonymous.
func ViewerOf(u *models.User) *Viewer {
	if u == nil {
		return nil
	}
	return &Viewer{ID: u.ID, Tier: u.Tier}
}

// Authenticated reports whether v identifies a signed-in user.
func (v *Viewer) Authenticated() bool {
	return v != nil && v.ID != ""
}

// Features are capability flags derived from a viewer.
type Features struct {
	CanCreatePost     bool `json:"can_create_post"`
	CanPostAds        bool `json:"can_post_ads"`
	CanUpgrade        bool `json:"can_upgrade"`
	CanAccessMessages bool `json:"can_access_messages"`
	CanAccessProfile  bool `json:"can_access_profile"`
}

// Breadcrumb is one entry of the navigation trail.
type Breadcrumb struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Path    string `json:"path"`
	Current bool   `json:"current"`
}

// UpgradeOption is a tier the viewer may move to.
type UpgradeOption struct {
	Tier  tier.Tier `json:"tier"`
	Label string    `json:"label"`
	Badge string    `json:"badge,omitempty"`
}

// Resolver evaluates access against a fixed route table.
type Resolver struct {
	routes []RouteDefinition
	byID   map[string]int
	tiers  *tier.Table
}

// NewResolver takes ownership of routes; tiers may be nil for tier.Default.
func NewResolver(routes []RouteDefinition, tiers *tier.Table) *Resolver {
	if tiers == nil {
		tiers = tier.Default
	}
	byID := make(map[string]int, len(routes))
	for i, r := range routes {
		byID[r.ID] = i
	}
	return &Resolver{routes: routes, byID: byID, tiers: tiers}
}

// Routes returns a copy of the route table in declared order.
func (r *Resolver) Routes() []RouteDefinition {
	out := make([]RouteDefinition, len(r.routes))
	copy(out, r.routes)
	return out
}

// Route looks a route up by id.
func (r *Resolver) Route(id string) (RouteDefinition, bool) {
	i, ok := r.byID[id]
	if !ok {
		return RouteDefinition{}, false
	}
	return r.routes[i], true
}

// CanAccessRoute: protected routes need a signed-in viewer; tier-restricted routes need a
// viewer whose tier is listed.
func (r *Resolver) CanAccessRoute(route RouteDefinition, v *Viewer) bool {
	if route.Protected && !v.Authenticated() {
		return false
	}
	if len(route.RequiredTiers) > 0 {
		if !v.Authenticated() {
			return false
		}
		if route.excludes(v.Tier) {
			return false
		}
	}
	return true
}

// CanAccess is CanAccessRoute by id. Unknown routes are never accessible.
func (r *Resolver) CanAccess(routeID string, v *Viewer) bool {
	route, ok := r.Route(routeID)
	if !ok {
		return false
	}
	return r.CanAccessRoute(route, v)
}

// NavigationFor lists the navigation entries v can reach, in declared order.
func (r *Resolver) NavigationFor(v *Viewer) []RouteDefinition {
	out := make([]RouteDefinition, 0, len(r.routes))
	for _, route := range r.routes {
		if !route.ShowInNavigation {
			continue
		}
		if route.ID == AuthRouteID && v.Authenticated() {
			continue
		}
		if r.CanAccessRoute(route, v) {
			out = append(out, route)
		}
	}
	return out
}

func (r *Resolver) FeaturesFor(v *Viewer) Features {
	if !v.Authenticated() {
		return Features{}
	}
	t := v.Tier.OrFree()
	return Features{
		CanCreatePost:     true,
		CanPostAds:        t == tier.Premium || t == tier.Vip,
		CanUpgrade:        t == tier.Free || t == tier.Premium,
		CanAccessMessages: true,
		CanAccessProfile:  true,
	}
}

// RestrictedRoutesFor lists routes that restrict tiers and do not admit t.
func (r *Resolver) RestrictedRoutesFor(t tier.Tier) []RouteDefinition {
	out := make([]RouteDefinition, 0)
	for _, route := range r.routes {
		if route.excludes(t) {
			out = append(out, route)
		}
	}
	return out
}

// BreadcrumbsFor returns Home followed by current, or nothing when current is nil.
func (r *Resolver) BreadcrumbsFor(current *RouteDefinition) []Breadcrumb {
	if current == nil {
		return []Breadcrumb{}
	}
	home := Breadcrumb{ID: HomeRouteID, Label: "Home", Path: "/"}
	if h, ok := r.Route(HomeRouteID); ok {
		home.Label, home.Path = h.Label, h.Path
	}
	return []Breadcrumb{
		home,
		{ID: current.ID, Label: current.Label, Path: current.Path, Current: true},
	}
}

// UpgradePath lists the tiers v may upgrade to, lowest first.
func (r *Resolver) UpgradePath(v *Viewer) []UpgradeOption {
	if !v.Authenticated() {
		return []UpgradeOption{}
	}
	targets := r.tiers.UpgradeTargetsOf(v.Tier)
	out := make([]UpgradeOption, 0, len(targets))
	for _, t := range targets {
		out = append(out, UpgradeOption{Tier: t, Label: r.tiers.LabelOf(t), Badge: r.tiers.BadgeOf(t)})
	}
	return out
}
