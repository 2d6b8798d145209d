package access

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

// AuthRouteID is the login/registration route, hidden from signed-in users.
const AuthRouteID = "auth"

// HomeRouteID anchors breadcrumbs.
const HomeRouteID = "home"

var ErrInvalidRoutes = errors.New("invalid route table")

//go:embed routes.yaml
var defaultRoutesYAML []byte

// RouteDefinition is one navigable destination.
// RequiredTiers nil or empty means any visitor that passes Protected.
type RouteDefinition struct {
	ID               string      `json:"id"`
	Label            string      `json:"label"`
	Path             string      `json:"path"`
	Protected        bool        `json:"protected"`
	RequiredTiers    []tier.Tier `json:"required_tiers,omitempty"`
	ShowInNavigation bool        `json:"show_in_navigation"`
	Description      string      `json:"description,omitempty"`
}

type routeYAML struct {
	ID               string   `yaml:"id"`
	Label            string   `yaml:"label"`
	Path             string   `yaml:"path"`
	Protected        bool     `yaml:"protected"`
	RequiredTiers    []string `yaml:"required_tiers"`
	ShowInNavigation bool     `yaml:"show_in_navigation"`
	Description      string   `yaml:"description"`
}

// ParseRoutes decodes and validates a YAML route table.
func ParseRoutes(data []byte) ([]RouteDefinition, error) {
	var raw []routeYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoutes, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no routes", ErrInvalidRoutes)
	}

	seen := make(map[string]bool, len(raw))
	routes := make([]RouteDefinition, 0, len(raw))
	for i, r := range raw {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: route #%d has no id", ErrInvalidRoutes, i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: duplicate route id %q", ErrInvalidRoutes, r.ID)
		}
		seen[r.ID] = true
		if r.Label == "" {
			return nil, fmt.Errorf("%w: route %q has no label", ErrInvalidRoutes, r.ID)
		}

		def := RouteDefinition{
			ID:               r.ID,
			Label:            r.Label,
			Path:             r.Path,
			Protected:        r.Protected,
			ShowInNavigation: r.ShowInNavigation,
			Description:      r.Description,
		}
		for _, name := range r.RequiredTiers {
			t, err := tier.Parse(name)
			if err != nil {
				return nil, fmt.Errorf("%w: route %q: %v", ErrInvalidRoutes, r.ID, err)
			}
			def.RequiredTiers = append(def.RequiredTiers, t)
		}
		routes = append(routes, def)
	}
	return routes, nil
}

// DefaultRoutes returns the built-in route table.
func DefaultRoutes() ([]RouteDefinition, error) {
	return ParseRoutes(defaultRoutesYAML)
}

// MustRoutes aborts initialisation on a malformed table.
func MustRoutes(routes []RouteDefinition, err error) []RouteDefinition {
	if err != nil {
		panic(err)
	}
	return routes
}

// excludes reports whether the route restricts tiers and t is not among them.
func (r RouteDefinition) excludes(t tier.Tier) bool {
	if len(r.RequiredTiers) == 0 {
		return false
	}
	t = t.OrFree()
	for _, rt := range r.RequiredTiers {
		if rt == t {
			return false
		}
	}
	return true
}
