// Package ads serves sponsored banners picked at random from a static list.
package ads

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/yaml.v3"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/access"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/store"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

const idLength = 8

//go:embed ads.yaml
var defaultAdsYAML []byte

var log = logger.StdLogger().With("ads")

// ParseAds decodes a YAML ad list. Ads without an id get a generated one.
func ParseAds(data []byte) ([]models.Ad, error) {
	var list []models.Ad
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("ads: parse: %w", err)
	}
	for i := range list {
		if list[i].ID != "" {
			continue
		}
		id, err := gonanoid.New(idLength)
		if err != nil {
			return nil, fmt.Errorf("ads: generate id: %w", err)
		}
		list[i].ID = id
	}
	return list, nil
}

// DefaultAds returns the embedded banner list.
func DefaultAds() ([]models.Ad, error) {
	return ParseAds(defaultAdsYAML)
}

// Seed writes the default list under the ads key unless one is already stored,
// and returns whatever list is in effect afterwards.
func Seed(ctx context.Context, records *store.Records) ([]models.Ad, error) {
	stored, err := records.Ads(ctx)
	if err != nil {
		return nil, fmt.Errorf("ads: load: %w", err)
	}
	if len(stored) > 0 {
		return stored, nil
	}
	list, err := DefaultAds()
	if err != nil {
		return nil, err
	}
	if err := records.SaveAds(ctx, list); err != nil {
		return nil, fmt.Errorf("ads: seed: %w", err)
	}
	log.Infof(ctx, "Seeded %d ads", len(list))
	return list, nil
}

// Provider picks banners. The random source is injected so selection can be replayed.
type Provider struct {
	mu  sync.Mutex
	ads []models.Ad
	rng *rand.Rand
}

// NewProvider copies list; rng may be nil for a randomly seeded source.
func NewProvider(list []models.Ad, rng *rand.Rand) *Provider {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	ads := make([]models.Ad, len(list))
	copy(ads, list)
	return &Provider{ads: ads, rng: rng}
}

// Pick returns a uniformly chosen ad. VIP viewers see no ads; ok is false then and
// when the list is empty.
func (p *Provider) Pick(v *access.Viewer) (models.Ad, bool) {
	if v.Authenticated() && v.Tier == tier.Vip {
		return models.Ad{}, false
	}
	if len(p.ads) == 0 {
		return models.Ad{}, false
	}
	p.mu.Lock()
	i := p.rng.IntN(len(p.ads))
	p.mu.Unlock()
	return p.ads[i], true
}

// All returns a copy of the configured list.
func (p *Provider) All() []models.Ad {
	out := make([]models.Ad, len(p.ads))
	copy(out, p.ads)
	return out
}
