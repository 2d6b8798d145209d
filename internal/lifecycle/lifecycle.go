// Package lifecycle computes post expiry. Expiry is never stored: a post is expired when
// the time elapsed since creation exceeds the window of the tier it was created under.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

// Engine evaluates posts against a tier policy table.
type Engine struct {
	tiers *tier.Table
}

// Default uses tier.Default.
var Default = New(tier.Default)

// New returns an Engine over table; a nil table means tier.Default.
func New(table *tier.Table) *Engine {
	if table == nil {
		table = tier.Default
	}
	return &Engine{tiers: table}
}

// ExpiresAt is the last instant at which p is still active.
func (e *Engine) ExpiresAt(p models.Post) time.Time {
	return p.CreatedAt.Add(e.tiers.ExpiryDurationOf(p.Tier))
}

// IsExpired reports whether p's age at now is strictly greater than its tier window.
func (e *Engine) IsExpired(p models.Post, now time.Time) bool {
	return now.Sub(p.CreatedAt) > e.tiers.ExpiryDurationOf(p.Tier)
}

// Remaining is the time left before p expires; never negative.
func (e *Engine) Remaining(p models.Post, now time.Time) time.Duration {
	left := e.tiers.ExpiryDurationOf(p.Tier) - now.Sub(p.CreatedAt)
	if left < 0 {
		return 0
	}
	return left
}

// RemainingDisplay renders the time left as "Nd" or "Nh".
// Both branches derive from whole hours of the total remaining time, so 30h left shows
// as "1d". ok is false once nothing remains.
func (e *Engine) RemainingDisplay(p models.Post, now time.Time) (display string, ok bool) {
	left := e.tiers.ExpiryDurationOf(p.Tier) - now.Sub(p.CreatedAt)
	if left <= 0 {
		return "", false
	}
	hours := int64(left / time.Hour)
	if days := hours / 24; days >= 1 {
		return fmt.Sprintf("%dd", days), true
	}
	return fmt.Sprintf("%dh", hours), true
}

// FilterActive keeps posts that are not expired at now, in input order.
func (e *Engine) FilterActive(posts []models.Post, now time.Time) []models.Post {
	return filter(posts, func(p models.Post) bool { return !e.IsExpired(p, now) })
}

// FilterByOwner keeps posts owned by ownerID, in input order.
func FilterByOwner(posts []models.Post, ownerID string) []models.Post {
	return filter(posts, func(p models.Post) bool { return p.OwnerID == ownerID })
}

// FilterByCategory keeps posts in category, in input order.
func FilterByCategory(posts []models.Post, category string) []models.Post {
	return filter(posts, func(p models.Post) bool { return p.Category == category })
}

func filter(posts []models.Post, keep func(models.Post) bool) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func IsExpired(p models.Post, now time.Time) bool { return Default.IsExpired(p, now) }

func RemainingDisplay(p models.Post, now time.Time) (string, bool) {
	return Default.RemainingDisplay(p, now)
}

func FilterActive(posts []models.Post, now time.Time) []models.Post {
	return Default.FilterActive(posts, now)
}
