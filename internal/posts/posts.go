// Package posts creates and lists classifieds. Listings hide expired posts; nothing here
// deletes a post because it expired.
package posts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/lifecycle"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/metrics"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/store"
)

const (
	MaxTitleLen   = 256
	MaxContentLen = 2500
	idLength      = 12
)

var (
	ErrNotFound     = errors.New("post not found")
	ErrForbidden    = errors.New("post belongs to another user")
	ErrInvalidInput = errors.New("invalid post")
	ErrNoOwner      = errors.New("post requires a signed-in owner")
)

var log = logger.StdLogger().With("posts")

// Input is what a user submits.
type Input struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required,max=64"`
	City     string `json:"city" validate:"max=64"`
}

// View is a post decorated for display.
type View struct {
	models.Post
	Remaining string    `json:"remaining,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
}

type Service struct {
	records  *store.Records
	engine   *lifecycle.Engine
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Service)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(records *store.Records, engine *lifecycle.Engine, opts ...Option) *Service {
	if engine == nil {
		engine = lifecycle.Default
	}
	s := &Service{records: records, engine: engine, validate: validator.New(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// normalizeContent trims surrounding whitespace, drops leading blank lines and
// unifies line endings.
func normalizeContent(raw string) string {
	content := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// NormalizeCategory turns a free-form category or city into its slug.
func NormalizeCategory(s string) string {
	return slug.Make(strings.TrimSpace(s))
}

func (s *Service) validateInput(in Input) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	// Валидация по количеству символов Unicode, а не байтов
	if n := utf8.RuneCountInString(in.Title); n == 0 || n > MaxTitleLen {
		return fmt.Errorf("%w: title must be between 1 and %d characters", ErrInvalidInput, MaxTitleLen)
	}
	if n := utf8.RuneCountInString(in.Content); n == 0 || n > MaxContentLen {
		return fmt.Errorf("%w: content must be between 1 and %d characters", ErrInvalidInput, MaxContentLen)
	}
	if NormalizeCategory(in.Category) == "" {
		return fmt.Errorf("%w: category has no usable characters", ErrInvalidInput)
	}
	return nil
}

// Create stores a new post owned by owner. The post takes the owner's current tier,
// which then stays fixed for the post's lifetime.
func (s *Service) Create(ctx context.Context, owner *models.User, in Input) (*models.Post, error) {
	if owner == nil || owner.ID == "" {
		return nil, ErrNoOwner
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = normalizeContent(in.Content)
	in.City = strings.TrimSpace(in.City)
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	id, err := gonanoid.New(idLength)
	if err != nil {
		return nil, fmt.Errorf("posts: generate id: %w", err)
	}
	post := models.Post{
		ID:        id,
		OwnerID:   owner.ID,
		Title:     in.Title,
		Content:   in.Content,
		Category:  NormalizeCategory(in.Category),
		City:      NormalizeCategory(in.City),
		Tier:      owner.Tier,
		CreatedAt: s.now().UTC(),
	}

	err = s.records.UpdatePosts(ctx, func(ps []models.Post) ([]models.Post, error) {
		return append(ps, post), nil
	})
	if err != nil {
		return nil, fmt.Errorf("posts: save: %w", err)
	}

	metrics.PostCreated(post.Tier.String())
	log.Infof(ctx, "User %s created post %s (tier %s, category %s)", owner.ID, post.ID, post.Tier, post.Category)
	return &post, nil
}

func (s *Service) view(p models.Post, now time.Time) View {
	remaining, _ := s.engine.RemainingDisplay(p, now)
	return View{
		Post:      p,
		Remaining: remaining,
		ExpiresAt: s.engine.ExpiresAt(p),
		Expired:   s.engine.IsExpired(p, now),
	}
}

func (s *Service) views(ps []models.Post, now time.Time) []View {
	out := make([]View, 0, len(ps))
	for _, p := range ps {
		out = append(out, s.view(p, now))
	}
	return out
}

// Active lists every non-expired post, newest first.
func (s *Service) Active(ctx context.Context) ([]View, error) {
	all, err := s.records.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("posts: load: %w", err)
	}
	now := s.now()
	active := s.engine.FilterActive(all, now)
	metrics.ExpiredHidden(len(all) - len(active))
	return s.views(newestFirst(active), now), nil
}

// ByCategory lists non-expired posts in category (slug or free-form).
func (s *Service) ByCategory(ctx context.Context, category string) ([]View, error) {
	all, err := s.records.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("posts: load: %w", err)
	}
	now := s.now()
	matching := lifecycle.FilterByCategory(all, NormalizeCategory(category))
	return s.views(newestFirst(s.engine.FilterActive(matching, now)), now), nil
}

// ByOwner lists ownerID's posts; expired ones are included when includeExpired is set.
func (s *Service) ByOwner(ctx context.Context, ownerID string, includeExpired bool) ([]View, error) {
	all, err := s.records.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("posts: load: %w", err)
	}
	now := s.now()
	mine := lifecycle.FilterByOwner(all, ownerID)
	if !includeExpired {
		mine = s.engine.FilterActive(mine, now)
	}
	return s.views(newestFirst(mine), now), nil
}

// All lists every stored post, expired or not, newest first.
func (s *Service) All(ctx context.Context) ([]View, error) {
	all, err := s.records.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("posts: load: %w", err)
	}
	return s.views(newestFirst(all), s.now()), nil
}

// Get returns one post. Expired posts are reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	all, err := s.records.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("posts: load: %w", err)
	}
	now := s.now()
	for _, p := range all {
		if p.ID == id {
			if s.engine.IsExpired(p, now) {
				return nil, ErrNotFound
			}
			v := s.view(p, now)
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes a post at its owner's request.
func (s *Service) Delete(ctx context.Context, owner *models.User, id string) error {
	if owner == nil || owner.ID == "" {
		return ErrNoOwner
	}
	err := s.records.UpdatePosts(ctx, func(ps []models.Post) ([]models.Post, error) {
		for i, p := range ps {
			if p.ID != id {
				continue
			}
			if p.OwnerID != owner.ID {
				return nil, ErrForbidden
			}
			return append(ps[:i:i], ps[i+1:]...), nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		if errors.Is(err, ErrForbidden) || errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("posts: delete: %w", err)
	}
	log.Infof(ctx, "User %s deleted post %s", owner.ID, id)
	return nil
}

// newestFirst returns a copy sorted by creation time, newest first; ties keep input order.
func newestFirst(ps []models.Post) []models.Post {
	out := make([]models.Post, len(ps))
	copy(out, ps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
