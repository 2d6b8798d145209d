package store

import (
	"context"
	"sync"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
)

// Records is a typed view over a Store. Missing collections load as empty slices and a
// missing current user loads as nil. Update* calls are serialised so concurrent
// read-modify-write cycles do not lose writes.
type Records struct {
	store Store
	mu    sync.Mutex
}

func NewRecords(s Store) *Records {
	return &Records{store: s}
}

// Store returns the underlying backend.
func (r *Records) Store() Store {
	return r.store
}

func loadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	var items []T
	if _, err := s.Load(ctx, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func update[T any](ctx context.Context, r *Records, key string, fn func([]T) ([]T, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := loadList[T](ctx, r.store, key)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}
	return r.store.Save(ctx, key, next)
}

func (r *Records) Posts(ctx context.Context) ([]models.Post, error) {
	return loadList[models.Post](ctx, r.store, KeyPosts)
}

func (r *Records) UpdatePosts(ctx context.Context, fn func([]models.Post) ([]models.Post, error)) error {
	return update(ctx, r, KeyPosts, fn)
}

func (r *Records) Users(ctx context.Context) ([]models.User, error) {
	return loadList[models.User](ctx, r.store, KeyUsers)
}

func (r *Records) UpdateUsers(ctx context.Context, fn func([]models.User) ([]models.User, error)) error {
	return update(ctx, r, KeyUsers, fn)
}

func (r *Records) Ads(ctx context.Context) ([]models.Ad, error) {
	return loadList[models.Ad](ctx, r.store, KeyAds)
}

func (r *Records) SaveAds(ctx context.Context, ads []models.Ad) error {
	return update(ctx, r, KeyAds, func([]models.Ad) ([]models.Ad, error) { return ads, nil })
}

func (r *Records) Subscriptions(ctx context.Context) ([]models.Subscription, error) {
	return loadList[models.Subscription](ctx, r.store, KeySubscriptions)
}

func (r *Records) UpdateSubscriptions(ctx context.Context, fn func([]models.Subscription) ([]models.Subscription, error)) error {
	return update(ctx, r, KeySubscriptions, fn)
}

func (r *Records) Sessions(ctx context.Context) ([]models.Session, error) {
	return loadList[models.Session](ctx, r.store, KeySessions)
}

func (r *Records) UpdateSessions(ctx context.Context, fn func([]models.Session) ([]models.Session, error)) error {
	return update(ctx, r, KeySessions, fn)
}

// CurrentUser returns the locally selected user, or nil when none is set.
func (r *Records) CurrentUser(ctx context.Context) (*models.User, error) {
	var u *models.User
	if _, err := r.store.Load(ctx, KeyCurrentUser, &u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetCurrentUser stores u as the current user; nil clears it.
func (r *Records) SetCurrentUser(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Save(ctx, KeyCurrentUser, u)
}

func (r *Records) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Clear(ctx)
}
