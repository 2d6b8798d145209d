// Package subscription moves users between tiers. Upgrading never touches posts already
// published: they keep the tier they were created with.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/metrics"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/models"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/store"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/tier"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidUpgrade = errors.New("upgrade not allowed from current tier")
)

var log = logger.StdLogger().With("subscription")

type Service struct {
	records *store.Records
	tiers   *tier.Table
	now     func() time.Time
}

type Option func(*Service)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService; tiers may be nil for tier.Default.
func NewService(records *store.Records, tiers *tier.Table, opts ...Option) *Service {
	if tiers == nil {
		tiers = tier.Default
	}
	s := &Service{records: records, tiers: tiers, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Upgrade переводит пользователя на тариф target. Допустимы только переходы из
// UpgradeTargetsOf текущего тарифа.
func (s *Service) Upgrade(ctx context.Context, userID string, target tier.Tier) (*models.User, *models.Subscription, error) {
	var (
		upgraded models.User
		record   models.Subscription
	)
	err := s.records.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID != userID {
				continue
			}
			from := users[i].Tier
			if !slices.Contains(s.tiers.UpgradeTargetsOf(from), target) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidUpgrade, from, target)
			}
			users[i].Tier = target
			upgraded = users[i]
			record = models.Subscription{
				ID:        uuid.NewString(),
				UserID:    userID,
				From:      from,
				To:        target,
				CreatedAt: s.now().UTC(),
			}
			return users, nil
		}
		return nil, ErrUserNotFound
	})
	if err != nil {
		if errors.Is(err, ErrInvalidUpgrade) || errors.Is(err, ErrUserNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("subscription: update user: %w", err)
	}

	err = s.records.UpdateSubscriptions(ctx, func(subs []models.Subscription) ([]models.Subscription, error) {
		return append(subs, record), nil
	})
	if err != nil {
		err = fmt.Errorf("subscription: record: %w", err)
		if rbErr := s.revert(ctx, record); rbErr != nil {
			log.Errorf(ctx, "Failed to revert upgrade of user %s: %v", userID, rbErr)
			return nil, nil, errors.Join(err, rbErr)
		}
		return nil, nil, err
	}

	public := upgraded.Public()
	if err := s.syncCurrentUser(ctx, &public); err != nil {
		return nil, nil, err
	}

	metrics.Upgraded(record.From.String(), record.To.String())
	log.Infof(ctx, "User %s upgraded %s -> %s", userID, record.From, record.To)
	return &public, &record, nil
}

// revert puts the user back on rec.From when the history entry could not be saved.
func (s *Service) revert(ctx context.Context, rec models.Subscription) error {
	err := s.records.UpdateUsers(ctx, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == rec.UserID && users[i].Tier == rec.To {
				users[i].Tier = rec.From
			}
		}
		return users, nil
	})
	if err != nil {
		return fmt.Errorf("subscription: revert user: %w", err)
	}
	return nil
}

// syncCurrentUser refreshes the stored current user if it is the one that changed.
func (s *Service) syncCurrentUser(ctx context.Context, u *models.User) error {
	current, err := s.records.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("subscription: load current user: %w", err)
	}
	if current == nil || current.ID != u.ID {
		return nil
	}
	if err := s.records.SetCurrentUser(ctx, u); err != nil {
		return fmt.Errorf("subscription: save current user: %w", err)
	}
	return nil
}

// History lists userID's tier changes, oldest first.
func (s *Service) History(ctx context.Context, userID string) ([]models.Subscription, error) {
	subs, err := s.records.Subscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscription: load: %w", err)
	}
	out := make([]models.Subscription, 0)
	for _, sub := range subs {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}
