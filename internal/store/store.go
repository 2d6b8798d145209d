// Package store persists domain records as JSON documents under a small set of string keys.
package store

import (
	"context"
	"errors"
)

// Keys used by the application.
const (
	KeyPosts         = "posts"
	KeyUsers         = "users"
	KeyCurrentUser   = "currentUser"
	KeyAds           = "ads"
	KeySubscriptions = "subscriptions"
	KeySessions      = "sessions"
)

// Keys lists every key the application writes; Clear implementations erase exactly these.
var Keys = []string{KeyPosts, KeyUsers, KeyCurrentUser, KeyAds, KeySubscriptions, KeySessions}

var ErrUnknownDriver = errors.New("unknown store driver")

// Store is a key-value persistence backend holding JSON-serialised values.
type Store interface {
	// Save serialises value as JSON under key, replacing any previous value.
	Save(ctx context.Context, key string, value any) error
	// Load decodes the value stored under key into dst. found is false when the key is absent,
	// in which case dst is left untouched.
	Load(ctx context.Context, key string, dst any) (found bool, err error)
	// Clear erases all keys.
	Clear(ctx context.Context) error
	Close() error
}
