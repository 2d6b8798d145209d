package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// BadgerConfig configures the embedded BadgerDB backend.
type BadgerConfig struct {
	Path     string // ignored when InMemory
	InMemory bool
	// Logger receives badger's internal messages; nil silences them.
	Logger *logrus.Logger
}

// Badger stores each key as one BadgerDB entry.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a BadgerDB at cfg.Path, or in memory.
func OpenBadger(cfg BadgerConfig) (*Badger, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store: badger path is required for a persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("store: create badger directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(cfg.Logger)
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Save(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", key, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("store: badger set %s: %w", key, err)
	}
	return nil
}

func (b *Badger) Load(_ context.Context, key string, dst any) (bool, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: badger get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("store: unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (b *Badger) Clear(_ context.Context) error {
	if err := b.db.DropAll(); err != nil {
		return fmt.Errorf("store: badger drop all: %w", err)
	}
	return nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}
