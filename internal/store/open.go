package store

import (
	"context"
	"fmt"

	"github.com/priyakashinagar/ReelPostCity--sub001/config"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/database"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
)

// Open builds the backend selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		db, err := database.Open(ctx, cfg.Store.SQLite.DSN)
		if err != nil {
			return nil, err
		}
		return NewSQLite(db), nil
	case "redis":
		r, err := OpenRedis(ctx, RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
			Prefix:   cfg.Store.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	case "badger":
		b, err := OpenBadger(BadgerConfig{
			Path:     cfg.Store.Badger.Path,
			InMemory: cfg.Store.Badger.InMemory,
			Logger:   logger.StdLogger().Logger,
		})
		if err != nil {
			return nil, err
		}
		return b, nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Store.Driver)
	}
}
