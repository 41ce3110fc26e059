package storage

import (
	"context"
	"fmt"

	"github.com/sandevgo/bowen/internal/config"
	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/storage/file"
	"github.com/sandevgo/bowen/internal/storage/memory"
	"github.com/sandevgo/bowen/internal/storage/redis"
	"github.com/sandevgo/bowen/internal/storage/sqlite"
	"github.com/sandevgo/bowen/pkg/log"
)

// New opens the backend selected by cfg. The returned func releases it.
func New(ctx context.Context, cfg core.StorageConfig) (core.KeyValueStore, func() error, error) {
	logger := log.FromCtx(ctx)
	noop := func() error { return nil }

	switch cfg.GetStorageBackend() {
	case config.StorageFile, "":
		logger.Debug().Str("path", cfg.GetStatePath()).Msg("using file storage")
		return file.NewStore(cfg.GetStatePath()), noop, nil

	case config.StorageSQLite:
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		logger.Debug().Str("path", cfg.GetDatabasePath()).Msg("using sqlite storage")
		return sqlite.NewKVRepo(db), db.Close, nil

	case config.StorageRedis:
		rdb, err := redis.NewClient(ctx, cfg.GetRedisURL())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis storage: %w", err)
		}
		logger.Debug().Msg("using redis storage")
		return redis.NewStore(rdb), rdb.Close, nil

	case config.StorageMemory:
		logger.Debug().Msg("using in-memory storage, nothing will persist")
		return memory.NewStore(), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.GetStorageBackend())
	}
}
