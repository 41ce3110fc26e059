package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/bowen/pkg/log"
)

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type AppConfig struct {
	RuntimePath string `env:"BOWEN_RUNTIME_PATH" envDefault:".bowen"`
	// file, sqlite, redis or memory
	Storage  string `env:"BOWEN_STORAGE" envDefault:"file"`
	RedisURL string `env:"BOWEN_REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Transport Flags
	EnableTelegram bool `env:"BOWEN_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"BOWEN_ENABLE_CLI" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetStorageBackend() string {
	return c.Storage
}

func (c AppConfig) GetStatePath() string {
	return filepath.Join(c.RuntimePath, "state.json")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "bowen.db")
}

func (c AppConfig) GetRedisURL() string {
	return c.RedisURL
}

func (c AppConfig) GetInputHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsCLISelected() bool {
	return c.EnableCLI
}
