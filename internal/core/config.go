package core

import "time"

type StorageConfig interface {
	GetStorageBackend() string
	GetStatePath() string
	GetDatabasePath() string
	GetRedisURL() string
}

type APIConfig interface {
	GetHost() string
	GetPrimaryBaseURL() string
	GetFallbackBaseURL() string
	GetTimeout() time.Duration
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
