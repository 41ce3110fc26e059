package installer

import (
	"github.com/sandevgo/bowen/internal/config"
	"github.com/sandevgo/bowen/internal/core"
)

// InstallState collects answers into the same structs the app parses at
// startup, so saving is a plain MarshalEnv.
type InstallState struct {
	App      config.AppConfig
	API      config.APIConfig
	Telegram config.TelegramConfig

	Health *core.HealthStatus
}

func NewInstallState() *InstallState {
	return &InstallState{
		App: config.AppConfig{
			RuntimePath: ".bowen",
			Storage:     config.StorageFile,
			RedisURL:    "redis://localhost:6379/0",
			EnableCLI:   true,
		},
		API: config.APIConfig{
			Host:          "http://localhost:8000",
			PrimaryPrefix: "/api/v1",
		},
	}
}
