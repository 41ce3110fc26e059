package installer

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sandevgo/bowen/internal/config"
)

func NewStorageStep() Step {
	return &ChoiceStep{
		title: "Where should conversations be kept?",
		choices: []choice{
			{id: config.StorageFile, title: "File", desc: "state.json in the runtime directory"},
			{id: config.StorageSQLite, title: "SQLite", desc: "bowen.db in the runtime directory"},
			{id: config.StorageRedis, title: "Redis", desc: "shared server, survives reinstalls"},
			{id: config.StorageMemory, title: "Memory", desc: "nothing is kept between runs"},
		},
		apply: func(state *InstallState, id string) {
			state.App.Storage = id
		},
	}
}

func NewRedisURLStep() Step {
	return &InputStep{
		title: "Enter the Redis URL",
		input: newInput("redis://localhost:6379/0", false),
		skip: func(state *InstallState) bool {
			return state.App.Storage != config.StorageRedis
		},
		apply: func(state *InstallState, value string) error {
			if !strings.Contains(value, "://") {
				value = "redis://" + value
			}
			if _, err := redis.ParseURL(value); err != nil {
				return fmt.Errorf("invalid redis url: %w", err)
			}
			state.App.RedisURL = value
			return nil
		},
	}
}
