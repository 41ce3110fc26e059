package config

import (
	"os"

	"github.com/rs/zerolog"
)

func IsDebug() bool {
	return os.Getenv("BOWEN_DEBUG") == "1"
}

// LogLevel reads BOWEN_LOG_LEVEL. Interactive use defaults to warn so logs
// don't interleave with answers.
func LogLevel() zerolog.Level {
	if IsDebug() {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(os.Getenv("BOWEN_LOG_LEVEL"))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}
