package config

import (
	"context"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/bowen/pkg/log"
)

type APIConfig struct {
	Host          string `env:"BOWEN_API_HOST" envDefault:"http://localhost:8000"`
	PrimaryPrefix string `env:"BOWEN_API_PREFIX" envDefault:"/api/v1"`
	// Zero leaves request latency to the transport.
	Timeout time.Duration `env:"BOWEN_HTTP_TIMEOUT" envDefault:"0s"`
}

func NewAPIConfig(ctx context.Context) *APIConfig {
	c := &APIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse API config")
	}
	return c
}

func (c APIConfig) GetHost() string {
	return strings.TrimRight(c.Host, "/")
}

func (c APIConfig) GetPrimaryBaseURL() string {
	prefix := strings.Trim(c.PrimaryPrefix, "/")
	if prefix == "" {
		return c.GetHost()
	}
	return c.GetHost() + "/" + prefix
}

// GetFallbackBaseURL returns the legacy unversioned base.
func (c APIConfig) GetFallbackBaseURL() string {
	return c.GetHost()
}

func (c APIConfig) GetTimeout() time.Duration {
	return c.Timeout
}
