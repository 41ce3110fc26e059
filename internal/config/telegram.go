package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/bowen/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"BOWEN_TELEGRAM_TOKEN,required,notEmpty"`
	// Zero serves every chat.
	OwnerID int64 `env:"BOWEN_TELEGRAM_OWNER_ID" envDefault:"0"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func (c TelegramConfig) GetTelegramToken() string {
	return c.Token
}

func (c TelegramConfig) GetTelegramOwnerID() int64 {
	return c.OwnerID
}
