package installer

import (
	"errors"
	"fmt"
	"strconv"
)

func skipUnlessTelegram(state *InstallState) bool {
	return !state.App.EnableTelegram
}

// NewTelegramTokenStep collects the Telegram bot token
func NewTelegramTokenStep() Step {
	return &InputStep{
		title:  "Enter your Telegram Bot Token",
		hint:   "Create a bot with @BotFather to get one.",
		input:  newInput("123456789:ABCDEF...", true),
		secret: true,
		skip:   skipUnlessTelegram,
		apply: func(state *InstallState, value string) error {
			if value == "" {
				return errors.New("a token is required for the Telegram channel")
			}
			state.Telegram.Token = value
			return nil
		},
	}
}

// NewTelegramOwnerStep restricts the bot to one user. Empty keeps it public.
func NewTelegramOwnerStep() Step {
	return &InputStep{
		title: "Enter your Telegram User ID (Owner)",
		hint:  "Leave empty to answer everyone who messages the bot.",
		input: newInput("", false),
		skip:  skipUnlessTelegram,
		apply: func(state *InstallState, value string) error {
			if value == "" {
				state.Telegram.OwnerID = 0
				return nil
			}
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil || id < 0 {
				return fmt.Errorf("%q is not a Telegram user id", value)
			}
			state.Telegram.OwnerID = id
			return nil
		},
	}
}
