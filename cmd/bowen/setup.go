package main

import (
	"context"
	"errors"
	"os"

	"github.com/sandevgo/bowen/internal/config"
	"github.com/sandevgo/bowen/internal/providers/bowen"
	"github.com/sandevgo/bowen/internal/service/chat"
	"github.com/sandevgo/bowen/internal/service/command"
	"github.com/sandevgo/bowen/internal/storage"
	"github.com/sandevgo/bowen/internal/transport/cli"
	"github.com/sandevgo/bowen/internal/transport/mcp"
	"github.com/sandevgo/bowen/internal/transport/telegram"
	"github.com/sandevgo/bowen/pkg/log"
	"github.com/sandevgo/bowen/pkg/srv"
	"github.com/spf13/cobra"
)

const (
	terminalScope = ""
	mcpScope      = "mcp"
)

// app is the wiring shared by every command.
type app struct {
	cfg    *config.AppConfig
	client *bowen.Client
	chats  *chat.Factory
	router *command.Router
	close  func() error
}

// newApp loads configuration and opens storage. Configuration errors are
// fatal, storage errors are returned.
func newApp(ctx context.Context) (*app, error) {
	logger := log.FromCtx(ctx)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	apiCfg := config.NewAPIConfig(ctx)

	// 2. Storage
	kv, closeStore, err := storage.New(ctx, appCfg)
	if err != nil {
		return nil, err
	}

	// 3. Remote service
	client := bowen.NewClient(apiCfg)
	logger.Debug().
		Str("primary", apiCfg.GetPrimaryBaseURL()).
		Str("fallback", apiCfg.GetFallbackBaseURL()).
		Msg("bowen client configured")

	return &app{
		cfg:    appCfg,
		client: client,
		chats:  chat.NewFactory(client, kv),
		router: command.New(command.NewCommands(client)),
		close:  closeStore,
	}, nil
}

// terminal opens the conversation shared by the REPL and one-shot commands.
func (a *app) terminal(ctx context.Context) *chat.Chat {
	return a.chats.Open(ctx, terminalScope)
}

// NewServices builds the long-running transports selected in configuration.
// stop ends the app when a foreground transport exits.
func NewServices(ctx context.Context, a *app, stop context.CancelFunc, forceCLI bool) ([]srv.Service, error) {
	services := []srv.Service{srv.NewCleanup(a.close)}

	transports, err := initTransports(ctx, a, stop, forceCLI)
	if err != nil {
		return nil, err
	}
	if len(transports) == 0 {
		return nil, errors.New("no transport enabled, set BOWEN_ENABLE_CLI or BOWEN_ENABLE_TELEGRAM")
	}
	return append(services, transports...), nil
}

func initTransports(ctx context.Context, a *app, stop context.CancelFunc, forceCLI bool) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if a.cfg.IsTelegramSelected() && !forceCLI {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.router, a.chats)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	// Terminal
	if a.cfg.IsCLISelected() || forceCLI {
		repl, err := cli.NewReadLine(a.terminal(ctx), a.router, a.cfg.GetInputHistoryPath(), stop)
		if err != nil {
			return nil, err
		}
		services = append(services, repl)
	}

	return services, nil
}

// NewMCPServices serves the tools on stdin/stdout.
func NewMCPServices(ctx context.Context, a *app) []srv.Service {
	server := mcp.NewServer(a.chats.Open(ctx, mcpScope), a.client, os.Stdin, os.Stdout)
	return []srv.Service{srv.NewCleanup(a.close), server}
}

// withApp runs fn with a logger and an opened app, releasing storage after.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx, flushLog := setupLogger(cmd.Context())
	defer flushLog()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to close storage")
		}
	}()

	return fn(ctx, a)
}
