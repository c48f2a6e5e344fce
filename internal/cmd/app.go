package cmd

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/dotcommander/cryptobot/internal/agent"
	"github.com/dotcommander/cryptobot/internal/chat"
	"github.com/dotcommander/cryptobot/internal/coingecko"
	"github.com/dotcommander/cryptobot/internal/config"
	"github.com/dotcommander/cryptobot/internal/errs"
	"github.com/dotcommander/cryptobot/internal/fantasybridge"
	"github.com/dotcommander/cryptobot/internal/logging"
	"github.com/dotcommander/cryptobot/internal/tools"
	"github.com/dotcommander/cryptobot/internal/workpool"
)

// logMode selects where a command logs.
type logMode int

const (
	// logConsole writes to stderr.
	logConsole logMode = iota
	// logFile writes to the log file so a full screen UI is not disturbed.
	logFile
)

// app is everything a chat surface needs, built once per command.
type app struct {
	agent  agent.Agent
	pool   *workpool.Pool
	logger zerolog.Logger
	closer io.Closer
}

func (a *app) Close() {
	a.pool.Close()
	_ = a.closer.Close()
}

func (a *app) chatOptions(cfg *config.Config) []chat.Option {
	return []chat.Option{chat.WithRunTimeout(cfg.RunTimeout)}
}

func newLogger(cfg *config.Config, mode logMode, stderr io.Writer) (zerolog.Logger, io.Closer) {
	opts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Out: stderr}
	if mode == logFile && opts.File == "" {
		opts.File = logging.DefaultFile()
	}
	return logging.New(opts)
}

func newPriceTool(cfg *config.Config) *tools.CryptoPrice {
	client := coingecko.New(
		coingecko.WithBaseURL(cfg.PriceURL),
		coingecko.WithTimeout(cfg.PriceTimeout),
	)
	return tools.NewCryptoPrice(client)
}

// bootstrap builds the pipeline: env -> config -> inference client -> tool
// -> agent. The returned context carries the logger.
func bootstrap(ctx context.Context, cfg *config.Config, mode logMode, stderr io.Writer) (context.Context, *app, error) {
	if err := cfg.ResolveAPIKey(ctx); err != nil {
		return ctx, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return ctx, nil, err
	}

	logger, closer := newLogger(cfg, mode, stderr)
	ctx = logger.WithContext(ctx)

	providerCfg, err := fantasybridge.FromConfig(cfg)
	if err != nil {
		_ = closer.Close()
		return ctx, nil, err
	}
	client, err := fantasybridge.New(providerCfg)
	if err != nil {
		_ = closer.Close()
		return ctx, nil, errs.Wrapf(err, "Could not set up the %s API client.", cfg.API)
	}
	model, err := client.LanguageModel(ctx, cfg.Model)
	if err != nil {
		_ = closer.Close()
		return ctx, nil, errs.Wrapf(err, "Could not use model %q.", cfg.Model)
	}

	bot := agent.NewCryptoBot(model, tools.AgentTool(newPriceTool(cfg)))
	pool := workpool.New(cfg.Workers)
	logger.Debug().
		Str("api", client.API()).
		Str("model", cfg.Model).
		Int("workers", pool.Size()).
		Msg("agent ready")

	return ctx, &app{
		agent:  bot,
		pool:   pool,
		logger: logger,
		closer: closer,
	}, nil
}
