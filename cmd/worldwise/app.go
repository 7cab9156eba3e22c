package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jacksmith/worldwise/internal/cli"
	"github.com/jacksmith/worldwise/internal/ops"
	"github.com/jacksmith/worldwise/internal/remote"
	"github.com/jacksmith/worldwise/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Process-wide settings resolved by setup before any command runs.
var (
	cfg    = storage.DefaultConfig()
	logger = zap.NewNop()
	locale = cli.DefaultLocale
)

// setup resolves configuration (defaults, file, environment, flags, in
// increasing precedence) and builds the logger.
func setup(cmd *cobra.Command) error {
	path := flagConfig
	if path == "" {
		path = storage.UserConfigFile
	}
	loaded, err := storage.LoadConfig(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		loaded.BaseURL = flagBaseURL
	}
	if flags.Changed("locale") {
		loaded.Locale = flagLocale
	}
	if flags.Changed("timeout") {
		loaded.Timeout = flagTimeout
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	locale = cli.MatchLocale(cfg.Locale)

	if flagNoColor || os.Getenv("NO_COLOR") != "" {
		cli.SetColorEnabled(false)
	}

	level := zapcore.ErrorLevel
	if cmd.Name() == "serve" {
		level = zapcore.InfoLevel
	}
	if flagVerbose {
		level = zapcore.DebugLevel
	}
	l, err := newLogger(level)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func newRemote() *remote.Client {
	return remote.New(cfg.BaseURL,
		remote.WithTimeout(cfg.Timeout),
		remote.WithLogger(logger.Named("remote")))
}

// openStore returns a city store that has completed its initial load.
func openStore(ctx context.Context) *ops.CityStore {
	return ops.Open(ctx, newRemote(), logger.Named("store"))
}

// stateError turns a recorded store error into the command's error.
func stateError(st ops.State) error {
	if st.Error == "" {
		return nil
	}
	return &cli.RemoteError{
		Message: st.Error,
		Hint:    fmt.Sprintf("Is the cities API running at %s? Start a local one with 'worldwise serve'.", cfg.BaseURL),
	}
}
