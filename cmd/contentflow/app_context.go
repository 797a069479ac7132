package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/Sam4587/Workspace-sub000/internal/handlers/builtin"
	infraconfig "github.com/Sam4587/Workspace-sub000/internal/infrastructure/config"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/events"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/history"
	"github.com/Sam4587/Workspace-sub000/internal/infrastructure/logging"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
	"github.com/Sam4587/Workspace-sub000/internal/registry"
)

// AppContext bundles the services a command needs.
type AppContext struct {
	Logger   ports.Logger
	Events   *events.LoggingPublisher
	Registry *registry.Registry
	Loader   *infraconfig.YAMLLoader
}

func (f *rootFlags) level() string {
	if f.verbose {
		return "debug"
	}
	return f.logLevel
}

func newLogger(flags *rootFlags, w io.Writer) (*logging.Logger, error) {
	return logging.New(logging.Options{
		Writer:    w,
		Level:     flags.level(),
		Format:    flags.logFormat,
		Component: "cli",
	})
}

// newAppContext wires the loader and event bus around logger. commandEcho
// receives live command step output and may be nil.
func newAppContext(logger ports.Logger, commandEcho io.Writer) *AppContext {
	reg := builtin.NewRegistry(builtin.Options{CommandEcho: commandEcho})
	return &AppContext{
		Logger:   logger,
		Events:   events.NewLoggingPublisher(logger),
		Registry: reg,
		Loader:   infraconfig.NewYAMLLoader(reg, logger),
	}
}

func withCorrelation(ctx context.Context, flags *rootFlags) context.Context {
	if flags.correlationID != "" {
		return logging.WithCorrelationID(ctx, flags.correlationID)
	}
	return ctx
}

func defaultHistoryDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "contentflow"), nil
}

// openStore returns the configured run store and a function releasing it.
func openStore(ctx context.Context, flags *rootFlags) (ports.RunStore, func(), error) {
	if flags.redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: flags.redisAddr})
		store := history.NewRedisStore(client, history.WithPrefix(flags.redisPrefix))
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis %s: %w", flags.redisAddr, err)
		}
		return store, func() { _ = client.Close() }, nil
	}

	dir := flags.historyDir
	if dir == "" {
		var err error
		if dir, err = defaultHistoryDir(); err != nil {
			return nil, nil, fmt.Errorf("determine history directory: %w", err)
		}
	}
	return history.NewDiskvStore(dir), func() {}, nil
}
