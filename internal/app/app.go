package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/you/expensefront/domain"
	"github.com/you/expensefront/internal/config"
	"github.com/you/expensefront/internal/routing"
)

// NewLogger builds the process logger from config
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// Run wires the application together, rehydrates the session and resolves
// the landing route. The returned container stays alive for the embedding
// shell; callers own Close.
func Run(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := NewLogger(cfg)

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, err
	}

	if container.RedisClient != nil {
		if err := container.RedisClient.Ping(ctx).Err(); err != nil {
			container.Close()
			return nil, err
		}
	}

	// Every committed session transition is logged; the shell additionally
	// re-resolves the route on redirect signals.
	container.Sessions.Subscribe(func(event *domain.AuthEvent) {
		logger.Info("auth event",
			"type", event.EventType,
			"user_id", event.UserID,
			"role", event.Role,
			"target", event.Target,
			"success", event.Success,
		)
	})

	if err := container.Sessions.Bootstrap(ctx); err != nil {
		container.Close()
		return nil, err
	}

	decision := container.Router.Resolve(routing.PathRoot, container.Sessions.Snapshot())
	logger.Info("resolved landing route",
		"kind", decision.Kind.String(),
		"view", decision.View,
		"target", decision.Target,
	)

	return container, nil
}
