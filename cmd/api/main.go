// Package main is the entrypoint for the blog API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/blogapi/blogapi/internal/config"
	"github.com/blogapi/blogapi/internal/metrics"
	"github.com/blogapi/blogapi/internal/middleware"
	"github.com/blogapi/blogapi/internal/redisstore"
	"github.com/blogapi/blogapi/internal/repository"
	"github.com/blogapi/blogapi/internal/router"
	"github.com/blogapi/blogapi/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := initLogger(cfg)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to store",
			slog.String("driver", cfg.StoreDriver),
			slog.String("error", sanitizeError(err, cfg.StoreURL())),
			slog.String("url", redactURL(cfg.StoreURL())),
		)
		return fmt.Errorf("connect %s store", cfg.StoreDriver)
	}
	logger.Info("connected to store", "driver", cfg.StoreDriver)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	r := router.New(router.Config{
		Store:       store,
		Metrics:     metrics.NewInMemory(),
		Logger:      logger,
		CORS:        corsCfg,
		Security:    middleware.SecurityConfig{HSTS: cfg.IsProduction()},
		MaxBodySize: cfg.MaxRequestBodySize,
	})

	srv := server.New(r, server.Options{
		Host:            cfg.AppHost,
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	srv.OnShutdown(cfg.StoreDriver, closeStore)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"store", cfg.StoreDriver,
	)

	return srv.Run(ctx)
}

// openStore connects the configured backend and returns its close hook.
func openStore(ctx context.Context, cfg *config.Config) (router.Store, server.ShutdownFunc, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		store, err := redisstore.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func(context.Context) error { return store.Close() }, nil
	default:
		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo, func(context.Context) error {
			repo.Close()
			return nil
		}, nil
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL strips the password from a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

// sanitizeError removes secrets from a driver error message.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
