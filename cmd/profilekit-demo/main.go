// Command profilekit-demo wires the library end to end: configuration,
// logging, a repository backend, and the service layer, then runs a small
// register/update/serialize flow and prints the resulting document.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/profilekit"
	"github.com/heartmarshall/profilekit/config"
	"github.com/heartmarshall/profilekit/memory"
	"github.com/heartmarshall/profilekit/postgres"
	redisstore "github.com/heartmarshall/profilekit/redis"
	"github.com/heartmarshall/profilekit/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("demo failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log)
	ctx := context.Background()

	repo, cleanup, err := newRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("backend ready", slog.String("backend", cfg.Backend))

	mgr := service.New(logger, repo)

	profile, err := mgr.Register(ctx, service.RegisterInput{Email: "John.Doe@Example.COM"})
	if err != nil {
		return err
	}

	attrs := profilekit.NewUserAttributes()
	attrs.SetFirstName("John")
	attrs.SetLastName("Doe")
	attrs.SetExtra("roles", []any{"admin", "editor"})

	prefs := profilekit.NewUserPreferences()
	prefs.SetNewsletterOptIn(true)
	prefs.SetExtra("theme", "dark")
	prefs.SetExtra("custom_field", map[string]any{"key": "value"})

	if _, err := mgr.UpdateAttributes(ctx, profile.ID, attrs); err != nil {
		return err
	}
	updated, err := mgr.UpdatePreferences(ctx, profile.ID, prefs)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	// Round trip through the wire format.
	var decoded profilekit.UserProfile
	if err := json.Unmarshal(out, &decoded); err != nil {
		return err
	}
	roles, _ := decoded.Attributes.GetExtra("roles")
	logger.Info("round trip ok",
		slog.String("first_name", *decoded.Attributes.FirstName),
		slog.Any("roles", roles))

	return nil
}

// newRepository builds the configured backend and a cleanup func.
func newRepository(ctx context.Context, cfg *config.Config) (profilekit.Repository, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.New(pool), pool.Close, nil
	case config.BackendRedis:
		client := redisstore.NewClient(cfg.Redis)
		return redisstore.New(client), func() { _ = client.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}

// newLogger creates a *slog.Logger based on LogConfig.
// Format "json" produces structured JSON output; anything else produces
// human-readable text with source info. Output is always os.Stderr.
func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !strings.EqualFold(cfg.Format, "json"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
