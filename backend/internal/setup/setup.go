package setup

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/taskboard-dev/taskboard/backend/internal/handler"
	"github.com/taskboard-dev/taskboard/backend/internal/idempotency"
	"github.com/taskboard-dev/taskboard/backend/internal/service"
	"github.com/taskboard-dev/taskboard/backend/internal/storage/pg"
	"github.com/taskboard-dev/taskboard/backend/internal/utils"
	"github.com/taskboard-dev/taskboard/shared/config"
	"github.com/taskboard-dev/taskboard/shared/logger"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage *pg.Storage
	Handler *handler.Handler
	// nil when no redis is configured
	Deduper idempotency.Deduper
	redis   *redis.Client
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	titles := utils.NewTitleValidator()
	board := service.NewBoard(storage, titles)
	card := service.NewCard(storage, titles)
	item := service.NewItem(storage, titles, cfg.Public.MaxPageLimit)

	deps := &Dependencies{
		Config:  cfg,
		Storage: storage,
		Handler: handler.New(board, card, item, storage, cfg),
	}

	if addr := cfg.Public.Redis.Addr; addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Private.Redis.Password})
		if err := client.Ping(ctx).Err(); err != nil {
			// the guard is lenient per request, so a cold redis is not fatal either
			logger.Log.Warn("redis is not reachable yet", "addr", addr, "error", err)
		}
		deps.redis = client
		deps.Deduper = idempotency.NewRedisDeduper(client, cfg.Public.Redis.IdempotencyTTL)
		logger.Log.Info("idempotency guard enabled", "addr", addr)
	}

	return deps, nil
}

// Close releases the store and redis connections.
func (d *Dependencies) Close() error {
	var redisErr error
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			redisErr = fmt.Errorf("close redis: %w", err)
		}
	}
	if err := d.Storage.Cleanup(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return redisErr
}
