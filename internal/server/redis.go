package server

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/newshub/news-service/internal/platform/cache"
	"github.com/newshub/news-service/internal/platform/logger"
)

// ConnectRedis creates the redis client for the comment cache. The
// cache is optional: with no REDIS_ADDR configured a nil client is
// returned and the service runs uncached. A configured but unreachable
// redis is a startup error, not something to silently skip.
func ConnectRedis(ctx context.Context, config Config, log logger.Logger) (*redis.Client, func(), error) {
	if config.RedisAddr == "" {
		log.Info(ctx, "no redis address configured, comment cache disabled")
		return nil, func() {}, nil
	}

	client, err := cache.New(ctx, config.RedisAddr)
	if err != nil {
		log.Error(ctx, "failed to connect to redis", "error", err, "addr", config.RedisAddr)
		return nil, nil, err
	}

	log.Info(ctx, "redis connection established", "addr", config.RedisAddr)

	cleanup := func() {
		log.Info(context.Background(), "closing redis client")
		_ = client.Close()
	}

	return client, cleanup, nil
}
