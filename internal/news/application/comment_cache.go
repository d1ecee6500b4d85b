package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/newshub/news-service/internal/news/domain"
	"github.com/newshub/news-service/internal/platform/logger"
)

const commentCacheTTL = 5 * time.Minute

// CommentCache is a read-through cache for single-comment lookups. A nil
// redis client disables it entirely, so the service works unchanged when
// no cache is configured. Cache failures are logged and otherwise
// invisible to callers; the database remains the source of truth.
type CommentCache struct {
	client *redis.Client
	logger logger.Logger
}

// NewCommentCache creates the cache wrapper. client may be nil.
func NewCommentCache(client *redis.Client, logger logger.Logger) *CommentCache {
	return &CommentCache{client: client, logger: logger}
}

func commentCacheKey(id uuid.UUID) string {
	return "comments:" + id.String()
}

// Get returns the cached comment, or nil on miss, disabled cache, or any
// cache error.
func (c *CommentCache) Get(ctx context.Context, id uuid.UUID) *domain.Comment {
	if c.client == nil {
		return nil
	}

	raw, err := c.client.Get(ctx, commentCacheKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn(ctx, "comment cache read failed", "error", err, "commentID", id)
		}
		return nil
	}

	var comment domain.Comment
	if err := json.Unmarshal(raw, &comment); err != nil {
		c.logger.Warn(ctx, "comment cache entry corrupt", "error", err, "commentID", id)
		return nil
	}
	return &comment
}

// Set stores the comment with a short TTL.
func (c *CommentCache) Set(ctx context.Context, comment *domain.Comment) {
	if c.client == nil || comment == nil {
		return
	}

	raw, err := json.Marshal(comment)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, commentCacheKey(comment.ID), raw, commentCacheTTL).Err(); err != nil {
		c.logger.Warn(ctx, "comment cache write failed", "error", err, "commentID", comment.ID)
	}
}

// Invalidate drops the cached entries for the given comment ids. Called
// after every successful write so readers never see a stale comment
// beyond the current request.
func (c *CommentCache) Invalidate(ctx context.Context, ids ...uuid.UUID) {
	if c.client == nil || len(ids) == 0 {
		return
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = commentCacheKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn(ctx, "comment cache invalidation failed", "error", err)
	}
}
