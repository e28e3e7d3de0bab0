package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pahanaedu/pos-platform/internal/api/middleware"
	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/redis/go-redis/v9"
)

// ItemSearchCache fronts the item picker's search queries. Entries live only
// a minute, so catalog edits ride out the TTL instead of needing pattern
// invalidation.
type ItemSearchCache interface {
	GetSearch(ctx context.Context, name string, page, pageSize int) ([]*models.Item, int, bool)
	SetSearch(ctx context.Context, name string, page, pageSize int, items []*models.Item, total int)
}

const itemSearchTTL = time.Minute

type itemSearchPage struct {
	Items []*models.Item `json:"items"`
	Total int            `json:"total"`
}

type redisItemSearchCache struct {
	client *redis.Client
}

func NewItemSearchCache(client *redis.Client) ItemSearchCache {
	return &redisItemSearchCache{client: client}
}

func itemSearchKey(name string, page, pageSize int) string {
	return fmt.Sprintf("items:search:%s:page:%d:size:%d", name, page, pageSize)
}

func (c *redisItemSearchCache) GetSearch(ctx context.Context, name string, page, pageSize int) ([]*models.Item, int, bool) {
	logger := middleware.LoggerFromContext(ctx)

	payload, err := c.client.Get(ctx, itemSearchKey(name, page, pageSize)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, 0, false
	}

	if err != nil {
		logger.Warn("Item search cache read failed", slog.Any("error", err))
		return nil, 0, false
	}

	result := &itemSearchPage{}
	if err := json.Unmarshal(payload, result); err != nil {
		logger.Warn("Item search cache entry corrupt, dropping it", slog.Any("error", err))
		c.client.Del(ctx, itemSearchKey(name, page, pageSize))

		return nil, 0, false
	}

	return result.Items, result.Total, true
}

func (c *redisItemSearchCache) SetSearch(ctx context.Context, name string, page, pageSize int, items []*models.Item, total int) {
	logger := middleware.LoggerFromContext(ctx)

	payload, err := json.Marshal(&itemSearchPage{Items: items, Total: total})
	if err != nil {
		logger.Warn("Failed to marshal item search page for cache", slog.Any("error", err))
		return
	}

	if err := c.client.Set(ctx, itemSearchKey(name, page, pageSize), payload, itemSearchTTL).Err(); err != nil {
		logger.Warn("Item search cache write failed", slog.Any("error", err))
	}
}
