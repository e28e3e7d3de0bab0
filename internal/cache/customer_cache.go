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

// CustomerCache fronts the telephone lookup the billing screen fires on every
// keystroke past the threshold. A miss or a Redis failure falls through to
// Postgres; the cache is never authoritative.
type CustomerCache interface {
	GetByTelephone(ctx context.Context, telephone string) (*models.Customer, bool)
	SetByTelephone(ctx context.Context, customer *models.Customer)
	Invalidate(ctx context.Context, telephone string)
}

const customerTTL = 5 * time.Minute

type redisCustomerCache struct {
	client *redis.Client
}

func NewCustomerCache(client *redis.Client) CustomerCache {
	return &redisCustomerCache{client: client}
}

func customerKey(telephone string) string {
	return fmt.Sprintf("customer:telephone:%s", telephone)
}

func (c *redisCustomerCache) GetByTelephone(ctx context.Context, telephone string) (*models.Customer, bool) {
	logger := middleware.LoggerFromContext(ctx)

	payload, err := c.client.Get(ctx, customerKey(telephone)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}

	if err != nil {
		logger.Warn("Customer cache read failed", slog.Any("error", err))
		return nil, false
	}

	customer := &models.Customer{}
	if err := json.Unmarshal(payload, customer); err != nil {
		logger.Warn("Customer cache entry corrupt, dropping it", slog.Any("error", err))
		c.client.Del(ctx, customerKey(telephone))
		return nil, false
	}

	return customer, true
}

func (c *redisCustomerCache) SetByTelephone(ctx context.Context, customer *models.Customer) {
	logger := middleware.LoggerFromContext(ctx)

	payload, err := json.Marshal(customer)
	if err != nil {
		logger.Warn("Failed to marshal customer for cache", slog.Any("error", err))
		return
	}

	if err := c.client.Set(ctx, customerKey(customer.Telephone), payload, customerTTL).Err(); err != nil {
		logger.Warn("Customer cache write failed", slog.Any("error", err))
	}
}

func (c *redisCustomerCache) Invalidate(ctx context.Context, telephone string) {
	logger := middleware.LoggerFromContext(ctx)

	if err := c.client.Del(ctx, customerKey(telephone)).Err(); err != nil {
		logger.Warn("Customer cache invalidation failed", slog.Any("error", err))
	}
}
