// Package cache maintains the per-product side cache in Redis. The write
// gateway repopulates an entry after every successful update and removes it
// on delete; reads treat any Redis failure as a miss so the cache backend
// being down never fails a request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Entry is the cached projection of a product.
type Entry struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ProductCache wraps a Redis client for product entries. A nil receiver or
// nil client makes every operation a no-op, so wiring the cache is optional.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewProductCache creates a product cache. A ttl of zero stores entries
// without expiry; invalidation is manual via Delete.
func NewProductCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "product-cache").Logger(),
	}
}

// Key derives the cache key for a product id.
func Key(id int64) string {
	return fmt.Sprintf("product_data_%d", id)
}

// Get returns the cached entry for the product, or nil on a miss.
func (c *ProductCache) Get(ctx context.Context, id int64) (*Entry, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		c.logger.Warn().Err(err).Int64("product_id", id).Msg("cache read failed")
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn().Err(err).Int64("product_id", id).Msg("cache entry corrupt")
		return nil, err
	}

	return &entry, nil
}

// Set stores the entry under the product's key.
func (c *ProductCache) Set(ctx context.Context, id int64, entry Entry) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.client.Set(ctx, Key(id), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("product_id", id).Msg("cache write failed")
		return err
	}

	c.logger.Debug().Int64("product_id", id).Msg("cache entry set")
	return nil
}

// Delete removes the entry for the product.
func (c *ProductCache) Delete(ctx context.Context, id int64) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, Key(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("product_id", id).Msg("cache delete failed")
		return err
	}

	c.logger.Debug().Int64("product_id", id).Msg("cache entry deleted")
	return nil
}
