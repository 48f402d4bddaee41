// Package cache keeps search results in Redis, keyed on the keyword pair
// and result limit, and collapses concurrent misses for the same key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
	pkgredis "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/redis"
)

const keyPrefix = "lse:search:"

// Store is the subset of *redis.Client the cache uses.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	FlushByPattern(ctx context.Context, pattern string) (int64, error)
}

type QueryCache struct {
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

func New(store Store, ttl time.Duration) *QueryCache {
	return &QueryCache{
		store:  store,
		ttl:    ttl,
		logger: logger.WithComponent("query-cache"),
	}
}

func (c *QueryCache) Get(ctx context.Context, plan *parser.QueryPlan, limit int) (*executor.SearchResult, bool) {
	key := buildKey(plan, limit)
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var result executor.SearchResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", plan.String(), "key", key)
	result.Query = plan.RawQuery
	return &result, true
}

func (c *QueryCache) Set(ctx context.Context, plan *parser.QueryPlan, limit int, result *executor.SearchResult) {
	key := buildKey(plan, limit)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result for plan, or runs compute once per
// key across concurrent callers and stores what it returns. The bool reports
// a cache hit.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	plan *parser.QueryPlan,
	limit int,
	compute func() (*executor.SearchResult, error),
) (*executor.SearchResult, bool, error) {
	if result, ok := c.Get(ctx, plan, limit); ok {
		return result, true, nil
	}
	key := buildKey(plan, limit)
	val, err, _ := c.group.Do(key, func() (any, error) {
		result, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, plan, limit, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	// Callers sharing a flight may have spelled the query differently.
	result := *val.(*executor.SearchResult)
	result.Query = plan.RawQuery
	return &result, false, nil
}

func (c *QueryCache) Invalidate(ctx context.Context) (int64, error) {
	deleted, err := c.store.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return deleted, fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return deleted, nil
}

func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey keeps keyword order: "a OR b" and "b OR a" rank ties
// differently and so are cached apart.
func buildKey(plan *parser.QueryPlan, limit int) string {
	raw := fmt.Sprintf("%s\x00%s\x00%d", plan.First, plan.Second, limit)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
