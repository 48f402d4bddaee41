package cache

import (
	"context"
	"time"

	pkgredis "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/resilience"
)

// BreakerStore guards a Store with a circuit breaker so a Redis outage
// turns into fast cache misses instead of slow timeouts. A missing key is
// not a failure.
type BreakerStore struct {
	store   Store
	breaker *resilience.CircuitBreaker
}

func NewBreakerStore(store Store, breaker *resilience.CircuitBreaker) *BreakerStore {
	return &BreakerStore{store: store, breaker: breaker}
}

func (b *BreakerStore) Get(ctx context.Context, key string) (string, error) {
	var val string
	err := b.breaker.Execute(func() error {
		var err error
		val, err = b.store.Get(ctx, key)
		return err
	}, pkgredis.IsNilError)
	return val, err
}

func (b *BreakerStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return b.breaker.Execute(func() error {
		return b.store.Set(ctx, key, value, ttl)
	})
}

func (b *BreakerStore) FlushByPattern(ctx context.Context, pattern string) (int64, error) {
	var n int64
	err := b.breaker.Execute(func() error {
		var err error
		n, err = b.store.FlushByPattern(ctx, pattern)
		return err
	})
	return n, err
}
