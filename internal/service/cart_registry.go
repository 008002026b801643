package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/semanticshop/storefront/internal/cart"
	"github.com/semanticshop/storefront/internal/logger"
	"github.com/semanticshop/storefront/internal/repository"
	"github.com/semanticshop/storefront/internal/service/cache"
)

// SessionNamespacePrefix prefixes the store namespace of every BFF session.
const SessionNamespacePrefix = "session:"

// CartRegistry keeps one Shopper per BFF session. Idle shoppers are
// evicted and rehydrate from the store on their next request. A cached
// shopper re-reads its cart on every lookup so replicas sharing a store
// see each other's writes.
type CartRegistry struct {
	store    repository.KVRepositoryInterface
	rules    cart.Rules
	shoppers *ShardedCache[*Shopper]
	group    singleflight.Group
	log      zerolog.Logger
}

// NewCartRegistry creates a registry over store holding up to capacity
// shoppers for idle each.
func NewCartRegistry(store repository.KVRepositoryInterface, rules cart.Rules, capacity int, idle time.Duration) *CartRegistry {
	if capacity <= 0 {
		capacity = 10000
	}
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	r := &CartRegistry{
		store:    store,
		rules:    rules,
		shoppers: NewShardedCache[*Shopper]("shoppers", capacity, idle, 16),
		log:      logger.Component("cart-registry"),
	}
	r.shoppers.OnEvict(func(id string, _ *Shopper) {
		r.log.Debug().Str("session_id", id).Msg("Idle shopper evicted")
	})
	return r
}

// Shopper returns the shopper for sessionID, loading it on first use.
// Concurrent first lookups of one session share a single load.
func (r *CartRegistry) Shopper(ctx context.Context, sessionID string) *Shopper {
	if sh, ok := r.shoppers.Get(sessionID); ok {
		sh.Cart.Refresh(ctx)
		return sh
	}

	v, _, _ := r.group.Do(sessionID, func() (any, error) {
		if sh, ok := r.shoppers.Get(sessionID); ok {
			sh.Cart.Refresh(ctx)
			return sh, nil
		}
		store := repository.Namespaced(r.store, SessionNamespacePrefix+sessionID)
		sh := NewShopper(context.WithoutCancel(ctx), sessionID, store, r.rules)
		r.shoppers.Set(sessionID, sh)
		return sh, nil
	})
	return v.(*Shopper)
}

// Forget drops the cached shopper. Its stored state is kept.
func (r *CartRegistry) Forget(sessionID string) {
	r.shoppers.Invalidate(sessionID)
}

// Len returns the number of live shoppers.
func (r *CartRegistry) Len() int {
	return r.shoppers.Len()
}

// Metrics returns the registry cache metrics.
func (r *CartRegistry) Metrics() cache.Metrics {
	return r.shoppers.Metrics()
}

// Close stops the eviction goroutines.
func (r *CartRegistry) Close() {
	r.shoppers.Stop()
}
