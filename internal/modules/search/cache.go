package search

import (
	"context"
	"encoding/json"
	"time"

	"github.com/carpediction/server/internal/modules/search/provider"
	pkgredis "github.com/carpediction/server/internal/pkg/redis"
	"go.uber.org/zap"
)

// Cache is a read-through Redis cache of successful provider entries.
// Failures are never cached, and every cache error degrades to a live
// lookup. A nil *Cache disables caching entirely.
type Cache struct {
	rc  *pkgredis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewCache builds a provider result cache. rc may be nil.
func NewCache(rc *pkgredis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if rc == nil {
		return nil
	}
	return &Cache{rc: rc, ttl: ttl, log: log.Named("search-cache")}
}

func cacheKey(providerName, query string) string {
	return "search:" + providerName + ":" + query
}

// Lookup returns the cached entry for (client, query) if present, falling
// back to a live client lookup and caching a success on the way out.
func (c *Cache) Lookup(ctx context.Context, client provider.Client, query string) provider.Result {
	if c == nil {
		return client.Lookup(ctx, query)
	}

	key := cacheKey(client.Name(), query)
	if raw, ok, err := c.rc.Get(ctx, key); err != nil {
		c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var entry provider.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err == nil {
			return provider.Result{Entry: &entry}
		}
		// poisoned value; drop it and fall through to a live lookup
		_ = c.rc.Del(ctx, key)
	}

	res := client.Lookup(ctx, query)
	if res.OK() {
		if data, err := json.Marshal(res.Entry); err == nil {
			if err := c.rc.Set(ctx, key, data, c.ttl); err != nil {
				c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return res
}
