package restapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/metrics"
	"github.com/eko/gocache/lib/v4/store"
	bigcache_store "github.com/eko/gocache/store/bigcache/v4"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/nsac-nust/stray-tracker/prom"
	"github.com/nsac-nust/stray-tracker/restapi/restapi_handlers"
)

var (
	cacheMetricsOnce sync.Once
	cacheMetrics     *metrics.Prometheus
)

// trendingCacheMetrics registers the gocache collector with the default registry, once per process.
func trendingCacheMetrics() *metrics.Prometheus {
	cacheMetricsOnce.Do(func() {
		cacheMetrics = metrics.NewPrometheus("straytracker")
	})
	return cacheMetrics
}

// trendingEntry is the public summary of an animal in the trending list.
type trendingEntry struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Likes    int64  `json:"likes"`
	ImageURL string `json:"image_url"`
	Sector   string `json:"sector"`
}

// trendingCache holds encoded trending responses so the store is only ranked once per ttl.
type trendingCache struct {
	manager cache.CacheInterface[[]byte]
	ttl     time.Duration
	limit   int
}

// newTrendingCache caches nothing when ttl or sizeBytes is zero.
func newTrendingCache(ctx context.Context, limit int, ttl time.Duration, sizeBytes int64) (*trendingCache, error) {
	if limit <= 0 {
		return nil, errors.New("trending limit must be positive")
	}
	stores := []cache.SetterCacheInterface[[]byte]{}
	if ttl > 0 && sizeBytes > 0 {
		c := bigcache.DefaultConfig(ttl)
		c.HardMaxCacheSize = max(int(sizeBytes/1048576), 1) // in MB
		c.Verbose = false
		c.Shards = 64
		client, err := bigcache.New(ctx, c)
		if err != nil {
			return nil, err
		}
		stores = append(stores, cache.New[[]byte](bigcache_store.NewBigcache(client)))
	}
	return &trendingCache{
		manager: cache.NewMetric(trendingCacheMetrics(), cache.NewChain(stores...)),
		ttl:     ttl,
		limit:   limit,
	}, nil
}

func (t *trendingCache) key() string {
	return fmt.Sprintf("trending.%d", t.limit)
}

// get returns nil on a cache miss.
func (t *trendingCache) get(ctx context.Context) ([]byte, error) {
	prom.TrendingCacheLookups.Inc()
	val, err := t.manager.Get(ctx, t.key())
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, nil
		}
		return nil, err
	}
	if val != nil {
		prom.TrendingCacheHits.Inc()
	}
	return val, nil
}

func (t *trendingCache) put(ctx context.Context, raw []byte) error {
	return t.manager.Set(ctx, t.key(), raw, store.WithExpiration(t.ttl))
}

// GetTrending lists the most liked animals.
func (s *Server) GetTrending(c *gin.Context) {
	ctx := c.Request.Context()
	raw, err := s.trending.get(ctx)
	if err != nil {
		// a broken cache shouldn't take the endpoint down
		c.Error(err)
		raw = nil
	}
	if raw == nil {
		top, err := s.animals.Trending(ctx, s.trending.limit)
		if err != nil {
			restapi_handlers.JSONError(c, 500, "trending lookup failed", err)
			return
		}
		entries := make([]trendingEntry, 0, len(top))
		for _, a := range top {
			entries = append(entries, trendingEntry{ID: a.ID, Name: a.Name, Likes: a.Likes, ImageURL: a.ImageURL, Sector: a.Sector})
		}
		raw, err = json.Marshal(entries)
		if err != nil {
			restapi_handlers.JSONError(c, 500, "trending encoding failed", err)
			return
		}
		if err := s.trending.put(ctx, raw); err != nil {
			c.Error(err)
		}
	}
	c.Data(200, "application/json; charset=utf-8", raw)
}
