package restapi

import (
	"time"

	"github.com/bluele/gcache"

	"railroute.dev/internal/gtfs"
	"railroute.dev/internal/models"
	"railroute.dev/internal/stations"
)

type cachedTrip struct {
	snapshot   *gtfs.Snapshot
	entry      models.TripEntry
	references models.ReferencesModel
}

// tripCache memoizes resolved trips per normalized (from, to) pair. An entry only
// answers for the snapshot it was computed on. A nil cache is disabled.
type tripCache struct {
	lru gcache.Cache
}

func newTripCache(size int, ttl time.Duration) *tripCache {
	if size <= 0 {
		return nil
	}
	builder := gcache.New(size).LRU()
	if ttl > 0 {
		builder = builder.Expiration(ttl)
	}
	return &tripCache{lru: builder.Build()}
}

func tripCacheKey(from, to string) string {
	return stations.Normalize(from) + "\x00" + stations.Normalize(to)
}

func (c *tripCache) get(snapshot *gtfs.Snapshot, key string) (cachedTrip, bool) {
	if c == nil {
		return cachedTrip{}, false
	}
	v, err := c.lru.Get(key)
	if err != nil {
		return cachedTrip{}, false
	}
	hit, ok := v.(cachedTrip)
	if !ok || hit.snapshot != snapshot {
		return cachedTrip{}, false
	}
	return hit, true
}

func (c *tripCache) put(key string, value cachedTrip) {
	if c == nil {
		return
	}
	_ = c.lru.Set(key, value)
}

func (c *tripCache) reset(*gtfs.Snapshot) {
	if c == nil {
		return
	}
	c.lru.Purge()
}

func (c *tripCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len(false)
}
