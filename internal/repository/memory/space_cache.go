package memory

import (
	"time"

	"ai-classroom-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SpaceCache is a per-process read cache for Space records. The chat
// path resolves the Gem on every turn; caching avoids one store read
// per message. Entries expire so teacher Gem edits become visible
// within the TTL, and UpdateGem callers invalidate eagerly.
type SpaceCache struct {
	cache *cache.Cache
}

func NewSpaceCache() *SpaceCache {
	// Short default expiration: a stale Gem only survives until the
	// next purge window.
	c := cache.New(2*time.Minute, 5*time.Minute)
	return &SpaceCache{
		cache: c,
	}
}

func (r *SpaceCache) Save(space *entity.Space) {
	r.cache.Set(space.Id.String(), space, cache.DefaultExpiration)
}

func (r *SpaceCache) Get(spaceID string) (*entity.Space, bool) {
	if x, found := r.cache.Get(spaceID); found {
		return x.(*entity.Space), true
	}
	return nil, false
}

func (r *SpaceCache) Invalidate(spaceID string) {
	r.cache.Delete(spaceID)
}
