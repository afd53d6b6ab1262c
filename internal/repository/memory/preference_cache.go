package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PreferenceCache keeps payment-gateway checkout preferences per campaign so
// repeated checkout requests reuse the preference instead of creating a new
// one at the gateway on every hit.
type PreferenceCache struct {
	cache *cache.Cache
}

func NewPreferenceCache() *PreferenceCache {
	// Preferences expire gateway-side after a day; mirror that here and
	// purge stale entries every hour.
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &PreferenceCache{
		cache: c,
	}
}

func (c *PreferenceCache) Save(campaignId uuid.UUID, preferenceId string) {
	c.cache.Set(campaignId.String(), preferenceId, cache.DefaultExpiration)
}

func (c *PreferenceCache) Get(campaignId uuid.UUID) (string, bool) {
	if x, found := c.cache.Get(campaignId.String()); found {
		return x.(string), true
	}
	return "", false
}

func (c *PreferenceCache) Delete(campaignId uuid.UUID) {
	c.cache.Delete(campaignId.String())
}
