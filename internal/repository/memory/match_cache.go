package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MatchCache keeps the ordered ids returned by the relevance oracle so that
// repeated AI searches do not hit the ML service again.
type MatchCache struct {
	cache *cache.Cache
}

func NewMatchCache(ttl time.Duration) *MatchCache {
	return &MatchCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func matchKey(viewerID uuid.UUID, query string) string {
	return fmt.Sprintf("%s|%s", viewerID, strings.ToLower(strings.TrimSpace(query)))
}

func (c *MatchCache) Save(viewerID uuid.UUID, query string, ids []uuid.UUID) {
	stored := make([]uuid.UUID, len(ids))
	copy(stored, ids)
	c.cache.Set(matchKey(viewerID, query), stored, cache.DefaultExpiration)
}

func (c *MatchCache) Get(viewerID uuid.UUID, query string) ([]uuid.UUID, bool) {
	if x, found := c.cache.Get(matchKey(viewerID, query)); found {
		return x.([]uuid.UUID), true
	}
	return nil, false
}

// Invalidate drops every cached search made by viewerID, e.g. after the
// viewer edits their skills.
func (c *MatchCache) Invalidate(viewerID uuid.UUID) {
	prefix := viewerID.String() + "|"
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}
