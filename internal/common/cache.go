package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Add stores value only when key is absent and reports whether it was
// stored. Readers use it so they can never overwrite a newer value a
// writer published with Set.
func (c *Cache) Add(key string, value interface{}) bool {
	return c.Cache.Add(key, value, cache.DefaultExpiration) == nil
}

func (c *Cache) Delete(key string) {
	c.Cache.Delete(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyEntryBySlug(slug string) string {
	return "entry_by_slug:" + slug
}

func CacheKeyAdminToken(token string) string {
	return "admin_token:" + token
}
