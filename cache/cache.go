// Package cache provides a keyed TTL cache for rendered pages.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// PageCache stores rendered page bodies for a fixed time window. Entries
// expire on their own; Clear drops everything at once so tests and
// mutation-heavy paths can force a fresh render.
type PageCache struct {
	lru *expirable.LRU[string, []byte]
}

const maxEntries = 128

func New(ttl time.Duration) *PageCache {
	return &PageCache{
		lru: expirable.NewLRU[string, []byte](maxEntries, nil, ttl),
	}
}

func (c *PageCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *PageCache) Set(key string, body []byte) {
	c.lru.Add(key, body)
}

func (c *PageCache) Clear() {
	c.lru.Purge()
}
