package cache

import (
	"sync"
	"time"
)

type ttlEntry struct {
	value   interface{}
	expires time.Time
}

// CacheWithTTL is a thread safe LRU whose entries expire after TTL.
type CacheWithTTL struct {
	lru  *LRU
	lock sync.Mutex
	TTL  time.Duration
	now  func() time.Time
}

// NewTTL creates a cache holding at most size entries, each one for at most ttl.
func NewTTL(size int, ttl time.Duration) (*CacheWithTTL, error) {
	lru, err := NewLRU(size, nil)
	if err != nil {
		return nil, err
	}
	return &CacheWithTTL{lru: lru, TTL: ttl, now: time.Now}, nil
}

func (c *CacheWithTTL) Add(key string, value interface{}) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lru.Add(key, &ttlEntry{value: value, expires: c.now().Add(c.TTL)})
}

// Get returns a live entry. Expired entries are dropped on access.
func (c *CacheWithTTL) Get(key string) (interface{}, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	raw, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	ent := raw.(*ttlEntry)
	if !c.now().Before(ent.expires) {
		c.lru.Remove(key)
		return nil, false
	}
	return ent.value, true
}

func (c *CacheWithTTL) Contains(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *CacheWithTTL) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lru.Remove(key)
}

// Purge drops every expired entry and returns how many were dropped.
func (c *CacheWithTTL) Purge() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	now := c.now()
	dropped := 0
	for _, key := range c.lru.Keys() {
		raw, _ := c.lru.Peek(key)
		if !now.Before(raw.(*ttlEntry).expires) {
			c.lru.Remove(key)
			dropped++
		}
	}
	return dropped
}

func (c *CacheWithTTL) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lru.Len()
}
