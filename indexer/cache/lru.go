package cache

import (
	"container/list"
	"errors"
)

type EvictionCallback func(key string, value interface{})

// LRU is a non-thread safe fixed size LRU cache
type LRU struct {
	size         int
	evictionList *list.List
	items        map[string]*list.Element
	onEviction   EvictionCallback
}

// entry is used to hold value in an evictionList
type entry struct {
	key   string
	value interface{}
}

// NewLRU creates a new LRU of the given size
func NewLRU(size int, onEviction EvictionCallback) (*LRU, error) {
	if size <= 0 {
		return nil, errors.New("size must be > 0")
	}
	return &LRU{
		size:         size,
		evictionList: list.New(),
		items:        make(map[string]*list.Element),
		onEviction:   onEviction,
	}, nil
}

// Clear the cache
func (c *LRU) Clear() {
	for k, v := range c.items {
		if c.onEviction != nil {
			c.onEviction(k, v.Value.(*entry).value)
		}
		delete(c.items, k)
	}
	c.evictionList.Init()
}

// Add a key with a given value
// returns true if an element was evicted so this one could be added
func (c *LRU) Add(key string, value interface{}) bool {
	if ent, ok := c.items[key]; ok {
		c.evictionList.MoveToFront(ent)
		ent.Value.(*entry).value = value
		return false
	}
	c.items[key] = c.evictionList.PushFront(&entry{key, value})
	shouldEvict := c.evictionList.Len() > c.size
	if shouldEvict {
		c.evictOldest()
	}
	return shouldEvict
}

// Get looks up a key's value from the cache.
// this updates the recent-ness of the cache
func (c *LRU) Get(key string) (interface{}, bool) {
	if ent, ok := c.items[key]; ok {
		c.evictionList.MoveToFront(ent)
		return ent.Value.(*entry).value, true
	}
	return nil, false
}

// Contains checks if a key is in the cache, without updating the recent-ness.
func (c *LRU) Contains(key string) bool {
	_, ok := c.items[key]
	return ok
}

// Peek returns the key value (or nil if not found) without updating
// the "recently used"-ness of the key.
func (c *LRU) Peek(key string) (interface{}, bool) {
	if ent, ok := c.items[key]; ok {
		return ent.Value.(*entry).value, true
	}
	return nil, false
}

// Remove removes the provided key from the cache, returning if the
// key was contained.
func (c *LRU) Remove(key string) bool {
	if ent, ok := c.items[key]; ok {
		c.remove(ent)
		return true
	}
	return false
}

// Keys returns the cache keys, oldest first.
func (c *LRU) Keys() []string {
	keys := make([]string, 0, len(c.items))
	for ent := c.evictionList.Back(); ent != nil; ent = ent.Prev() {
		keys = append(keys, ent.Value.(*entry).key)
	}
	return keys
}

// Len returns the number of items in the cache
func (c *LRU) Len() int {
	return c.evictionList.Len()
}

// Resize changes the cache size
// returns the number of items removed when the cache shrinks
func (c *LRU) Resize(newSize int) int {
	diff := c.Len() - newSize
	if diff < 0 {
		diff = 0
	}
	for i := 0; i < diff; i++ {
		c.evictOldest()
	}
	c.size = newSize
	return diff
}

func (c *LRU) evictOldest() {
	if oldest := c.evictionList.Back(); oldest != nil {
		c.remove(oldest)
	}
}

// remove an element from the cache and from our items
func (c *LRU) remove(e *list.Element) {
	c.evictionList.Remove(e)
	ent := e.Value.(*entry)
	delete(c.items, ent.key)
	if c.onEviction != nil {
		c.onEviction(ent.key, ent.value)
	}
}
