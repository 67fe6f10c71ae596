// Package lru provides the fixed-capacity recency cache used for query results.
package lru

import "container/list"

type item[V any] struct {
	key   string
	value V
}

// Cache holds at most Capacity entries. The most recently used entry sits at the
// front of the list; inserting past capacity evicts from the back.
type Cache[V any] struct {
	capacity int
	order    *list.List
	index    map[string]*list.Element
	onEvict  func(key string, value V)
}

// New creates a cache. A capacity below 1 is raised to 1.
func New[V any](capacity int) *Cache[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

// OnEvict registers fn to be called for every entry dropped by capacity pressure
// or Remove. Clear does not call it.
func (c *Cache[V]) OnEvict(fn func(key string, value V)) {
	c.onEvict = fn
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[V]) Get(key string) (V, bool) {
	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*item[V]).value, true
}

// Put inserts or replaces the value for key and marks it most recently used.
func (c *Cache[V]) Put(key string, value V) {
	if el, ok := c.index[key]; ok {
		el.Value.(*item[V]).value = value
		c.order.MoveToFront(el)
		return
	}

	c.index[key] = c.order.PushFront(&item[V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		c.removeElement(c.order.Back())
	}
}

// Contains reports whether key is cached without touching its recency.
func (c *Cache[V]) Contains(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Remove drops key. It returns false when key was not cached.
func (c *Cache[V]) Remove(key string) bool {
	el, ok := c.index[key]
	if !ok {
		return false
	}
	c.removeElement(el)
	return true
}

// Clear empties the cache.
func (c *Cache[V]) Clear() {
	c.order.Init()
	clear(c.index)
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int { return c.order.Len() }

// Capacity returns the maximum number of entries.
func (c *Cache[V]) Capacity() int { return c.capacity }

// Keys returns cached keys from most to least recently used.
func (c *Cache[V]) Keys() []string {
	keys := make([]string, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*item[V]).key)
	}
	return keys
}

func (c *Cache[V]) removeElement(el *list.Element) {
	it := c.order.Remove(el).(*item[V])
	delete(c.index, it.key)
	if c.onEvict != nil {
		c.onEvict(it.key, it.value)
	}
}
