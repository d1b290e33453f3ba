// Package cache provides the two-layer caching infrastructure: a local
// in-process LRU in front of an optional Redis backend.
package cache

import (
	"sync"
	"time"
)

// LocalCache provides thread-safe in-memory caching with LRU eviction
type LocalCache struct {
	items   map[string]*localCacheItem
	lruList *lruList
	maxSize int
	mu      sync.RWMutex
}

// localCacheItem represents a cached item with TTL and LRU tracking
type localCacheItem struct {
	data      []byte
	expiresAt time.Time
	lruNode   *lruNode
}

// lruList implements a doubly-linked list for LRU tracking
type lruList struct {
	head *lruNode
	tail *lruNode
}

// lruNode represents a node in the LRU list
type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

// NewLocalCache creates a new local cache with specified maximum size
func NewLocalCache(maxSize int) *LocalCache {
	if maxSize <= 0 {
		maxSize = 1000 // Default size
	}

	lru := &lruList{}
	lru.head = &lruNode{}
	lru.tail = &lruNode{}
	lru.head.next = lru.tail
	lru.tail.prev = lru.head

	return &LocalCache{
		items:   make(map[string]*localCacheItem),
		lruList: lru,
		maxSize: maxSize,
	}
}

// Get retrieves an item from the cache
func (lc *LocalCache) Get(key string) ([]byte, bool) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	item, exists := lc.items[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expiresAt) {
		lc.deleteItem(key, item)
		return nil, false
	}

	lc.moveToFront(item.lruNode)
	return item.data, true
}

// Set stores an item in the cache with TTL
func (lc *LocalCache) Set(key string, data []byte, ttl time.Duration) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	expiresAt := time.Now().Add(ttl)

	if existing, exists := lc.items[key]; exists {
		existing.data = data
		existing.expiresAt = expiresAt
		lc.moveToFront(existing.lruNode)
		return
	}

	node := &lruNode{key: key}
	lc.items[key] = &localCacheItem{
		data:      data,
		expiresAt: expiresAt,
		lruNode:   node,
	}
	lc.addToFront(node)
	lc.evictIfNecessary()
}

// Delete removes an item from the cache
func (lc *LocalCache) Delete(key string) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if item, exists := lc.items[key]; exists {
		lc.deleteItem(key, item)
	}
}

// Len returns the number of items currently cached, expired ones included
func (lc *LocalCache) Len() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.items)
}

// Clear removes all items from the cache
func (lc *LocalCache) Clear() {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.items = make(map[string]*localCacheItem)
	lc.lruList.head.next = lc.lruList.tail
	lc.lruList.tail.prev = lc.lruList.head
}

func (lc *LocalCache) deleteItem(key string, item *localCacheItem) {
	delete(lc.items, key)
	lc.removeNode(item.lruNode)
}

func (lc *LocalCache) evictIfNecessary() {
	for len(lc.items) > lc.maxSize {
		oldest := lc.lruList.tail.prev
		if oldest == lc.lruList.head {
			return
		}
		if item, exists := lc.items[oldest.key]; exists {
			lc.deleteItem(oldest.key, item)
		} else {
			lc.removeNode(oldest)
		}
	}
}

func (lc *LocalCache) addToFront(node *lruNode) {
	node.prev = lc.lruList.head
	node.next = lc.lruList.head.next
	lc.lruList.head.next.prev = node
	lc.lruList.head.next = node
}

func (lc *LocalCache) removeNode(node *lruNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
	node.prev = nil
	node.next = nil
}

func (lc *LocalCache) moveToFront(node *lruNode) {
	lc.removeNode(node)
	lc.addToFront(node)
}
