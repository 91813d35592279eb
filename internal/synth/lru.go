package synth

import (
	"container/list"
	"sync"

	"github.com/researchsynth/researchsynth/internal/models"
)

// docLRU is a thread-safe LRU cache of documents, keyed by document ID.
// It sits in front of sqlite so hot point lookups skip the database.
type docLRU struct {
	capacity int
	cache    map[string]*list.Element
	list     *list.List
	mu       sync.Mutex
}

type lruEntry struct {
	key string
	doc *models.Document
}

func newDocLRU(capacity int) *docLRU {
	if capacity <= 0 {
		capacity = 4096
	}
	return &docLRU{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		list:     list.New(),
	}
}

// Get retrieves a document and marks it most recently used.
func (lru *docLRU) Get(key string) (*models.Document, bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	elem, ok := lru.cache[key]
	if !ok {
		return nil, false
	}
	lru.list.MoveToFront(elem)
	return elem.Value.(*lruEntry).doc, true
}

// Put inserts or refreshes a document, evicting the least recently used
// entry when over capacity.
func (lru *docLRU) Put(key string, doc *models.Document) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	if elem, ok := lru.cache[key]; ok {
		lru.list.MoveToFront(elem)
		elem.Value.(*lruEntry).doc = doc
		return
	}

	elem := lru.list.PushFront(&lruEntry{key: key, doc: doc})
	lru.cache[key] = elem

	if lru.list.Len() > lru.capacity {
		oldest := lru.list.Back()
		if oldest != nil {
			lru.list.Remove(oldest)
			delete(lru.cache, oldest.Value.(*lruEntry).key)
		}
	}
}

// Remove drops a document from the cache.
func (lru *docLRU) Remove(key string) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	if elem, ok := lru.cache[key]; ok {
		lru.list.Remove(elem)
		delete(lru.cache, key)
	}
}

// Clear empties the cache.
func (lru *docLRU) Clear() {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	lru.cache = make(map[string]*list.Element)
	lru.list.Init()
}

// Len returns the number of cached documents.
func (lru *docLRU) Len() int {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	return lru.list.Len()
}
