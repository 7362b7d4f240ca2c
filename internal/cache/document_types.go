package cache

import (
	"sync"
	"time"

	"documo/internal/models"
)

// DefaultDocumentTypeTTL bounds staleness between explicit invalidations.
const DefaultDocumentTypeTTL = 5 * time.Minute

// DocumentTypes is an in-memory, read-mostly cache of the document-type
// catalog. Callers on the mutation path must call Invalidate after any
// document-type write; between invalidations reads may be up to TTL stale.
type DocumentTypes struct {
	mu        sync.RWMutex
	ttl       time.Duration
	value     []models.DocumentType
	fetchedAt time.Time

	now func() time.Time
}

// NewDocumentTypes returns a cache with the given TTL (DefaultDocumentTypeTTL
// when ttl is zero or negative).
func NewDocumentTypes(ttl time.Duration) *DocumentTypes {
	if ttl <= 0 {
		ttl = DefaultDocumentTypeTTL
	}
	return &DocumentTypes{ttl: ttl, now: time.Now}
}

// Get returns the cached catalog and true when the entry is fresh.
func (c *DocumentTypes) Get() ([]models.DocumentType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil || c.now().Sub(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.value, true
}

// Set replaces the cached catalog wholesale.
func (c *DocumentTypes) Set(types []models.DocumentType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = types
	c.fetchedAt = c.now()
}

// Invalidate drops the cached catalog. The next Get misses.
func (c *DocumentTypes) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = nil
	c.fetchedAt = time.Time{}
}
