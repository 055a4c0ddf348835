package reactions

import (
	"sync"

	"github.com/MrSnakeDoc/slapp/internal/domain"
)

// DefaultCapacity is the number of messages whose symbols stay live.
const DefaultCapacity = 50

// Cache keeps the Index of the most recently sent messages. Message ids grow
// over time, so evicting the smallest id drops the oldest message.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*Index
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*Index, capacity+1),
	}
}

// Store publishes idx under messageID. When the cache grows past capacity the
// entry with the smallest message id is evicted and its id returned.
func (c *Cache) Store(messageID string, idx *Index) (evicted string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[messageID] = idx
	if len(c.entries) <= c.capacity {
		return "", false
	}

	first := true
	for id := range c.entries {
		if first || lessID(id, evicted) {
			evicted = id
			first = false
		}
	}
	delete(c.entries, evicted)
	return evicted, true
}

// Consume removes and returns the entity behind symbol s on messageID.
// Unknown messages, unknown symbols and already consumed symbols report false.
func (c *Cache) Consume(messageID string, s Symbol) (domain.Entity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.entries[messageID]
	if !ok {
		return nil, false
	}
	e, ok := idx.take(s)
	if idx.Len() == 0 {
		delete(c.entries, messageID)
	}
	return e, ok
}

// Len returns the number of messages tracked.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Capacity returns the configured bound.
func (c *Cache) Capacity() int { return c.capacity }

// lessID compares decimal snowflake ids without parsing them.
func lessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
