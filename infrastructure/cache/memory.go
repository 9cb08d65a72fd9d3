package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// DefaultMaxEntries limita o mapa em memória; ao atingir o limite a entrada mais antiga sai
const DefaultMaxEntries = 4096

// MemoryCache expira as entradas pelo relógio injetado. ttl <= 0 mantém as entradas até serem
// despejadas pelo limite de tamanho.
type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	now        func() time.Time
	maxEntries int
	lastSweep  time.Time
}

func NewMemoryCache(ttl time.Duration, now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}

	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		now:        now,
		maxEntries: DefaultMaxEntries,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if c.ttl > 0 && !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepExpired(now)

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	c.entries[key] = memoryEntry{
		value:     stored,
		expiresAt: now.Add(c.ttl),
	}
	return nil
}

// Chaves derivadas do conteúdo mudam a cada alteração dos dados, então as antigas
// nunca voltam a ser lidas. A varredura roda no máximo uma vez por TTL.
func (c *MemoryCache) sweepExpired(now time.Time) {
	if c.ttl <= 0 || now.Sub(c.lastSweep) < c.ttl {
		return
	}

	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.lastSweep = now
}

func (c *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)

	for key, entry := range c.entries {
		if !found || entry.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt, found = key, entry.expiresAt, true
		}
	}

	if found {
		delete(c.entries, oldestKey)
	}
}

// Len retorna o número de entradas, inclusive as expiradas ainda não removidas
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
