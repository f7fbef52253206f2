// Package cache memoriza resultados con vencimiento. El catálogo lo usa para
// no recalcular filter+sort de criterios repetidos.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]
	ttl   time.Duration
	now   func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

// New crea un caché con TTL por defecto y limpieza periódica cada cleanupEvery.
// Hay que llamar a Close para detener la limpieza.
func New[V any](defaultTTL, cleanupEvery time.Duration) *Cache[V] {
	c := &Cache[V]{
		items: make(map[string]entry[V]),
		ttl:   defaultTTL,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if cleanupEvery > 0 {
		go c.cleanupExpired(cleanupEvery)
	}
	return c
}

// Set guarda value; ttl opcional reemplaza al TTL por defecto
func (c *Cache[V]) Set(key string, value V, ttl ...time.Duration) {
	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{value: value, expiresAt: c.now().Add(duration)}
}

// Get devuelve false si la clave no existe o ya venció
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || c.now().After(item.expiresAt) {
		var zero V
		return zero, false
	}
	return item.value, true
}

// GetOrCompute devuelve el valor memorizado o lo calcula con fn y lo guarda
func (c *Cache[V]) GetOrCompute(key string, fn func() V) (V, bool) {
	if v, ok := c.Get(key); ok {
		return v, true
	}
	v := fn()
	c.Set(key, v)
	return v, false
}

func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry[V])
}

// Size cuenta también los vencidos que la limpieza aún no borró
func (c *Cache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close detiene la limpieza periódica; se puede llamar más de una vez
func (c *Cache[V]) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Cache[V]) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.purge()
		}
	}
}

func (c *Cache[V]) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}
