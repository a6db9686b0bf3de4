// Package memcache — потокобезопасный in-process кеш с ограничением
// размера, TTL на запись и LRU-вытеснением. Состояние процесс-локальное:
// несколько инстансов сервиса держат независимые кеши.
package memcache

import (
	"log"
	"strings"
	"sync"
	"time"
)

type Cache struct {
	mu         sync.Mutex
	entries    map[string]*Entry
	maxSize    int
	defaultTTL time.Duration
	logger     *log.Logger
}

type Stats struct {
	Entries  int    `json:"total_entries"`
	MaxSize  int    `json:"max_size"`
	Accesses uint64 `json:"total_accesses"`
	Expired  int    `json:"expired_entries"`
}

func New(maxSize int, defaultTTL time.Duration, logger *log.Logger) *Cache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Cache{
		entries:    make(map[string]*Entry),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// Get возвращает значение по ключу. Промах — не ошибка.
// Истёкшая запись удаляется лениво и считается отсутствующей,
// даже если фоновая чистка до неё ещё не дошла.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	now := time.Now()
	if e.expired(now) {
		delete(c.entries, key)
		return nil, false
	}
	e.AccessCount++
	e.LastAccessed = now
	return e.Value, true
}

// Set кладёт значение с TTL по умолчанию.
func (c *Cache) Set(key string, val any) {
	c.SetTTL(key, val, c.defaultTTL)
}

// SetTTL кладёт значение с явным TTL; ttl <= 0 — запись не истекает.
// Если кеш полон и ключ новый, сперва вытесняется одна LRU-запись,
// так что размер никогда не превышает maxSize.
func (c *Cache) SetTTL(key string, val any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if len(c.entries) >= c.maxSize {
		if _, exists := c.entries[key]; !exists {
			c.evictLRU()
		}
	}

	e := &Entry{Value: val, CreatedAt: now}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	c.entries[key] = e
}

// Delete удаляет запись; true — если она была.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		return true
	}
	return false
}

// Clear безусловно сносит все записи, независимо от TTL.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	if c.logger != nil {
		c.logger.Println("cache cleared")
	}
}

// DeletePrefix удаляет все записи с данным префиксом ключа.
// Линейный скан всего кеша — грубая инвалидация списков (см. Manager).
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// CleanupExpired сканирует все записи и выкидывает истёкшие.
// Вызывается фоновой чисткой, не на пути запроса.
func (c *Cache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	n := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			n++
		}
	}
	if n > 0 && c.logger != nil {
		c.logger.Printf("cleanup: removed %d expired entries", n)
	}
	return n
}

// GetStats — размер, вместимость, суммарные обращения и число
// истёкших-но-ещё-не-вычищенных записей.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	s := Stats{Entries: len(c.entries), MaxSize: c.maxSize}
	for _, e := range c.entries {
		s.Accesses += e.AccessCount
		if e.expired(now) {
			s.Expired++
		}
	}
	return s
}

// Чистый LRU: кандидат — запись с минимальным last_accessed
// (или created_at, если её ни разу не читали). Линейный скан по всем
// записям; вызывается только под уже взятым локом.
func (c *Cache) evictLRU() {
	var lruKey string
	var lruTime time.Time
	for key, e := range c.entries {
		at := e.accessTime()
		if lruKey == "" || at.Before(lruTime) {
			lruKey, lruTime = key, at
		}
	}
	if lruKey != "" {
		delete(c.entries, lruKey)
		if c.logger != nil {
			c.logger.Printf("lru eviction: %s", lruKey)
		}
	}
}
