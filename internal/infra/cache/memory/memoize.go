package memcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"reflect"
	"runtime"
	"time"
)

// ArgsKey строит детерминированный дайджест аргументов вызова:
// канонический JSON (ключи map сериализуются отсортированными) и
// sha256 до фиксированной длины. Используется мемоизацией и
// дайджестами фильтров списков.
func ArgsKey(args ...any) string {
	raw, err := json.Marshal(args)
	if err != nil {
		// не-сериализуемые аргументы: откат на текстовое представление
		raw = []byte(hex.EncodeToString([]byte(reflect.TypeOf(args).String())))
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// LoadFunc — функция с одним результатом, пригодная для мемоизации.
type LoadFunc func(ctx context.Context, args ...any) (any, error)

// Memoized оборачивает функцию кеш-прослойкой: ключ складывается из
// префикса, квалифицированного имени функции и дайджеста аргументов.
type Memoized struct {
	cache *Cache
	ttl   time.Duration
	base  string
	fn    LoadFunc
}

// NewMemoized строит обёртку. keyPrefix может быть пустым.
func NewMemoized(c *Cache, keyPrefix string, ttl time.Duration, fn LoadFunc) *Memoized {
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	base := name
	if keyPrefix != "" {
		base = keyPrefix + ":" + name
	}
	return &Memoized{cache: c, ttl: ttl, base: base, fn: fn}
}

func (m *Memoized) key(args ...any) string { return m.base + ":" + ArgsKey(args...) }

// Call — проверка кеша, на промахе вызов исходной функции и запись
// результата. Ошибки не кешируются.
func (m *Memoized) Call(ctx context.Context, args ...any) (any, error) {
	key := m.key(args...)
	if v, ok := m.cache.Get(key); ok {
		return v, nil
	}
	v, err := m.fn(ctx, args...)
	if err != nil {
		return nil, err
	}
	m.cache.SetTTL(key, v, m.ttl)
	return v, nil
}

// Invalidate точечно удаляет результат для конкретных аргументов.
func (m *Memoized) Invalidate(args ...any) bool {
	return m.cache.Delete(m.key(args...))
}

// Clear чистит весь кеш целиком (не только ключи этой функции).
func (m *Memoized) Clear() { m.cache.Clear() }
