package memcache

import "time"

// Entry — запись кеша с метаданными. Принадлежит создавшему её кешу:
// мутируется только Get (статистика доступа) и удаляется
// Delete/истечением/вытеснением, всегда под общим локом.
type Entry struct {
	Value        any
	CreatedAt    time.Time
	ExpiresAt    time.Time // zero — не истекает
	AccessCount  uint64
	LastAccessed time.Time // zero — ещё не читали
}

func (e *Entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// ключ для LRU: last_accessed, если был доступ, иначе created_at
func (e *Entry) accessTime() time.Time {
	if !e.LastAccessed.IsZero() {
		return e.LastAccessed
	}
	return e.CreatedAt
}
