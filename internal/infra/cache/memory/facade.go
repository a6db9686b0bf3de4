package memcache

import (
	"time"

	"github.com/EgorLis/garden-log/internal/domain"
)

// TTL по волатильности: детальные записи живут дольше всего,
// агрегатная статистика — меньше всего.
const (
	DetailTTL = 600 * time.Second
	ListTTL   = 300 * time.Second
	StatsTTL  = 180 * time.Second
)

// Manager — тонкий именующий слой над Cache: каждой сущности свой
// неймспейс ключей и политика TTL. Инвалидация одной записи сносит и
// все списочные кеши её сущности — мы не отслеживаем, какие списки от
// какой записи зависят, поэтому меняем точность на корректность.
type Manager struct {
	cache *Cache
}

func NewManager(c *Cache) *Manager { return &Manager{cache: c} }

func (m *Manager) Cache() *Cache { return m.cache }

// ---- записи об урожае ----

func (m *Manager) GetHarvestLog(id domain.HarvestLogID) (domain.HarvestLog, bool) {
	v, ok := m.cache.Get(domain.CacheKeyHarvestLog(id))
	if !ok {
		return domain.HarvestLog{}, false
	}
	h, ok := v.(domain.HarvestLog)
	return h, ok
}

func (m *Manager) SetHarvestLog(h domain.HarvestLog) {
	m.cache.SetTTL(domain.CacheKeyHarvestLog(h.ID), h, DetailTTL)
}

func (m *Manager) InvalidateHarvestLog(id domain.HarvestLogID) {
	m.cache.Delete(domain.CacheKeyHarvestLog(id))
	m.InvalidateHarvestLogLists()
}

func (m *Manager) GetHarvestLogList(filters ...any) ([]byte, bool) {
	v, ok := m.cache.Get(domain.CacheKeyHarvestLogListPrefix + ArgsKey(filters...))
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Manager) SetHarvestLogList(payload []byte, filters ...any) {
	m.cache.SetTTL(domain.CacheKeyHarvestLogListPrefix+ArgsKey(filters...), payload, ListTTL)
}

func (m *Manager) InvalidateHarvestLogLists() int {
	return m.cache.DeletePrefix(domain.CacheKeyHarvestLogListPrefix)
}

func (m *Manager) GetHarvestStats() (domain.HarvestStats, bool) {
	v, ok := m.cache.Get(domain.CacheKeyHarvestStats)
	if !ok {
		return domain.HarvestStats{}, false
	}
	s, ok := v.(domain.HarvestStats)
	return s, ok
}

func (m *Manager) SetHarvestStats(s domain.HarvestStats) {
	m.cache.SetTTL(domain.CacheKeyHarvestStats, s, StatsTTL)
}

func (m *Manager) InvalidateHarvestStats() {
	m.cache.Delete(domain.CacheKeyHarvestStats)
}

// ---- события растений ----

func (m *Manager) GetPlantEvent(id domain.EventID) (domain.PlantEvent, bool) {
	v, ok := m.cache.Get(domain.CacheKeyPlantEvent(id))
	if !ok {
		return domain.PlantEvent{}, false
	}
	e, ok := v.(domain.PlantEvent)
	return e, ok
}

func (m *Manager) SetPlantEvent(e domain.PlantEvent) {
	m.cache.SetTTL(domain.CacheKeyPlantEvent(e.ID), e, DetailTTL)
}

func (m *Manager) InvalidatePlantEvent(id domain.EventID) {
	m.cache.Delete(domain.CacheKeyPlantEvent(id))
	m.InvalidateEventLists()
}

func (m *Manager) GetEventList(filters ...any) ([]byte, bool) {
	v, ok := m.cache.Get(domain.CacheKeyEventListPrefix + ArgsKey(filters...))
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Manager) SetEventList(payload []byte, filters ...any) {
	m.cache.SetTTL(domain.CacheKeyEventListPrefix+ArgsKey(filters...), payload, ListTTL)
}

func (m *Manager) InvalidateEventLists() int {
	return m.cache.DeletePrefix(domain.CacheKeyEventListPrefix)
}

func (m *Manager) GetEventStats() (domain.EventStats, bool) {
	v, ok := m.cache.Get(domain.CacheKeyEventStats)
	if !ok {
		return domain.EventStats{}, false
	}
	s, ok := v.(domain.EventStats)
	return s, ok
}

func (m *Manager) SetEventStats(s domain.EventStats) {
	m.cache.SetTTL(domain.CacheKeyEventStats, s, StatsTTL)
}

func (m *Manager) InvalidateEventStats() {
	m.cache.Delete(domain.CacheKeyEventStats)
}
