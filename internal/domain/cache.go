package domain

// Ключи кеша — единое место, чтобы не расползались по коду.
// Списки кешируются по префиксу + дайджест фильтров; инвалидация одной
// записи грубо сносит все списки её сущности (см. facade).
const (
	CacheKeyHarvestLogListPrefix = "harvest_logs:list:"
	CacheKeyEventListPrefix      = "plant_events:list:"
	CacheKeyHarvestStats         = "harvest_stats"
	CacheKeyEventStats           = "event_stats"
)

func CacheKeyHarvestLog(id HarvestLogID) string { return "harvest_log:" + id.String() }
func CacheKeyPlantEvent(id EventID) string      { return "plant_event:" + id.String() }
