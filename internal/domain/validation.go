package domain

import "time"

// Лимиты полей — как в схеме БД; детально валидирует слой HTTP.
const (
	MaxCropNameLen = 100
	MaxUnitLen     = 50
	MaxLocationLen = 200
	MaxNotesLen    = 2000
)

func ValidHarvestLog(h HarvestLog) bool {
	if h.CropName == "" || len(h.CropName) > MaxCropNameLen {
		return false
	}
	if h.Quantity <= 0 {
		return false
	}
	if h.Unit == "" || len(h.Unit) > MaxUnitLen {
		return false
	}
	if h.HarvestDate.IsZero() {
		return false
	}
	return len(h.Location) <= MaxLocationLen && len(h.Notes) <= MaxNotesLen
}

func ValidPlantEvent(e PlantEvent) bool {
	if !e.EventType.Valid() || e.EventDate.IsZero() {
		return false
	}
	return len(e.Location) <= MaxLocationLen && len(e.Notes) <= MaxNotesLen
}

// Страховка от заведомо мусорных дат в фильтрах
func ValidDateRange(from, to *time.Time) bool {
	if from != nil && to != nil {
		return !to.Before(*from)
	}
	return true
}
