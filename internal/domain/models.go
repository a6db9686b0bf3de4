package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type HarvestLogID = uuid.UUID
type PlantID = uuid.UUID
type EventID = uuid.UUID
type ImageID = uuid.UUID

// Тип события растения
type EventType string

const (
	EventHarvest  EventType = "harvest"
	EventBloom    EventType = "bloom"
	EventSnapshot EventType = "snapshot"
)

func (t EventType) Valid() bool {
	switch t {
	case EventHarvest, EventBloom, EventSnapshot:
		return true
	}
	return false
}

// Запись об урожае
type HarvestLog struct {
	ID          HarvestLogID `json:"id"`
	CropName    string       `json:"crop_name"`
	Quantity    float64      `json:"quantity"`
	Unit        string       `json:"unit"`
	HarvestDate time.Time    `json:"harvest_date"`
	Location    string       `json:"location,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Растение на грядке
type Plant struct {
	ID          PlantID    `json:"id"`
	Name        string     `json:"name"`
	Variety     string     `json:"variety,omitempty"`
	PlantedDate *time.Time `json:"planted_date,omitempty"`
	Status      string     `json:"status"` // active|harvested|deceased|dormant
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Событие жизненного цикла растения (сбор, цветение, снимок состояния)
type PlantEvent struct {
	ID          EventID   `json:"id"`
	PlantID     *PlantID  `json:"plant_id,omitempty"`
	EventType   EventType `json:"event_type"`
	EventDate   time.Time `json:"event_date"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Фотография урожая (контент — в S3/MinIO)
type HarvestImage struct {
	ID           ImageID      `json:"id"`
	HarvestLogID HarvestLogID `json:"harvest_log_id"`
	FileName     string       `json:"file_name"`
	OriginalName string       `json:"original_name"`
	MIME         string       `json:"mime_type"`
	SizeBytes    int64        `json:"size_bytes"`
	PublicURL    string       `json:"public_url,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`

	// Где лежит контент
	StorageKey string `json:"-"`
}

// Агрегаты для /harvest-stats и /event-stats
type HarvestStats struct {
	TotalHarvests int64 `json:"total_harvests"`
	ThisMonth     int64 `json:"this_month"`
	ThisWeek      int64 `json:"this_week"`
}

type EventStats struct {
	TotalEvents int64            `json:"total_events"`
	ByType      map[string]int64 `json:"by_type"`
}
