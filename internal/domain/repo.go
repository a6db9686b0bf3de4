package domain

import (
	"context"
	"time"

	"github.com/EgorLis/garden-log/internal/pagination"
)

// Фильтры списка записей об урожае.
// Search ищет подстроку в notes, диапазон — по harvest_date.
type HarvestLogFilter struct {
	CropName string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Фильтры списка событий растений
type PlantEventFilter struct {
	PlantID   *PlantID
	EventType EventType
	Search    string
	DateFrom  *time.Time
	DateTo    *time.Time
}

type HarvestLogsRepo interface {
	CreateHarvestLog(ctx context.Context, h HarvestLog) (HarvestLog, error)
	HarvestLogByID(ctx context.Context, id HarvestLogID) (HarvestLog, error)
	UpdateHarvestLog(ctx context.Context, id HarvestLogID, p HarvestLogPatch) (HarvestLog, error)
	DeleteHarvestLog(ctx context.Context, id HarvestLogID) error
	// Кейсет-пагинация; withTotal — дорогой точный счётчик, по запросу
	HarvestLogsList(ctx context.Context, params pagination.Params, f HarvestLogFilter, withTotal bool) (pagination.Page[HarvestLog], error)
	HarvestStats(ctx context.Context, now time.Time) (HarvestStats, error)
}

type PlantsRepo interface {
	CreatePlant(ctx context.Context, p Plant) (Plant, error)
	PlantByID(ctx context.Context, id PlantID) (Plant, error)
	PlantsList(ctx context.Context) ([]Plant, error)
	DeletePlant(ctx context.Context, id PlantID) error
}

type EventsRepo interface {
	CreateEvent(ctx context.Context, e PlantEvent) (PlantEvent, error)
	EventByID(ctx context.Context, id EventID) (PlantEvent, error)
	UpdateEvent(ctx context.Context, id EventID, p PlantEventPatch) (PlantEvent, error)
	DeleteEvent(ctx context.Context, id EventID) error
	EventsList(ctx context.Context, params pagination.Params, f PlantEventFilter, withTotal bool) (pagination.Page[PlantEvent], error)
	EventStats(ctx context.Context) (EventStats, error)
}

type ImagesRepo interface {
	CreateImage(ctx context.Context, img HarvestImage) (HarvestImage, error)
	ImageByID(ctx context.Context, id ImageID) (HarvestImage, error)
	ImagesByHarvestLog(ctx context.Context, logID HarvestLogID) ([]HarvestImage, error)
	DeleteImage(ctx context.Context, id ImageID) error
}

// Частичные обновления: nil — поле не меняем
type HarvestLogPatch struct {
	CropName    *string
	Quantity    *float64
	Unit        *string
	HarvestDate *time.Time
	Location    *string
	Notes       *string
}

type PlantEventPatch struct {
	PlantID     *PlantID
	EventDate   *time.Time
	Description *string
	Notes       *string
	Location    *string
}
