package web

import (
	memcache "github.com/EgorLis/garden-log/internal/infra/cache/memory"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/health"
)

// Deps — всё, что нужно HTTP-слою от остального приложения
type Deps struct {
	DB       health.Pinger
	Harvests domain.HarvestLogsRepo
	Events   domain.EventsRepo
	Plants   domain.PlantsRepo
	Images   domain.ImagesRepo
	Storage  domain.BlobStorage
	Cache    *memcache.Manager
}
