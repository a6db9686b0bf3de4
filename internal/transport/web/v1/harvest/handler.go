package harvest

import (
	"log"

	memcache "github.com/EgorLis/garden-log/internal/infra/cache/memory"

	"github.com/EgorLis/garden-log/internal/domain"
)

type Handler struct {
	Log   *log.Logger
	Repo  domain.HarvestLogsRepo
	Cache *memcache.Manager
}
