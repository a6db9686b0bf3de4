package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/EgorLis/garden-log/internal/docs"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/event"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/harvest"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/health"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/image"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/plant"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/sys"
)

type routerDeps struct {
	health  *health.Handler
	harvest *harvest.Handler
	event   *event.Handler
	plant   *plant.Handler
	image   *image.Handler
	sys     *sys.Handler
	limiter *mw.RateLimiter
	logger  *log.Logger
}

func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", d.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", d.health.Readiness)

	// записи об урожае
	mux.HandleFunc("GET /v1/harvest-logs", d.harvest.List)
	mux.HandleFunc("HEAD /v1/harvest-logs", d.harvest.List)
	mux.HandleFunc("POST /v1/harvest-logs", d.harvest.Create)
	mux.HandleFunc("GET /v1/harvest-logs/{id}", d.harvest.GetOne)
	mux.HandleFunc("PATCH /v1/harvest-logs/{id}", d.harvest.Update)
	mux.HandleFunc("DELETE /v1/harvest-logs/{id}", d.harvest.Delete)
	mux.HandleFunc("GET /v1/harvest-stats", d.harvest.Stats)

	// события растений
	mux.HandleFunc("GET /v1/plant-events", d.event.List)
	mux.HandleFunc("HEAD /v1/plant-events", d.event.List)
	mux.HandleFunc("POST /v1/plant-events", d.event.Create)
	mux.HandleFunc("GET /v1/plant-events/{id}", d.event.GetOne)
	mux.HandleFunc("PATCH /v1/plant-events/{id}", d.event.Update)
	mux.HandleFunc("DELETE /v1/plant-events/{id}", d.event.Delete)
	mux.HandleFunc("GET /v1/event-stats", d.event.Stats)

	// растения
	mux.HandleFunc("GET /v1/plants", d.plant.List)
	mux.HandleFunc("POST /v1/plants", d.plant.Create)
	mux.HandleFunc("GET /v1/plants/{id}", d.plant.GetOne)
	mux.HandleFunc("DELETE /v1/plants/{id}", d.plant.Delete)

	// фотографии урожая
	mux.HandleFunc("POST /v1/harvest-logs/{id}/images", limitBody(image.MaxUploadBytes, d.image.Upload))
	mux.HandleFunc("GET /v1/harvest-logs/{id}/images", d.image.List)
	mux.HandleFunc("DELETE /v1/images/{id}", d.image.Delete)

	// обзорные счётчики
	mux.HandleFunc("GET /v1/cache-stats", d.sys.CacheStats)
	mux.HandleFunc("GET /v1/ratelimit-stats", d.sys.RateLimitStats)

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware: request id → лог доступа → рейт-лимит
	return mw.WithRequestID(mw.Logging(d.logger)(d.limiter.Handler(mux)))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
