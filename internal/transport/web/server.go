package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/garden-log/internal/config"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/event"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/harvest"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/health"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/image"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/plant"
	"github.com/EgorLis/garden-log/internal/transport/web/v1/sys"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, d Deps) *Server {
	sub := func(name string) *log.Logger {
		return log.New(logger.Writer(), logger.Prefix()+"["+name+"] ", logger.Flags())
	}

	healthHandler := &health.Handler{Log: sub("health"), DB: d.DB, Storage: d.Storage}
	harvestHandler := &harvest.Handler{Log: sub("harvest"), Repo: d.Harvests, Cache: d.Cache}
	eventHandler := &event.Handler{Log: sub("event"), Repo: d.Events, Cache: d.Cache}
	plantHandler := &plant.Handler{Log: sub("plant"), Repo: d.Plants}
	imageHandler := &image.Handler{Log: sub("image"), Logs: d.Harvests, Images: d.Images, Storage: d.Storage}

	limiter := mw.NewRateLimiter(mw.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimitPerMinute,
		BurstLimit:        cfg.RateLimitBurst,
		// health-пробы дёргает оркестратор, их не лимитируем
		ExemptPaths: []string{"/v1/healthz", "/v1/readyz"},
	}, sub("ratelimit"))

	sysHandler := &sys.Handler{Log: sub("sys"), Cache: d.Cache.Cache(), Limiter: limiter}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(routerDeps{
			health:  healthHandler,
			harvest: harvestHandler,
			event:   eventHandler,
			plant:   plantHandler,
			image:   imageHandler,
			sys:     sysHandler,
			limiter: limiter,
			logger:  logger,
		}),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
