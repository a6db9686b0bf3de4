// Package sys — обзорные эндпоинты состояния процесса:
// счётчики кеша и рейт-лимитера.
package sys

import (
	"log"
	"net/http"

	memcache "github.com/EgorLis/garden-log/internal/infra/cache/memory"

	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

type CacheStatser interface {
	GetStats() memcache.Stats
}

type LimiterStatser interface {
	Stats() mw.RateLimitStats
}

type Handler struct {
	Log     *log.Logger
	Cache   CacheStatser
	Limiter LimiterStatser
}

// CacheStats godoc
// @Summary     In-process cache counters
// @Tags        sys
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=memcache.Stats}
// @Router      /v1/cache-stats [get]
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	const op = "sys.cache_stats"
	reqID := mw.RequestIDFromCtx(r.Context())

	s := h.Cache.GetStats()
	logx.Info(h.Log, reqID, op, "ok", "entries", s.Entries)
	v1.WriteOKData(w, r, s)
}

// RateLimitStats godoc
// @Summary     Rate limiter counters
// @Tags        sys
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=mw.RateLimitStats}
// @Router      /v1/ratelimit-stats [get]
func (h *Handler) RateLimitStats(w http.ResponseWriter, r *http.Request) {
	const op = "sys.ratelimit_stats"
	reqID := mw.RequestIDFromCtx(r.Context())

	s := h.Limiter.Stats()
	logx.Info(h.Log, reqID, op, "ok", "clients", s.TotalClients)
	v1.WriteOKData(w, r, s)
}
