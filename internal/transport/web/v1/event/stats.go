package event

import (
	"net/http"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

// Stats godoc
// @Summary     Event aggregates: total and per-type counters
// @Tags        plant-events
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=domain.EventStats}
// @Router      /v1/event-stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "event.stats"
	reqID := mw.RequestIDFromCtx(r.Context())

	if cached, ok := h.Cache.GetEventStats(); ok {
		logx.Info(h.Log, reqID, op, "cache hit")
		v1.WriteOKData(w, r, cached)
		return
	}

	s, err := h.Repo.EventStats(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "db stats failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	h.Cache.SetEventStats(s)

	logx.Info(h.Log, reqID, op, "ok", "total", s.TotalEvents)
	v1.WriteOKData(w, r, s)
}
