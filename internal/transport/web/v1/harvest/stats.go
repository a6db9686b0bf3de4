package harvest

import (
	"net/http"
	"time"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

// Stats godoc
// @Summary     Harvest aggregates: total, this month, this week
// @Tags        harvest-logs
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=domain.HarvestStats}
// @Router      /v1/harvest-stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "harvest.stats"
	reqID := mw.RequestIDFromCtx(r.Context())

	if cached, ok := h.Cache.GetHarvestStats(); ok {
		logx.Info(h.Log, reqID, op, "cache hit")
		v1.WriteOKData(w, r, cached)
		return
	}

	s, err := h.Repo.HarvestStats(r.Context(), time.Now())
	if err != nil {
		logx.Error(h.Log, reqID, op, "db stats failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	h.Cache.SetHarvestStats(s)

	logx.Info(h.Log, reqID, op, "ok", "total", s.TotalHarvests)
	v1.WriteOKData(w, r, s)
}
