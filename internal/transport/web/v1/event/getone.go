package event

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

// GetOne godoc
// @Summary     Get single plant event
// @Tags        plant-events
// @Produce     json
// @Param       id path string true "event id"
// @Success     200 {object} domain.APIEnvelope{data=domain.PlantEvent}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/plant-events/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "event.get_one"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if cached, ok := h.Cache.GetPlantEvent(id); ok {
		logx.Info(h.Log, reqID, op, "cache hit", "id", id)
		v1.WriteOKData(w, r, cached)
		return
	}

	out, err := h.Repo.EventByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	h.Cache.SetPlantEvent(out)

	logx.Info(h.Log, reqID, op, "ok", "id", out.ID)
	v1.WriteOKData(w, r, out)
}
