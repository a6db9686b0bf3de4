package event

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete plant event
// @Tags        plant-events
// @Produce     json
// @Param       id path string true "event id"
// @Success     200 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/plant-events/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "event.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if err := h.Repo.DeleteEvent(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "db delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Cache.InvalidatePlantEvent(id)
	h.Cache.InvalidateEventStats()

	logx.Info(h.Log, reqID, op, "deleted", "id", id)
	v1.WriteOKData(w, r, map[string]string{"deleted": id.String()})
}
