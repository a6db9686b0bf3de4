package harvest

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete harvest log
// @Tags        harvest-logs
// @Produce     json
// @Param       id path string true "harvest log id"
// @Success     200 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/harvest-logs/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "harvest.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if err := h.Repo.DeleteHarvestLog(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "db delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Cache.InvalidateHarvestLog(id)
	h.Cache.InvalidateHarvestStats()

	logx.Info(h.Log, reqID, op, "deleted", "id", id)
	v1.WriteOKData(w, r, map[string]string{"deleted": id.String()})
}
