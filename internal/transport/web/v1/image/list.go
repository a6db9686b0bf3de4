package image

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

// List godoc
// @Summary     List images of a harvest log
// @Tags        images
// @Produce     json
// @Param       id path string true "harvest log id"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.HarvestImage}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/harvest-logs/{id}/images [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "image.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	logID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad log id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	imgs, err := h.Images.ImagesByHarvestLog(r.Context(), logID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err, "log_id", logID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if imgs == nil {
		imgs = []domain.HarvestImage{}
	}

	logx.Info(h.Log, reqID, op, "ok", "log_id", logID, "count", len(imgs))
	v1.WriteOKData(w, r, imgs)
}
