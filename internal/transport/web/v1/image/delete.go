package image

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete image (DB record and blob)
// @Tags        images
// @Produce     json
// @Param       id path string true "image id"
// @Success     200 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/images/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "image.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	img, err := h.Images.ImageByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Images.DeleteImage(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "db delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	// блоб чистим после записи: если удаление из S3 не удалось,
	// запись уже снесена — логируем и живём с сиротой
	if err := h.Storage.Delete(r.Context(), img.StorageKey); err != nil {
		logx.Error(h.Log, reqID, op, "storage delete failed", err, "key", img.StorageKey)
	}

	logx.Info(h.Log, reqID, op, "deleted", "id", id)
	v1.WriteOKData(w, r, map[string]string{"deleted": id.String()})
}
