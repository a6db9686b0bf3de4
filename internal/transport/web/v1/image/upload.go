package image

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

// Upload godoc
// @Summary     Attach image to harvest log (multipart, field "file")
// @Tags        images
// @Accept      multipart/form-data
// @Produce     json
// @Param       id   path     string true "harvest log id"
// @Param       file formData file   true "image file"
// @Success     201 {object} domain.APIEnvelope{data=domain.HarvestImage}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/harvest-logs/{id}/images [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "image.upload"
	reqID := mw.RequestIDFromCtx(r.Context())

	logID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad log id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// запись должна существовать до начала аплоада
	if _, err := h.Logs.HarvestLogByID(r.Context(), logID); err != nil {
		logx.Error(h.Log, reqID, op, "harvest log lookup failed", err, "log_id", logID)
		v1.WriteDomainError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "no file in form", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	ext, ok := allowedMIME[mime]
	if !ok {
		logx.Error(h.Log, reqID, op, "unsupported mime", domain.ErrBadParams, "mime", mime)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	fileName := uuid.NewString() + ext
	key := fmt.Sprintf("harvest/%s/%s", logID, fileName)

	res, err := h.Storage.Put(r.Context(), file, key, mime, header.Size)
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage put failed", err, "key", key)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	img := domain.HarvestImage{
		HarvestLogID: logID,
		FileName:     fileName,
		OriginalName: header.Filename,
		MIME:         mime,
		SizeBytes:    res.Size,
		PublicURL:    res.PublicURL,
		StorageKey:   res.StorageKey,
	}
	out, err := h.Images.CreateImage(r.Context(), img)
	if err != nil {
		// контент уже в бакете — убираем, чтобы не копить сирот
		_ = h.Storage.Delete(r.Context(), res.StorageKey)
		logx.Error(h.Log, reqID, op, "db create failed", err, "key", key)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "uploaded", "id", out.ID, "log_id", logID, "size", out.SizeBytes)
	v1.WriteCreated(w, r, out)
}
