package harvest

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

type updateReq struct {
	CropName    *string  `json:"crop_name"`
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit"`
	HarvestDate *string  `json:"harvest_date"`
	Location    *string  `json:"location"`
	Notes       *string  `json:"notes"`
}

// Update godoc
// @Summary     Partially update harvest log
// @Tags        harvest-logs
// @Accept      json
// @Produce     json
// @Param       id   path string            true "harvest log id"
// @Param       body body harvest.updateReq true "fields to change"
// @Success     200 {object} domain.APIEnvelope{data=domain.HarvestLog}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/harvest-logs/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "harvest.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	var req updateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	p := domain.HarvestLogPatch{
		CropName: req.CropName,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Location: req.Location,
		Notes:    req.Notes,
	}
	if req.HarvestDate != nil {
		t, err := v1.ParseTime(*req.HarvestDate)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad harvest_date", err, "raw", *req.HarvestDate)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		p.HarvestDate = &t
	}
	if req.CropName != nil && (*req.CropName == "" || len(*req.CropName) > domain.MaxCropNameLen) {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	out, err := h.Repo.UpdateHarvestLog(r.Context(), id, p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Cache.InvalidateHarvestLog(id)
	h.Cache.InvalidateHarvestStats()

	logx.Info(h.Log, reqID, op, "updated", "id", out.ID)
	v1.WriteOKData(w, r, out)
}
