package harvest

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

type createReq struct {
	CropName    string  `json:"crop_name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	HarvestDate string  `json:"harvest_date"`
	Location    string  `json:"location"`
	Notes       string  `json:"notes"`
}

// Create godoc
// @Summary     Create harvest log
// @Tags        harvest-logs
// @Accept      json
// @Produce     json
// @Param       body body harvest.createReq true "harvest log"
// @Success     201 {object} domain.APIEnvelope{data=domain.HarvestLog}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/harvest-logs [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "harvest.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	date, err := v1.ParseTime(req.HarvestDate)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad harvest_date", err, "raw", req.HarvestDate)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	in := domain.HarvestLog{
		CropName:    req.CropName,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		HarvestDate: date,
		Location:    req.Location,
		Notes:       req.Notes,
	}
	if !domain.ValidHarvestLog(in) {
		logx.Error(h.Log, reqID, op, "validation failed", domain.ErrBadParams, "crop", req.CropName)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	out, err := h.Repo.CreateHarvestLog(r.Context(), in)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db create failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	// новая запись меняет списки и агрегаты
	h.Cache.InvalidateHarvestLogLists()
	h.Cache.InvalidateHarvestStats()

	logx.Info(h.Log, reqID, op, "created", "id", out.ID, "crop", out.CropName)
	v1.WriteCreated(w, r, out)
}
