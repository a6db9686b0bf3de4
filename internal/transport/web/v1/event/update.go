package event

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
	PlantID     *string `json:"plant_id"`
	EventDate   *string `json:"event_date"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	Location    *string `json:"location"`
}

// Update godoc
// @Summary     Partially update plant event
// @Tags        plant-events
// @Accept      json
// @Produce     json
// @Param       id   path string          true "event id"
// @Param       body body event.updateReq true "fields to change"
// @Success     200 {object} domain.APIEnvelope{data=domain.PlantEvent}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/plant-events/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "event.update"
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

	p := domain.PlantEventPatch{
		Description: req.Description,
		Notes:       req.Notes,
		Location:    req.Location,
	}
	if req.PlantID != nil && *req.PlantID != "" {
		pid, err := uuid.Parse(*req.PlantID)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad plant_id", err, "raw", *req.PlantID)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		p.PlantID = &pid
	}
	if req.EventDate != nil {
		t, err := v1.ParseTime(*req.EventDate)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad event_date", err, "raw", *req.EventDate)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		p.EventDate = &t
	}

	out, err := h.Repo.UpdateEvent(r.Context(), id, p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Cache.InvalidatePlantEvent(id)
	h.Cache.InvalidateEventStats()

	logx.Info(h.Log, reqID, op, "updated", "id", out.ID)
	v1.WriteOKData(w, r, out)
}
