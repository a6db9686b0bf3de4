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

type createReq struct {
	PlantID     *string `json:"plant_id"`
	EventType   string  `json:"event_type"`
	EventDate   string  `json:"event_date"`
	Description string  `json:"description"`
	Notes       string  `json:"notes"`
	Location    string  `json:"location"`
}

// Create godoc
// @Summary     Create plant event
// @Tags        plant-events
// @Accept      json
// @Produce     json
// @Param       body body event.createReq true "plant event"
// @Success     201 {object} domain.APIEnvelope{data=domain.PlantEvent}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/plant-events [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "event.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	date, err := v1.ParseTime(req.EventDate)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad event_date", err, "raw", req.EventDate)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	in := domain.PlantEvent{
		EventType:   domain.EventType(req.EventType),
		EventDate:   date,
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
		in.PlantID = &pid
	}
	if !domain.ValidPlantEvent(in) {
		logx.Error(h.Log, reqID, op, "validation failed", domain.ErrBadParams, "type", req.EventType)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	out, err := h.Repo.CreateEvent(r.Context(), in)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db create failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	h.Cache.InvalidateEventLists()
	h.Cache.InvalidateEventStats()

	logx.Info(h.Log, reqID, op, "created", "id", out.ID, "type", out.EventType)
	v1.WriteCreated(w, r, out)
}
