package plant

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

type Handler struct {
	Log  *log.Logger
	Repo domain.PlantsRepo
}

type createReq struct {
	Name        string  `json:"name"`
	Variety     string  `json:"variety"`
	PlantedDate *string `json:"planted_date"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}

// Create godoc
// @Summary     Register plant
// @Tags        plants
// @Accept      json
// @Produce     json
// @Param       body body plant.createReq true "plant"
// @Success     201 {object} domain.APIEnvelope{data=domain.Plant}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/plants [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "plant.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Name == "" || len(req.Name) > domain.MaxCropNameLen {
		logx.Error(h.Log, reqID, op, "bad name", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	in := domain.Plant{
		Name:    req.Name,
		Variety: req.Variety,
		Status:  req.Status,
		Notes:   req.Notes,
	}
	if req.PlantedDate != nil && *req.PlantedDate != "" {
		t, err := v1.ParseTime(*req.PlantedDate)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad planted_date", err, "raw", *req.PlantedDate)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		in.PlantedDate = &t
	}

	out, err := h.Repo.CreatePlant(r.Context(), in)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db create failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "created", "id", out.ID, "name", out.Name)
	v1.WriteCreated(w, r, out)
}

// List godoc
// @Summary     List plants
// @Tags        plants
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Plant}
// @Router      /v1/plants [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "plant.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	plants, err := h.Repo.PlantsList(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if plants == nil {
		plants = []domain.Plant{}
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(plants))
	v1.WriteOKData(w, r, plants)
}

// GetOne godoc
// @Summary     Get single plant
// @Tags        plants
// @Produce     json
// @Param       id path string true "plant id"
// @Success     200 {object} domain.APIEnvelope{data=domain.Plant}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/plants/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "plant.get_one"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	out, err := h.Repo.PlantByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	v1.WriteOKData(w, r, out)
}

// Delete godoc
// @Summary     Delete plant
// @Tags        plants
// @Produce     json
// @Param       id path string true "plant id"
// @Success     200 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/plants/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "plant.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if err := h.Repo.DeletePlant(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "db delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "deleted", "id", id)
	v1.WriteOKData(w, r, map[string]string{"deleted": id.String()})
}
