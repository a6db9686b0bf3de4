package harvest

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/transport/web/logx"
	"github.com/EgorLis/garden-log/internal/transport/web/mw"
	v1 "github.com/EgorLis/garden-log/internal/transport/web/v1"
)

// List godoc
// @Summary     List harvest logs (keyset pagination)
// @Tags        harvest-logs
// @Produce     json
// @Param       limit      query int    false "page size (1..100, default 20)"
// @Param       cursor     query string false "opaque cursor from previous page"
// @Param       order      query string false "asc|desc (default desc)"
// @Param       crop_name  query string false "exact crop filter"
// @Param       search     query string false "substring search in notes"
// @Param       date_from  query string false "harvest_date lower bound"
// @Param       date_to    query string false "harvest_date upper bound"
// @Param       with_total query bool   false "include exact total_count"
// @Success     200 {object} domain.APIEnvelope{data=object}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/harvest-logs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "harvest.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	params := v1.ParsePagination(r)
	withTotal := v1.QueryBool(r, "with_total")

	f := domain.HarvestLogFilter{
		CropName: r.URL.Query().Get("crop_name"),
		Search:   r.URL.Query().Get("search"),
	}
	var err error
	if f.DateFrom, err = v1.QueryTime(r, "date_from"); err != nil {
		logx.Error(h.Log, reqID, op, "bad date_from", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if f.DateTo, err = v1.QueryTime(r, "date_to"); err != nil {
		logx.Error(h.Log, reqID, op, "bad date_to", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if !domain.ValidDateRange(f.DateFrom, f.DateTo) {
		logx.Error(h.Log, reqID, op, "inverted date range", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// кеш хранит готовый сериализованный конверт; ключ — от всех
	// параметров запроса, влияющих на содержимое страницы
	ckey := []any{params.Limit, params.Cursor, string(params.Order),
		f.CropName, f.Search, f.DateFrom, f.DateTo, withTotal}
	if b, ok := h.Cache.GetHarvestLogList(ckey...); ok {
		logx.Info(h.Log, reqID, op, "cache hit", "bytes", len(b))
		writeCachedEnvelope(w, r, b)
		return
	}

	page, err := h.Repo.HarvestLogsList(r.Context(), params, f, withTotal)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	env := domain.OkData(page)
	buf, err := json.Marshal(env)
	if err != nil {
		logx.Error(h.Log, reqID, op, "marshal failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	h.Cache.SetHarvestLogList(buf, ckey...)

	logx.Info(h.Log, reqID, op, "ok", "items", len(page.Items), "has_next", page.HasNext)
	writeCachedEnvelope(w, r, buf)
}

// готовый JSON пишем напрямую, минуя повторный Marshal
func writeCachedEnvelope(w http.ResponseWriter, r *http.Request, b []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(b)
}
