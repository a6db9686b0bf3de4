package harvest

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/EgorLis/garden-log/internal/domain"
	memcache "github.com/EgorLis/garden-log/internal/infra/cache/memory"
	"github.com/EgorLis/garden-log/internal/pagination"
)

type stubRepo struct {
	listCalls int
	logs      map[domain.HarvestLogID]domain.HarvestLog
}

func newStubRepo() *stubRepo {
	return &stubRepo{logs: make(map[domain.HarvestLogID]domain.HarvestLog)}
}

func (s *stubRepo) CreateHarvestLog(_ context.Context, h domain.HarvestLog) (domain.HarvestLog, error) {
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	h.UpdatedAt = h.CreatedAt
	s.logs[h.ID] = h
	return h, nil
}

func (s *stubRepo) HarvestLogByID(_ context.Context, id domain.HarvestLogID) (domain.HarvestLog, error) {
	h, ok := s.logs[id]
	if !ok {
		return domain.HarvestLog{}, domain.ErrNotFound
	}
	return h, nil
}

func (s *stubRepo) UpdateHarvestLog(_ context.Context, id domain.HarvestLogID, p domain.HarvestLogPatch) (domain.HarvestLog, error) {
	h, ok := s.logs[id]
	if !ok {
		return domain.HarvestLog{}, domain.ErrNotFound
	}
	if p.Notes != nil {
		h.Notes = *p.Notes
	}
	s.logs[id] = h
	return h, nil
}

func (s *stubRepo) DeleteHarvestLog(_ context.Context, id domain.HarvestLogID) error {
	if _, ok := s.logs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.logs, id)
	return nil
}

func (s *stubRepo) HarvestLogsList(_ context.Context, params pagination.Params, _ domain.HarvestLogFilter, _ bool) (pagination.Page[domain.HarvestLog], error) {
	s.listCalls++
	if params.Cursor != "" {
		if _, err := pagination.DecodeCursor(params.Cursor); err != nil {
			return pagination.Page[domain.HarvestLog]{}, err
		}
	}
	items := make([]domain.HarvestLog, 0, len(s.logs))
	for _, h := range s.logs {
		items = append(items, h)
	}
	return pagination.Page[domain.HarvestLog]{Items: items}, nil
}

func (s *stubRepo) HarvestStats(_ context.Context, _ time.Time) (domain.HarvestStats, error) {
	return domain.HarvestStats{TotalHarvests: int64(len(s.logs))}, nil
}

func newTestHandler() (*Handler, *stubRepo) {
	repo := newStubRepo()
	cache := memcache.NewManager(memcache.New(100, time.Minute, log.New(io.Discard, "", 0)))
	return &Handler{
		Log:   log.New(io.Discard, "", 0),
		Repo:  repo,
		Cache: cache,
	}, repo
}

func mux(h *Handler) http.Handler {
	m := http.NewServeMux()
	m.HandleFunc("GET /v1/harvest-logs", h.List)
	m.HandleFunc("POST /v1/harvest-logs", h.Create)
	m.HandleFunc("GET /v1/harvest-logs/{id}", h.GetOne)
	m.HandleFunc("DELETE /v1/harvest-logs/{id}", h.Delete)
	return m
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) domain.APIEnvelope {
	t.Helper()
	var env domain.APIEnvelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	return env
}

func TestListBadCursorIs400(t *testing.T) {
	h, _ := newTestHandler()
	m := mux(h)

	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs?cursor=garbage", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400 for malformed cursor", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Error == nil || env.Error.Code != domain.ErrCodeBadCursor {
		t.Fatalf("envelope %+v, want bad-cursor code", env)
	}
	if env.Error.Text != "invalid cursor format" {
		t.Fatalf("text %q", env.Error.Text)
	}
}

func TestListServedFromCache(t *testing.T) {
	h, repo := newTestHandler()
	m := mux(h)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i+1, w.Code)
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("repo hit %d times, want 1 (rest from cache)", repo.listCalls)
	}

	// другой набор параметров — другой ключ, снова в БД
	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs?limit=50", nil))
	if repo.listCalls != 2 {
		t.Fatalf("repo hit %d times, want 2 for a new key", repo.listCalls)
	}
}

func TestCreateInvalidatesListCache(t *testing.T) {
	h, repo := newTestHandler()
	m := mux(h)

	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs", nil))

	body := `{"crop_name":"tomato","quantity":1.5,"unit":"kg","harvest_date":"2025-06-10"}`
	w = httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/harvest-logs", strings.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs", nil))
	if repo.listCalls != 2 {
		t.Fatalf("repo hit %d times, want 2: create must drop the list cache", repo.listCalls)
	}
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	h, _ := newTestHandler()
	m := mux(h)

	for name, body := range map[string]string{
		"no crop":      `{"quantity":1,"unit":"kg","harvest_date":"2025-06-10"}`,
		"zero qty":     `{"crop_name":"kale","quantity":0,"unit":"kg","harvest_date":"2025-06-10"}`,
		"bad date":     `{"crop_name":"kale","quantity":1,"unit":"kg","harvest_date":"recently"}`,
		"not json":     `]`,
	} {
		w := httptest.NewRecorder()
		m.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/harvest-logs", strings.NewReader(body)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", name, w.Code)
		}
	}
}

func TestGetOneCachesRecord(t *testing.T) {
	h, repo := newTestHandler()
	m := mux(h)

	created, _ := repo.CreateHarvestLog(context.Background(), domain.HarvestLog{CropName: "mint", Quantity: 1, Unit: "bunch", HarvestDate: time.Now()})

	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs/"+created.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}

	// запись теперь в кеше: репозиторий можно выключить
	repo.logs = nil
	w = httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs/"+created.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want cache hit", w.Code)
	}
}

func TestGetOneNotFound(t *testing.T) {
	h, _ := newTestHandler()
	m := mux(h)

	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs/"+uuid.NewString(), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400 for malformed id", w.Code)
	}
}

func TestDeleteDropsCachedRecord(t *testing.T) {
	h, repo := newTestHandler()
	m := mux(h)

	created, _ := repo.CreateHarvestLog(context.Background(), domain.HarvestLog{CropName: "dill", Quantity: 1, Unit: "bunch", HarvestDate: time.Now()})

	// прогреваем кеш записи
	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs/"+created.ID.String(), nil))

	w = httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/harvest-logs/"+created.ID.String(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/harvest-logs/"+created.ID.String(), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404: stale cache must not resurrect the record", w.Code)
	}
}
