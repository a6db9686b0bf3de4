package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/EgorLis/garden-log/internal/pagination"
)

// ParsePagination читает limit/cursor/order из query.
// Невалидные значения молча приводятся к дефолтам (Normalize).
func ParsePagination(r *http.Request) pagination.Params {
	q := r.URL.Query()
	p := pagination.Params{
		Cursor: q.Get("cursor"),
		Order:  pagination.Order(q.Get("order")),
	}
	if s := q.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			p.Limit = n
		}
	}
	return p.Normalize()
}

// QueryBool: "true"/"1" — истина, всё остальное — ложь
func QueryBool(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}

// ParseTime принимает RFC3339 или голую дату
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// QueryTime возвращает nil для отсутствующего параметра,
// ошибку — для непарсибельного.
func QueryTime(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
