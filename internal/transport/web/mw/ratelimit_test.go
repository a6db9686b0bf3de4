package mw

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func okHandler(called *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called++
		}
		w.WriteHeader(http.StatusOK)
	})
}

func doReq(h http.Handler, remoteAddr string, hdr map[string]string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/v1/harvest-logs", nil)
	r.RemoteAddr = remoteAddr
	for k, v := range hdr {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestMinuteLimitExceeded(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 3,
		BurstLimit:        100,
	}, testLogger())
	h := rl.Handler(okHandler(nil))

	for i := 0; i < 3; i++ {
		if w := doReq(h, "10.0.0.1:1234", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, w.Code)
		}
	}

	w := doReq(h, "10.0.0.1:1234", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("Retry-After=%q, want 60", got)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "3" {
		t.Fatalf("X-RateLimit-Limit=%q, want 3", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("X-RateLimit-Remaining=%q, want 0", got)
	}
	if !strings.Contains(w.Body.String(), "rate limit exceeded") {
		t.Fatalf("body %q lacks limit kind", w.Body.String())
	}
}

func TestBurstLimitIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 100,
		BurstLimit:        2,
		BurstWindow:       50 * time.Millisecond,
	}, testLogger())
	h := rl.Handler(okHandler(nil))

	doReq(h, "10.0.0.2:1", nil)
	doReq(h, "10.0.0.2:1", nil)

	w := doReq(h, "10.0.0.2:1", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want 429 from burst window", w.Code)
	}
	if !strings.Contains(w.Body.String(), "burst limit exceeded") {
		t.Fatalf("body %q lacks burst kind", w.Body.String())
	}

	// короткое окно уезжает — допуск восстанавливается,
	// хотя минутное окно всё ещё помнит прошлые запросы
	time.Sleep(70 * time.Millisecond)
	if w := doReq(h, "10.0.0.2:1", nil); w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 after burst window slid", w.Code)
	}
}

func TestWindowSlides(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 2,
		BurstLimit:        100,
		MinuteWindow:      50 * time.Millisecond,
	}, testLogger())
	h := rl.Handler(okHandler(nil))

	doReq(h, "10.0.0.3:1", nil)
	doReq(h, "10.0.0.3:1", nil)
	if w := doReq(h, "10.0.0.3:1", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want 429", w.Code)
	}

	time.Sleep(70 * time.Millisecond)
	if w := doReq(h, "10.0.0.3:1", nil); w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 after window slid", w.Code)
	}
}

func TestDownstreamNotCalledWhenBlocked(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 1,
		BurstLimit:        100,
	}, testLogger())
	called := 0
	h := rl.Handler(okHandler(&called))

	doReq(h, "10.0.0.4:1", nil)
	doReq(h, "10.0.0.4:1", nil)
	if called != 1 {
		t.Fatalf("downstream called %d times, want 1", called)
	}
}

func TestClientsIsolated(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 1,
		BurstLimit:        100,
	}, testLogger())
	h := rl.Handler(okHandler(nil))

	doReq(h, "10.0.0.5:1", nil)
	if w := doReq(h, "10.0.0.6:1", nil); w.Code != http.StatusOK {
		t.Fatalf("got %d: another client must have its own budget", w.Code)
	}
}

func TestExemptPaths(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 1,
		BurstLimit:        1,
		ExemptPaths:       []string{"/v1/healthz"},
	}, testLogger())
	h := rl.Handler(okHandler(nil))

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
		r.RemoteAddr = "10.0.0.7:1"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("probe %d: got %d, want 200 (exempt)", i+1, w.Code)
		}
	}
}

func TestRemainingHeaderCountsDown(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 3,
		BurstLimit:        100,
	}, testLogger())
	h := rl.Handler(okHandler(nil))

	w := doReq(h, "10.0.0.8:1", nil)
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "2" {
		t.Fatalf("remaining=%q, want 2", got)
	}
	w = doReq(h, "10.0.0.8:1", nil)
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "1" {
		t.Fatalf("remaining=%q, want 1", got)
	}
}

func TestClientKeyPriority(t *testing.T) {
	mk := func(remote string, hdr map[string]string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = remote
		for k, v := range hdr {
			r.Header.Set(k, v)
		}
		return r
	}

	// X-Forwarded-For побеждает всех; берём первый адрес из списка
	r := mk("1.2.3.4:80", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
		"X-Real-IP":       "198.51.100.1",
	})
	if k := ClientKey(r); k != "203.0.113.7" {
		t.Fatalf("got %q, want first XFF hop", k)
	}

	r = mk("1.2.3.4:80", map[string]string{"X-Real-IP": "198.51.100.1"})
	if k := ClientKey(r); k != "198.51.100.1" {
		t.Fatalf("got %q, want X-Real-IP", k)
	}

	r = mk("1.2.3.4:80", nil)
	if k := ClientKey(r); k != "1.2.3.4" {
		t.Fatalf("got %q, want transport host", k)
	}
}

func TestStatsCounters(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 10,
		BurstLimit:        10,
	}, testLogger())
	h := rl.Handler(okHandler(nil))

	doReq(h, "10.0.1.1:1", nil)
	doReq(h, "10.0.1.2:1", nil)

	s := rl.Stats()
	if s.TotalClients != 2 {
		t.Fatalf("total=%d, want 2", s.TotalClients)
	}
	if s.ActiveClients != 2 {
		t.Fatalf("active=%d, want 2", s.ActiveClients)
	}
	if s.Limits.RequestsPerMinute != 10 || s.Limits.BurstLimit != 10 {
		t.Fatalf("limits=%+v", s.Limits)
	}
}
