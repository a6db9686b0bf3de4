package mw

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Дефолты скользящих окон: длинное окно держит устойчивый темп,
// короткое режет всплески.
const (
	DefaultRequestsPerMinute = 60
	DefaultBurstLimit        = 10
	DefaultMinuteWindow      = 60 * time.Second
	DefaultBurstWindow       = 10 * time.Second
)

type RateLimitConfig struct {
	RequestsPerMinute int
	BurstLimit        int
	// Длины окон настраиваемы только ради тестов; в бою — дефолты
	MinuteWindow time.Duration
	BurstWindow  time.Duration
	// Пути без лимита (health-пробы и т.п.)
	ExemptPaths []string
}

// Состояние клиента: две упорядоченные последовательности таймстемпов.
// Запись создаётся лениво на первом запросе и живёт до конца процесса —
// сами окна усыхают при прюнинге, но записи не выселяются.
type clientWindows struct {
	minute []time.Time
	burst  []time.Time
}

// RateLimiter — middleware допуска запросов по двум скользящим окнам.
// Вся мутация состояния — под одним локом на все клиенты, зеркаля
// грубое блокирование кеша. Состояние процесс-локальное.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindows

	perMinute    int
	burstLimit   int
	minuteWindow time.Duration
	burstWindow  time.Duration
	exempt       map[string]struct{}
	logger       *log.Logger
}

type RateLimitStats struct {
	TotalClients  int `json:"total_clients"`
	ActiveClients int `json:"active_clients"`
	Limits        struct {
		RequestsPerMinute int `json:"requests_per_minute"`
		BurstLimit        int `json:"burst_limit"`
	} `json:"limits"`
}

func NewRateLimiter(cfg RateLimitConfig, logger *log.Logger) *RateLimiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.BurstLimit <= 0 {
		cfg.BurstLimit = DefaultBurstLimit
	}
	if cfg.MinuteWindow <= 0 {
		cfg.MinuteWindow = DefaultMinuteWindow
	}
	if cfg.BurstWindow <= 0 {
		cfg.BurstWindow = DefaultBurstWindow
	}
	exempt := make(map[string]struct{}, len(cfg.ExemptPaths))
	for _, p := range cfg.ExemptPaths {
		exempt[p] = struct{}{}
	}
	return &RateLimiter{
		clients:      make(map[string]*clientWindows),
		perMinute:    cfg.RequestsPerMinute,
		burstLimit:   cfg.BurstLimit,
		minuteWindow: cfg.MinuteWindow,
		burstWindow:  cfg.BurstWindow,
		exempt:       exempt,
		logger:       logger,
	}
}

// ClientKey — идентичность клиента: первый адрес X-Forwarded-For,
// иначе X-Real-IP, иначе адрес транспортного уровня.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// Handler оборачивает next проверкой лимитов. При отказе даунстрим
// не вызывается вовсе: 429 — штатный итог, а не сбой.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := rl.exempt[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		key := ClientKey(r)
		allowed, kind, remaining := rl.admit(key, time.Now())
		if !allowed {
			reqID := RequestIDFromCtx(r.Context())
			rl.logger.Printf("lvl=warn req_id=%s client=%s blocked=%s path=%q", reqID, key, kind, r.URL.Path)
			rl.reject(w, kind)
			return
		}

		// заголовки ставим до вызова next: после начала тела их уже не добавить
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		next.ServeHTTP(w, r)
	})
}

// admit прюнит оба окна, решает допуск и при допуске дописывает now
// в оба окна. remaining = лимит минус длина минутного окна.
func (rl *RateLimiter) admit(key string, now time.Time) (allowed bool, kind string, remaining int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cw, ok := rl.clients[key]
	if !ok {
		cw = &clientWindows{}
		rl.clients[key] = cw
	}

	cw.minute = prune(cw.minute, now.Add(-rl.minuteWindow))
	cw.burst = prune(cw.burst, now.Add(-rl.burstWindow))

	if len(cw.minute) >= rl.perMinute {
		return false, "rate limit exceeded", 0
	}
	if len(cw.burst) >= rl.burstLimit {
		return false, "burst limit exceeded", 0
	}

	cw.minute = append(cw.minute, now)
	cw.burst = append(cw.burst, now)
	return true, "", rl.perMinute - len(cw.minute)
}

func (rl *RateLimiter) reject(w http.ResponseWriter, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": http.StatusTooManyRequests, "text": kind},
	})
}

// Stats — счётчики для обзорного эндпоинта: active — клиенты с
// непустым минутным окном на текущий момент.
func (rl *RateLimiter) Stats() RateLimitStats {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	var s RateLimitStats
	s.TotalClients = len(rl.clients)
	for _, cw := range rl.clients {
		cw.minute = prune(cw.minute, now.Add(-rl.minuteWindow))
		if len(cw.minute) > 0 {
			s.ActiveClients++
		}
	}
	s.Limits.RequestsPerMinute = rl.perMinute
	s.Limits.BurstLimit = rl.burstLimit
	return s
}

// prune отрезает таймстемпы старше cutoff; вход упорядочен по времени
func prune(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return ts
	}
	return append(ts[:0], ts[i:]...)
}
