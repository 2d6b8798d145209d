package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL - через сколько неактивный клиент удаляется из таблицы.
const idleTTL = 2 * time.Minute

// clientState хранит лимитер и время последнего запроса для каждого клиента
type clientState struct {
	limiter     *rate.Limiter
	lastRequest time.Time
}

// RateLimiter ограничивает количество запросов от одного IP-адреса.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex // Мьютекс для доступа к map clients
	clients map[string]*clientState
}

// NewRateLimiter; rps <= 0 disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{rps: rate.Limit(rps), burst: burst, clients: make(map[string]*clientState)}
}

func (l *RateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	state, ok := l.clients[ip]
	if !ok {
		state = &clientState{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = state
	}
	state.lastRequest = now
	return state.limiter.AllowN(now, 1)
}

// Cleanup периодически очищает map от старых записей, пока ctx не отменен.
func (l *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.prune(now)
		}
	}
}

func (l *RateLimiter) prune(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for ip, state := range l.clients {
		if now.Sub(state.lastRequest) > idleTTL {
			delete(l.clients, ip)
			removed++
		}
	}
	return removed
}

// Middleware returns the limiting handler wrapper.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.rps <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		// Метрики и проверка живости не ограничиваются
		if r.URL.Path == "/metrics" || r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !l.allow(ip, time.Now()) {
			log.Warnf(r.Context(), "Rate limit exceeded for %s", ip)
			if isAJAX(r) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]any{
					"error": "Too Many Requests",
				})
			} else {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isAJAX проверяет, является ли запрос AJAX (по заголовку Accept или X-Requested-With)
func isAJAX(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
