package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/metrics"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

var log = logger.StdLogger().With("http")

// statusRecorder запоминает код ответа для логов и метрик.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggerMiddleware логирует информацию о каждом входящем HTTP-запросе и
// присваивает ему request id.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := logger.WithRequestID(r.Context(), id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx)) // Передаем запрос следующему обработчику

		elapsed := time.Since(start)
		metrics.ObserveRequest(r.Method, rec.status, elapsed)
		log.Infof(ctx, "Method: %s | URL: %s | Status: %d | Duration: %s | From: %s", r.Method, r.URL.Path, rec.status, elapsed, r.RemoteAddr)
	})
}
