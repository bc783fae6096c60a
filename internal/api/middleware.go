package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
	"waste-route-service/internal/platform/obs"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// statusWriter captures the final HTTP status code and number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestIDMiddleware tags each request with an id, reusing the caller's X-Request-ID when present.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(obs.WithRequestID(r.Context(), id)))
	})
}

// loggingMiddleware logs each request and records it in the HTTP metrics.
// It must wrap the mux directly so the matched pattern is visible after dispatch.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		dur := time.Since(start)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(sw.status)
		obs.HTTPRequests.WithLabelValues(r.Method, path, status).Inc()
		obs.HTTPDuration.WithLabelValues(r.Method, path, status).Observe(dur.Seconds())

		log.Printf(
			"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
			obs.RequestID(r.Context()), r.Method, r.URL.RequestURI(), sw.status, sw.bytes, dur.Milliseconds(),
		)
	})
}

// rateLimit rejects requests with 429 once the limiter's burst is spent.
func rateLimit(l *rate.Limiter, next http.HandlerFunc) http.HandlerFunc {
	if l == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded","code":"rate_limited"}` + "\n"))
			return
		}
		next(w, r)
	}
}
