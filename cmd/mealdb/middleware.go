package main

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	metrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	middlewarestd "github.com/slok/go-http-metrics/middleware/std"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the id the middleware attached to ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusWriter) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

type logger struct {
	http.Handler
}

func (l *logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w}
	l.Handler.ServeHTTP(sw, r)
	if r.URL.Path == "/ready" || r.URL.Path == "/metrics" {
		return
	}
	slog.InfoContext(r.Context(), "request",
		"method", r.Method,
		"url", r.URL.Path,
		"query", r.URL.RawQuery,
		"status", sw.status,
		"request_id", RequestID(r.Context()),
		"duration", time.Since(start))
}

type recoverer struct {
	http.Handler
}

func (r *recoverer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			slog.ErrorContext(req.Context(), "panic recovered", "error", err, "request_id", RequestID(req.Context()), "stack", string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()
	r.Handler.ServeHTTP(w, req)
}

// requestID reuses a well formed incoming X-Request-ID or mints one.
type requestID struct {
	http.Handler
}

func (h *requestID) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	h.Handler.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
}

// the recorder registers with the default registry, which only allows it once
var httpMetrics = sync.OnceValue(func() middleware.Middleware {
	return middleware.New(middleware.Config{
		Recorder: metrics.NewRecorder(metrics.Config{}),
	})
})

func WithMiddleware(h http.Handler) http.Handler {
	h = middlewarestd.Handler("", httpMetrics(), h)
	return &requestID{
		&logger{
			&recoverer{
				h,
			},
		},
	}
}
