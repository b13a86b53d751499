package handlers

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/handlers/response"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

type MiddlewareProvider struct {
	logger primary.Logger
}

func New(logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		logger: logger,
	}
}

// RequestIDFromContext returns the id assigned by the RequestID middleware
func RequestIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(requestIDKey).(uuid.UUID)
	return id, ok
}

// RequestID reuses a well-formed incoming X-Request-ID or assigns a new one
func (m *MiddlewareProvider) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		if err != nil {
			id = uuid.New()
		}

		w.Header().Set(RequestIDHeader, id.String())
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (m *MiddlewareProvider) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		id, _ := RequestIDFromContext(r.Context())
		m.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency", time.Since(start),
			"request_id", id,
		)
	})
}

func (m *MiddlewareProvider) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				id, _ := RequestIDFromContext(r.Context())
				m.logger.Error("Handler panicked", "path", r.URL.Path, "request_id", id, "panic", v, "stack", string(debug.Stack()))
				response.WriteError(w, response.Internal(w.Header().Get(RequestIDHeader)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
