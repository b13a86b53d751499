package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gitlab.com/algotutor.net/internal/adapter/logging"
	"gitlab.com/algotutor.net/internal/handlers/response"
)

func newRouter(t *testing.T) (*mux.Router, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	mw := New(logging.NewFromZap(zap.New(core)))

	r := mux.NewRouter()
	r.Use(mw.RequestID, mw.Logging, mw.Recover)
	return r, logs
}

func TestRequestID_GeneratedAndPropagated(t *testing.T) {
	r, _ := newRouter(t)
	var seen uuid.UUID
	r.HandleFunc("/x", func(w http.ResponseWriter, req *http.Request) {
		id, ok := RequestIDFromContext(req.Context())
		require.True(t, ok)
		seen = id
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEqual(t, uuid.Nil, seen)
	assert.Equal(t, seen.String(), rec.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesIncomingUUID(t *testing.T) {
	r, _ := newRouter(t)
	r.HandleFunc("/x", func(http.ResponseWriter, *http.Request) {})
	incoming := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_ReplacesMalformedHeader(t *testing.T) {
	r, _ := newRouter(t)
	r.HandleFunc("/x", func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestLogging_RecordsStatus(t *testing.T) {
	r, logs := newRouter(t)
	r.HandleFunc("/teapot", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot", nil))

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/teapot", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}

func TestRecover_Returns500(t *testing.T) {
	r, logs := newRouter(t)
	r.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body response.ErrorMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, body.StatusCode)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), body.RequestID)
	assert.Equal(t, 1, logs.FilterMessage("Handler panicked").Len())
}

func TestHealthz(t *testing.T) {
	r, _ := newRouter(t)
	NewHealthHandler("algotutor").RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"algotutor"}`, rec.Body.String())
}
