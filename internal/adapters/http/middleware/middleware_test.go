package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/digicorp/employee-history/internal/platform/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWithRequestID_GeneratesID(t *testing.T) {
	t.Parallel()

	var captured string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if captured == "" {
		t.Fatal("expected request ID in context")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Fatalf("expected UUID request ID, got %q: %v", captured, err)
	}
	if got := rec.Header().Get(RequestIDHeader); got != captured {
		t.Fatalf("expected response header %q, got %q", captured, got)
	}
}

func TestWithRequestID_PreservesClientID(t *testing.T) {
	t.Parallel()

	var captured string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured != "client-supplied-id" {
		t.Fatalf("expected client ID to be preserved, got %q", captured)
	}
}

func TestRequestID_MissingFromContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestID(req.Context()); got != "" {
		t.Fatalf("expected empty request ID, got %q", got)
	}
}

func TestWithLogging_RecordsStatus(t *testing.T) {
	t.Parallel()

	handler := WithLogging(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/employees/promote", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status to pass through, got %d", rec.Code)
	}
}

func TestWithMetrics_CountsByRoutePattern(t *testing.T) {
	t.Parallel()

	m := metrics.NewWith(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(WithMetrics(m))
	r.Get("/api/employees/{empNo}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/employees/10001", nil))

	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/employees/{empNo}", "200"))
	if got != 1 {
		t.Fatalf("expected request counter 1 for route pattern, got %v", got)
	}
}

func TestWithRecovery_ConvertsPanicTo500(t *testing.T) {
	t.Parallel()

	handler := WithRecovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
}
