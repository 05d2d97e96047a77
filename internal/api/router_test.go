package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/bouquets/internal/allocator"
	"github.com/eugenenazirov/bouquets/internal/metrics"
	"github.com/eugenenazirov/bouquets/internal/pipeline"
	"github.com/eugenenazirov/bouquets/internal/storage"
)

func TestLoggingMiddleware(t *testing.T) {
	logger := zaptest.NewLogger(t)
	var called bool
	handler := loggingMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := zaptest.NewLogger(t)
	handler := recoveryMiddleware(logger, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
}

func TestResponseRecorderWriteHeader(t *testing.T) {
	underlying := httptest.NewRecorder()
	rec := &responseRecorder{ResponseWriter: underlying}
	rec.WriteHeader(http.StatusTeapot)

	if rec.status != http.StatusTeapot {
		t.Fatalf("expected status to be recorded")
	}
	if underlying.Code != http.StatusTeapot {
		t.Fatalf("expected status to propagate to ResponseWriter")
	}
}

func TestWithRateLimiterOptionAppliesLimiter(t *testing.T) {
	router := newTestRouter(t, WithLogging(false), WithRateLimiter(&staticLimiter{allow: false}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, allocationRequest())

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limiter to block allocation, got %d", rec.Code)
	}
}

func TestRateLimitOnlyGuardsAllocations(t *testing.T) {
	router := newTestRouter(t, WithLogging(false), WithRateLimiter(&staticLimiter{allow: false}))

	for _, path := range []string{"/api/health", "/api/designs"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected %s to bypass the allocation limit, got %d", path, rec.Code)
		}
	}
}

func TestWithRateLimitDisablesLimiterWhenZero(t *testing.T) {
	router := newTestRouter(t, WithLogging(false), WithRateLimiter(&staticLimiter{allow: false}), WithRateLimit(0, 0))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, allocationRequest())

	if rec.Code != http.StatusOK {
		t.Fatalf("expected limiter to be disabled, got %d", rec.Code)
	}
}

func TestWithRateLimitEnforcesLimit(t *testing.T) {
	router := newTestRouter(t, WithLogging(false), WithRateLimit(1, 1))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, allocationRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first allocation to succeed, got %d", rec.Code)
	}

	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, allocationRequest())
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limiter to block second allocation, got %d", rec2.Code)
	}
	if rec2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After on throttled allocation")
	}
}

func allocationRequest() *http.Request {
	body := `{"designs":["AL1a1"],"flowers":["aL"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/bouquets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestMetricsRouteOnlyWithRecorder(t *testing.T) {
	logger := zaptest.NewLogger(t)
	svc := pipeline.New(allocator.New(), logger)

	without := NewRouter(NewHandler(svc, storage.NewMemoryStorage()), logger, WithLogging(false))
	rec := httptest.NewRecorder()
	without.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without recorder, got %d", rec.Code)
	}

	with := NewRouter(NewHandler(svc, storage.NewMemoryStorage(), WithMetrics(metrics.NewRecorder())), logger, WithLogging(false))
	rec = httptest.NewRecorder()
	with.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with recorder, got %d", rec.Code)
	}
}

func TestRouterCountsRequests(t *testing.T) {
	logger := zaptest.NewLogger(t)
	svc := pipeline.New(allocator.New(), logger)
	router := NewRouter(NewHandler(svc, storage.NewMemoryStorage(), WithMetrics(metrics.NewRecorder())), logger, WithLogging(false))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	if !strings.Contains(rec.Body.String(), `bouquet_http_requests_total{code="200",method="GET"} 1`) {
		t.Fatalf("expected health request to be counted, got:\n%s", rec.Body.String())
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	router := newTestRouter(t, WithLogging(false))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if got := rec.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Fatalf("expected generated UUID request id, got %q", got)
	}
}

func newTestRouter(t *testing.T, opts ...RouterOption) http.Handler {
	t.Helper()

	logger := zaptest.NewLogger(t)
	store := storage.NewMemoryStorage()
	handler := NewHandler(pipeline.New(allocator.New(), logger), store)
	return NewRouter(handler, logger, opts...)
}
