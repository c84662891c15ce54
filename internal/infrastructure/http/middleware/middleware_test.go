package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ayurplan/engine/internal/infrastructure/config"
	"github.com/ayurplan/engine/pkg/errors"
)

func newTestMiddleware() *Middleware {
	return New(&config.Config{
		RateLimit: config.RateLimitConfig{Enable: true, RequestsPerMin: 60, BurstSize: 1},
	}, zap.NewNop())
}

func TestRequestID_ShouldReuseIncomingHeader(t *testing.T) {
	m := newTestMiddleware()
	var seen string
	h := m.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestRecovery_ShouldRenderInternalError(t *testing.T) {
	m := newTestMiddleware()
	h := m.RequestID(m.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeInternal, body.Error.Code)
	assert.NotEmpty(t, body.Error.RequestID)
}

func TestRateLimit_ShouldTrackClientsSeparately(t *testing.T) {
	m := newTestMiddleware()
	h := m.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"))
}

func TestRateLimit_ForwardedForShouldNotSplitClient(t *testing.T) {
	m := newTestMiddleware()
	h := m.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	limited := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Equal(t, 49, limited)
	assert.Equal(t, 1, m.limiters.size())
}

func TestClientLimiters_ShouldSweepIdleClients(t *testing.T) {
	// Arrange
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newClientLimiters(rate.Limit(1), 1, time.Minute)
	c.now = func() time.Time { return clock }
	c.lastSweep = clock
	for i := 0; i < 100; i++ {
		c.get(fmt.Sprintf("10.1.0.%d", i))
	}
	require.Equal(t, 100, c.size())

	// Act
	clock = clock.Add(30 * time.Second)
	c.get("10.1.0.7")
	clock = clock.Add(45 * time.Second)
	c.get("10.2.0.1")

	// Assert
	assert.Equal(t, 2, c.size())
}

func TestJSONOnly_ShouldAllowCharsetSuffix(t *testing.T) {
	m := newTestMiddleware()
	h := m.JSONOnly(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}
