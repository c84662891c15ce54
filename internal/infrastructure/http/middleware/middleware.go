// Package middleware provides HTTP middleware components
// following the Chain of Responsibility pattern
package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ayurplan/engine/internal/infrastructure/config"
	"github.com/ayurplan/engine/pkg/errors"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "request_id"

// Middleware provides all middleware functions
type Middleware struct {
	config   *config.Config
	logger   *zap.Logger
	limiters *clientLimiters
}

// New creates a new middleware instance
func New(cfg *config.Config, logger *zap.Logger) *Middleware {
	return &Middleware{
		config: cfg,
		logger: logger.Named("http"),
		limiters: newClientLimiters(
			rate.Limit(float64(cfg.RateLimit.RequestsPerMin)/60),
			cfg.RateLimit.BurstSize,
			cfg.RateLimit.IdleTTL,
		),
	}
}

// RequestIDFromContext returns the id assigned by RequestID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID adds a unique request ID to the context
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID)))
	})
}

// Logger provides structured logging for requests
func (m *Middleware) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// Skip logging for health checks
		if r.URL.Path == m.config.Monitoring.HealthCheckPath {
			return
		}

		statusCode := ww.Status()
		if statusCode == 0 {
			statusCode = http.StatusOK
		}
		fields := []zap.Field{
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("ip", clientIP(r)),
			zap.Int("status", statusCode),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", r.UserAgent()),
		}

		switch {
		case statusCode >= 500:
			m.logger.Error("Server error", fields...)
		case statusCode >= 400:
			m.logger.Warn("Client error", fields...)
		default:
			m.logger.Info("Request completed", fields...)
		}
	})
}

// Recovery recovers from panics and returns 500 error
func (m *Middleware) Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				m.logger.Error("Panic recovered",
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Any("error", rec),
					zap.String("stack", string(debug.Stack())),
				)
				writeError(w, r, errors.NewInternalError("Internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Security adds security headers
func (m *Middleware) Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Cache-Control", "no-store")
		if r.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// CORS handles Cross-Origin Resource Sharing
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.config.Server.EnableCORS {
			next.ServeHTTP(w, r)
			return
		}

		origin := r.Header.Get("Origin")
		if m.isOriginAllowed(origin) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			h.Set("Access-Control-Max-Age", "86400")
			h.Add("Vary", "Origin")
		}

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) isOriginAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	return slices.Contains(m.config.Server.AllowedOrigins, "*") ||
		slices.Contains(m.config.Server.AllowedOrigins, origin)
}

// JSONOnly rejects request bodies that are not JSON
func (m *Middleware) JSONOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
				appErr := errors.NewAppError(errors.CodeBadRequest, "Content-Type must be application/json", "")
				writeErrorStatus(w, r, http.StatusUnsupportedMediaType, appErr)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit applies a token bucket per client IP
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.config.RateLimit.Enable {
			next.ServeHTTP(w, r)
			return
		}

		if !m.limiters.get(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "60")
			writeError(w, r, errors.NewTooManyRequestsError())
			return
		}

		next.ServeHTTP(w, r)
	})
}

const defaultLimiterIdleTTL = 10 * time.Minute

// clientLimiters keeps one token bucket per client. Buckets idle for
// longer than idleTTL are swept on the next lookup after that interval.
type clientLimiters struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
	entries   map[string]*limiterEntry
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiters(limit rate.Limit, burst int, idleTTL time.Duration) *clientLimiters {
	if burst < 1 {
		burst = 1
	}
	if idleTTL <= 0 {
		idleTTL = defaultLimiterIdleTTL
	}
	return &clientLimiters{
		limit:     limit,
		burst:     burst,
		idleTTL:   idleTTL,
		now:       time.Now,
		lastSweep: time.Now(),
		entries:   make(map[string]*limiterEntry),
	}
}

func (c *clientLimiters) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= c.idleTTL {
		for k, e := range c.entries {
			if now.Sub(e.lastSeen) >= c.idleTTL {
				delete(c.entries, k)
			}
		}
		c.lastSweep = now
	}

	e, ok := c.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

func (c *clientLimiters) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	writeErrorStatus(w, r, appErr.StatusCode(), appErr)
}

func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errors.ToErrorResponse(appErr, RequestIDFromContext(r.Context())))
}
