// Package cache provides the Redis client and the catalog read-through cache
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/infrastructure/config"
	"github.com/ayurplan/engine/internal/ports/outbound"
)

// ErrCircuitOpen is returned while the breaker rejects requests
var ErrCircuitOpen = errors.New("redis circuit breaker is open")

// RedisClient wraps a go-redis client with a circuit breaker
type RedisClient struct {
	client         redis.UniversalClient
	logger         *zap.Logger
	circuitBreaker *CircuitBreaker
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (*RedisClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  10 * time.Second,
	})

	r := NewRedisClientFrom(client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis client initialized successfully",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("database", cfg.Database))

	return r, nil
}

// NewRedisClientFrom wraps an existing go-redis client
func NewRedisClientFrom(client redis.UniversalClient, logger *zap.Logger) *RedisClient {
	return &RedisClient{
		client:         client,
		logger:         logger.Named("redis"),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

// Client returns the underlying go-redis client
func (r *RedisClient) Client() redis.UniversalClient {
	return r.client
}

// Ping tests Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.do(func() error { return r.client.Ping(ctx).Err() })
}

// Get retrieves a value; a missing key yields outbound.ErrCacheMiss
func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	var result []byte
	err := r.do(func() error {
		var err error
		result, err = r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return outbound.ErrCacheMiss
		}
		return err
	})
	if err != nil && !errors.Is(err, outbound.ErrCacheMiss) {
		r.logger.Error("Redis GET failed", zap.String("key", key), zap.Error(err))
	}
	return result, err
}

// Set stores a value with TTL
func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.do(func() error { return r.client.Set(ctx, key, value, ttl).Err() })
	if err != nil {
		r.logger.Error("Redis SET failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Delete removes keys
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	err := r.do(func() error { return r.client.Del(ctx, keys...).Err() })
	if err != nil {
		r.logger.Error("Redis DEL failed", zap.Strings("keys", keys), zap.Error(err))
	}
	return err
}

// Exists counts how many of keys exist
func (r *RedisClient) Exists(ctx context.Context, keys ...string) (int64, error) {
	var n int64
	err := r.do(func() error {
		var err error
		n, err = r.client.Exists(ctx, keys...).Result()
		return err
	})
	return n, err
}

// MGet retrieves the present keys; absent keys are omitted
func (r *RedisClient) MGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	err := r.do(func() error {
		values, err := r.client.MGet(ctx, keys...).Result()
		if err != nil {
			return err
		}
		for i, v := range values {
			if s, ok := v.(string); ok && i < len(keys) {
				out[keys[i]] = []byte(s)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Redis MGET failed", zap.Int("keys", len(keys)), zap.Error(err))
		return nil, err
	}
	return out, nil
}

// MSet stores several values with one pipeline
func (r *RedisClient) MSet(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}

	err := r.do(func() error {
		pipe := r.client.Pipeline()
		for key, value := range items {
			pipe.Set(ctx, key, value, ttl)
		}
		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		r.logger.Error("Redis MSET failed", zap.Int("items", len(items)), zap.Error(err))
	}
	return err
}

// Close closes the Redis client connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) do(op func() error) error {
	if !r.circuitBreaker.AllowRequest() {
		return ErrCircuitOpen
	}
	err := op()
	if err != nil && !errors.Is(err, outbound.ErrCacheMiss) {
		r.circuitBreaker.RecordFailure()
		return err
	}
	r.circuitBreaker.RecordSuccess()
	return err
}

// CircuitState represents circuit breaker states
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker opens after maxFailures consecutive failures and
// half-opens once timeout has passed since the last failure
type CircuitBreaker struct {
	maxFailures     int
	timeout         time.Duration
	failures        int
	lastFailureTime time.Time
	state           CircuitState
	now             func() time.Time
	mu              sync.Mutex
}

// NewCircuitBreaker creates a closed breaker
func NewCircuitBreaker(maxFailures int, timeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures: maxFailures,
		timeout:     timeout,
		state:       CircuitClosed,
		now:         time.Now,
	}
}

// AllowRequest checks if requests are allowed based on circuit state
func (cb *CircuitBreaker) AllowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed, CircuitHalfOpen:
		return true
	case CircuitOpen:
		if cb.now().Sub(cb.lastFailureTime) > cb.timeout {
			cb.state = CircuitHalfOpen
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess records a successful operation
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.state = CircuitClosed
}

// RecordFailure records a failed operation
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailureTime = cb.now()
	if cb.failures >= cb.maxFailures || cb.state == CircuitHalfOpen {
		cb.state = CircuitOpen
	}
}

// State returns the current state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
