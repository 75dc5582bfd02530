package mealdb

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"mealdb/internal/config"
	"mealdb/internal/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerPrefix = "mealdb-api"

// breakers holds one circuit breaker per upstream request key: one per
// endpoint, and one per letter for first letter searches. A failing letter
// therefore never rejects requests for another letter or endpoint.
type breakers struct {
	mu      sync.Mutex
	timeout time.Duration
	byKey   map[string]*gobreaker.CircuitBreaker[[]byte]
}

func newBreakers(timeout time.Duration) *breakers {
	if timeout <= 0 {
		timeout = config.DefaultBreakerTimeout
	}
	return &breakers{
		timeout: timeout,
		byKey:   make(map[string]*gobreaker.CircuitBreaker[[]byte]),
	}
}

func (b *breakers) get(key string) *gobreaker.CircuitBreaker[[]byte] {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cb, ok := b.byKey[key]; ok {
		return cb
	}
	cb := newBreaker(breakerPrefix+"/"+key, b.timeout)
	b.byKey[key] = cb
	return cb
}

// newBreaker trips after at least 10 requests in a one minute window with a
// failure rate of 60% or more, and lets a trial request through after timeout.
func newBreaker(name string, timeout time.Duration) *gobreaker.CircuitBreaker[[]byte] {
	metrics.BreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
		},
		IsSuccessful: breakerSuccess,
	})
}

// breakerSuccess reports whether err leaves the upstream's health untouched:
// cancellation and non-temporary statuses are not failures.
func breakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return !statusErr.Temporary()
	}
	return false
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
