// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package resilience

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/trickortreat/internal/logging"
	"github.com/tomtom215/trickortreat/internal/metrics"
)

// Settings tunes a circuit breaker. Zero values fall back to the defaults
// noted on each field.
type Settings struct {
	// IsSuccessful classifies errors that should not count as failures,
	// such as a geocoder reporting no match. Nil counts every error.
	IsSuccessful func(err error) bool
	// Interval resets the counts in the closed state (default 1m).
	Interval time.Duration
	// Timeout is how long the breaker stays open before a half-open trial request (default 30s).
	Timeout time.Duration
	// MinRequests is the sample size before the breaker may trip (default 10).
	MinRequests uint32
	// FailureRatio trips the breaker once reached (default 0.6).
	FailureRatio float64
}

// CircuitBreaker wraps a gobreaker instance and keeps the circuit breaker
// metrics up to date.
//
// Configuration:
//   - Max 3 concurrent requests in half-open state
//   - Opens after FailureRatio failures with at least MinRequests requests
type CircuitBreaker[T any] struct {
	cb   *gobreaker.CircuitBreaker[T]
	name string
}

// NewCircuitBreaker creates a named circuit breaker.
func NewCircuitBreaker[T any](name string, s Settings) *CircuitBreaker[T] {
	if s.Interval <= 0 {
		s.Interval = time.Minute
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	if s.MinRequests == 0 {
		s.MinRequests = 10
	}
	if s.FailureRatio <= 0 {
		s.FailureRatio = 0.6
	}

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    s.Interval,
		Timeout:     s.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= s.FailureRatio

			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := StateToString(from)
			toStr := StateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(StateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	}
	if s.IsSuccessful != nil {
		settings.IsSuccessful = s.IsSuccessful
	}

	return &CircuitBreaker[T]{
		cb:   gobreaker.NewCircuitBreaker[T](settings),
		name: name,
	}
}

// Execute runs fn with circuit breaker protection. When the circuit is open
// the call is rejected without running fn and the error wraps ErrOpen.
func (c *CircuitBreaker[T]) Execute(fn func() (T, error)) (T, error) {
	result, err := c.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			logging.Warn().Str("breaker", c.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			var zero T
			return zero, errors.Join(ErrOpen, err)
		}

		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
		counts := c.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(counts.ConsecutiveFailures))
		return result, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)

	return result, nil
}

// State returns the current breaker state.
func (c *CircuitBreaker[T]) State() gobreaker.State {
	return c.cb.State()
}

// Name returns the breaker name.
func (c *CircuitBreaker[T]) Name() string {
	return c.name
}

// ErrOpen is wrapped into errors returned while the circuit is open.
var ErrOpen = errors.New("circuit breaker open")

// StateToFloat converts circuit breaker state to numeric value for metrics
func StateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// StateToString converts circuit breaker state to string for logging
func StateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
