// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/trickortreat/internal/metrics"
)

var errBoom = errors.New("boom")

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker[int]("test-open", Settings{MinRequests: 3, FailureRatio: 0.5, Timeout: time.Minute})

	for i := 0; i < 3; i++ {
		if _, err := cb.Execute(func() (int, error) { return 0, errBoom }); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: expected errBoom, got %v", i, err)
		}
	}

	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("expected open state, got %s", StateToString(cb.State()))
	}

	called := false
	_, err := cb.Execute(func() (int, error) {
		called = true
		return 1, nil
	})
	if !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
	if called {
		t.Error("function must not run while the circuit is open")
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-open")); got != 2 {
		t.Errorf("expected state metric 2 (open), got %v", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-open", "rejected")); got != 1 {
		t.Errorf("expected 1 rejected request, got %v", got)
	}
}

func TestCircuitBreaker_IsSuccessfulExcludesErrors(t *testing.T) {
	errMiss := errors.New("no match")
	cb := NewCircuitBreaker[int]("test-success", Settings{
		MinRequests:  2,
		FailureRatio: 0.5,
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errMiss) },
	})

	for i := 0; i < 5; i++ {
		if _, err := cb.Execute(func() (int, error) { return 0, errMiss }); !errors.Is(err, errMiss) {
			t.Fatalf("expected errMiss to pass through, got %v", err)
		}
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed state, got %s", StateToString(cb.State()))
	}
}

func TestCircuitBreaker_Success(t *testing.T) {
	cb := NewCircuitBreaker[string]("test-success-path", Settings{})

	got, err := cb.Execute(func() (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Fatalf("Execute() = %q, %v", got, err)
	}
	if cb.Name() != "test-success-path" {
		t.Errorf("unexpected name %q", cb.Name())
	}
}

func TestStateConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		f     float64
		s     string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
	}
	for _, tt := range tests {
		if got := StateToFloat(tt.state); got != tt.f {
			t.Errorf("StateToFloat(%v) = %v, want %v", tt.state, got, tt.f)
		}
		if got := StateToString(tt.state); got != tt.s {
			t.Errorf("StateToString(%v) = %q, want %q", tt.state, got, tt.s)
		}
	}
}
