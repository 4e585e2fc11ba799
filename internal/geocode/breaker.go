// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/footfall/internal/logging"
	"github.com/tomtom215/footfall/internal/metrics"
	"github.com/tomtom215/footfall/internal/models"
)

// BreakerSettings tunes the circuit breaker around a reverse geocoder.
type BreakerSettings struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// MinRequests is the number of calls in an interval before the failure
	// ratio is considered.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings returns the production settings:
// 3 probes in half-open, 1 minute window, 2 minutes open,
// trip at 60% failures over at least 10 calls.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "nominatim",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerGeocoder wraps a ReverseGeocoder with a circuit breaker so that a
// slow or failing provider stops costing every ingestion call its full
// timeout. While the circuit is open lookups fail immediately with
// ErrUnavailable.
type BreakerGeocoder struct {
	next ReverseGeocoder
	cb   *gobreaker.CircuitBreaker[*models.Place]
	name string
}

// NewBreakerGeocoder wraps next with a circuit breaker.
func NewBreakerGeocoder(next ReverseGeocoder, s BreakerSettings) *BreakerGeocoder {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*models.Place](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
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
					Str("breaker", s.Name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		// Neither the caller giving up nor our own rate limit is a
		// provider failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrThrottled)
		},
	})

	return &BreakerGeocoder{next: next, cb: cb, name: s.Name}
}

// Reverse delegates to the wrapped geocoder unless the circuit is open.
func (b *BreakerGeocoder) Reverse(ctx context.Context, lat, lon float64) (*models.Place, error) {
	place, err := b.cb.Execute(func() (*models.Place, error) {
		return b.next.Reverse(ctx, lat, lon)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		outcome := "failure"
		if errors.Is(err, ErrThrottled) {
			outcome = "throttled"
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, outcome).Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return place, nil
}

func (b *BreakerGeocoder) state() string {
	return stateToString(b.cb.State())
}

func stateToString(state gobreaker.State) string {
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

func stateToFloat(state gobreaker.State) float64 {
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
