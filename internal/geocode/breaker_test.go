// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/footfall/internal/config"
	"github.com/tomtom215/footfall/internal/models"
)

type fakeGeocoder struct {
	calls atomic.Int32
	err   error
}

func (f *fakeGeocoder) Reverse(_ context.Context, _, _ float64) (*models.Place, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Place{City: "Testville"}, nil
}

func testBreakerSettings(name string) BreakerSettings {
	s := DefaultBreakerSettings()
	s.Name = name
	s.MinRequests = 3
	s.Timeout = time.Hour
	return s
}

func TestBreakerGeocoder_PassesThrough(t *testing.T) {
	inner := &fakeGeocoder{}
	b := NewBreakerGeocoder(inner, testBreakerSettings("test-pass"))

	place, err := b.Reverse(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}
	if place.City != "Testville" {
		t.Errorf("City = %q, want Testville", place.City)
	}
	if got := b.state(); got != "closed" {
		t.Errorf("state() = %q, want closed", got)
	}
}

func TestBreakerGeocoder_OpensAfterFailures(t *testing.T) {
	inner := &fakeGeocoder{err: ErrUnavailable}
	b := NewBreakerGeocoder(inner, testBreakerSettings("test-open"))

	for i := 0; i < 3; i++ {
		_, _ = b.Reverse(context.Background(), 1, 2)
	}
	if got := b.state(); got != "open" {
		t.Fatalf("state() = %q, want open", got)
	}

	before := inner.calls.Load()
	_, err := b.Reverse(context.Background(), 1, 2)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Reverse() error = %v, want ErrUnavailable", err)
	}
	if inner.calls.Load() != before {
		t.Error("Reverse() reached the wrapped geocoder while the circuit was open")
	}
}

func TestBreakerGeocoder_CancellationDoesNotTrip(t *testing.T) {
	inner := &fakeGeocoder{err: context.Canceled}
	b := NewBreakerGeocoder(inner, testBreakerSettings("test-cancel"))

	for i := 0; i < 5; i++ {
		_, _ = b.Reverse(context.Background(), 1, 2)
	}
	if got := b.state(); got != "closed" {
		t.Errorf("state() = %q, want closed", got)
	}
}

func TestBreakerGeocoder_LocalThrottlingDoesNotTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"Paris","address":{"country":"France","city":"Paris"}}`))
	}))
	t.Cleanup(server.Close)

	client := NewNominatimClient(&config.GeocodeConfig{
		URL:           server.URL,
		Timeout:       2 * time.Second,
		UserAgent:     "Footfall-Test/1.0",
		RatePerSecond: 1,
	})
	b := NewBreakerGeocoder(client, testBreakerSettings("test-throttle"))

	var wg sync.WaitGroup
	var throttled atomic.Int32
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()
			if _, err := b.Reverse(ctx, 48.85, 2.35); errors.Is(err, ErrThrottled) {
				throttled.Add(1)
			}
		}()
	}
	wg.Wait()

	if throttled.Load() == 0 {
		t.Fatal("no lookup was throttled, burst did not exceed the rate limit")
	}
	if got := b.state(); got != "closed" {
		t.Errorf("state() after local throttling = %q, want closed", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	place, err := b.Reverse(ctx, 48.85, 2.35)
	if err != nil {
		t.Fatalf("Reverse() after throttling error = %v, want success", err)
	}
	if place.City != "Paris" {
		t.Errorf("City = %q, want Paris", place.City)
	}
}

func TestStateToFloat(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.want {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
