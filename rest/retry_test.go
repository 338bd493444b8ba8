package rest

import (
	"net/http"
	"testing"
	"time"
)

func TestTransientStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusPreconditionFailed, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
	}
	for _, tt := range tests {
		if got := transientStatus(tt.status); got != tt.want {
			t.Errorf("transientStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestBackoffDelayGrowsAndCaps(t *testing.T) {
	policy := BackoffPolicy{
		MaxAttempts: 6,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    time.Second,
		Multiplier:  2,
	}

	wants := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
	}
	for i, want := range wants {
		if got := policy.delay(i + 1); got != want {
			t.Errorf("delay(%d) = %v, want %v", i+1, got, want)
		}
	}
}

func TestBackoffDelayJitterBounds(t *testing.T) {
	policy := BackoffPolicy{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    time.Second,
		Multiplier:  2,
		Jitter:      0.5,
	}

	for i := 0; i < 100; i++ {
		d := policy.delay(1)
		if d < 50*time.Millisecond || d > 150*time.Millisecond {
			t.Fatalf("delay(1) = %v, want within [50ms, 150ms]", d)
		}
	}
}

func TestBackoffZeroPolicyDisablesRetries(t *testing.T) {
	var policy BackoffPolicy
	if got := policy.attempts(); got != 1 {
		t.Errorf("attempts() = %d, want 1", got)
	}
}
