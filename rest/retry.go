package rest

import (
	"math/rand"
	"time"
)

// BackoffPolicy controls retries of idempotent requests. The zero value
// disables retries (a single attempt).
type BackoffPolicy struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the computed delay. Zero means no cap.
	MaxDelay time.Duration
	// Multiplier grows the delay between consecutive retries. Values
	// below 1 are treated as 2.
	Multiplier float64
	// Jitter is the fraction of the delay randomized in both directions,
	// in [0, 1].
	Jitter float64
}

// DefaultBackoff retries transient failures a few times with exponential
// backoff and full jitter fraction of 0.2.
var DefaultBackoff = BackoffPolicy{
	MaxAttempts: 3,
	BaseDelay:   250 * time.Millisecond,
	MaxDelay:    5 * time.Second,
	Multiplier:  2,
	Jitter:      0.2,
}

func (p BackoffPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// delay computes the sleep before the given retry, where attempt counts
// the attempts already made.
func (p BackoffPolicy) delay(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = 250 * time.Millisecond
	}
	mult := p.Multiplier
	if mult < 1 {
		mult = 2
	}
	d := float64(base)
	for i := 1; i < attempt; i++ {
		d *= mult
	}
	if p.MaxDelay > 0 && d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	if p.Jitter > 0 {
		f := p.Jitter
		if f > 1 {
			f = 1
		}
		// Spread the delay uniformly over [d*(1-f), d*(1+f)].
		d = d * (1 - f + 2*f*rand.Float64())
	}
	return time.Duration(d)
}

// Attempt describes one request attempt, reported via the OnAttempt hook.
type Attempt struct {
	// Number of this attempt, starting at 1.
	Number int
	Method string
	URL    string
	// Status is the response status code, or 0 when the attempt failed
	// before receiving one.
	Status int
	// Err is the transport error of this attempt, if any.
	Err error
}

// transientStatus reports whether a response status justifies a retry.
// Client errors other than 429 never do.
func transientStatus(code int) bool {
	return code == 429 || code >= 500
}
