package transitionmw

import (
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy calculates the delay before a retry.
// Attempt starts at 1 for the first retry.
type BackoffStrategy interface {
	NextInterval(attempt int) time.Duration
}

// ExponentialBackoff grows the delay geometrically, with optional jitter.
type ExponentialBackoff struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	JitterFactor    float64
}

// NextInterval returns min(InitialInterval * Multiplier^(attempt-1) * (1 ± JitterFactor), MaxInterval).
func (e ExponentialBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := e.InitialInterval
	if initial == 0 {
		initial = 100 * time.Millisecond
	}
	maxInterval := e.MaxInterval
	if maxInterval == 0 {
		maxInterval = 5 * time.Second
	}
	multiplier := e.Multiplier
	if multiplier == 0 {
		multiplier = 2
	}

	interval := float64(initial) * math.Pow(multiplier, float64(attempt-1))
	if e.JitterFactor > 0 {
		interval *= 1 + (rand.Float64()*2-1)*e.JitterFactor
	}
	if interval > float64(maxInterval) {
		interval = float64(maxInterval)
	}
	return time.Duration(interval)
}

// LinearBackoff grows the delay by Interval on every attempt.
type LinearBackoff struct {
	Interval    time.Duration
	MaxInterval time.Duration
}

func (l LinearBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	interval := l.Interval
	if interval == 0 {
		interval = 100 * time.Millisecond
	}
	maxInterval := l.MaxInterval
	if maxInterval == 0 {
		maxInterval = 5 * time.Second
	}

	return min(interval*time.Duration(attempt), maxInterval)
}

// FixedBackoff waits the same Interval before every retry.
type FixedBackoff struct {
	Interval time.Duration
}

func (f FixedBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return f.Interval
}

// DefaultBackoffStrategy returns an exponential backoff tuned for in-process
// transition actions.
func DefaultBackoffStrategy() BackoffStrategy {
	return ExponentialBackoff{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2,
		JitterFactor:    0.1,
	}
}
