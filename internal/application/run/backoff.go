package run

import (
	"math"
	"math/rand"
	"time"
)

// Default retry backoff: 1s doubling per pass, capped at 30s, scaled by a
// random factor in [0.8, 1.2].
const (
	DefaultInitialDelay = time.Second
	DefaultMaxDelay     = 30 * time.Second
	DefaultMultiplier   = 2.0
	DefaultJitter       = 0.2
)

// Backoff computes the delay before a retry pass.
type Backoff interface {
	// Delay returns how long to wait before retry pass n (1-indexed).
	Delay(attempt int) time.Duration
}

// ConstantBackoff always waits the same interval.
type ConstantBackoff time.Duration

func (c ConstantBackoff) Delay(_ int) time.Duration { return time.Duration(c) }

// ExponentialBackoff multiplies Initial by Multiplier for every pass after the
// first, caps the result at Max and then scales it by a random factor in
// [1-Jitter, 1+Jitter].
type ExponentialBackoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64

	rand func() float64
}

// NewExponentialBackoff returns the default exponential strategy.
func NewExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		Initial:    DefaultInitialDelay,
		Max:        DefaultMaxDelay,
		Multiplier: DefaultMultiplier,
		Jitter:     DefaultJitter,
	}
}

func (b *ExponentialBackoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	multiplier := b.Multiplier
	if multiplier <= 0 {
		multiplier = DefaultMultiplier
	}
	d := float64(b.Initial) * math.Pow(multiplier, float64(attempt-1))
	if b.Max > 0 && d > float64(b.Max) {
		d = float64(b.Max)
	}
	if b.Jitter > 0 {
		r := rand.Float64
		if b.rand != nil {
			r = b.rand
		}
		d *= 1 - b.Jitter + r()*2*b.Jitter
	}
	return time.Duration(math.Round(d))
}
