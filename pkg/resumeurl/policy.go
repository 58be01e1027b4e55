package resumeurl

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultExpiration is used when the caller does not ask for a duration
	DefaultExpiration = 15 * time.Minute

	// MaxExpiration is the ceiling applied to caller requests
	MaxExpiration = 24 * time.Hour
)

// minMinutes is the most negative whole-minute count a time.Duration can hold.
const minMinutes = math.MinInt64 / int64(time.Minute)

// ExpirationPolicy bounds how long issued URLs stay valid.
type ExpirationPolicy struct {
	Default time.Duration
	Max     time.Duration
}

// DefaultPolicy returns the 15 minute default / 24 hour maximum policy.
func DefaultPolicy() ExpirationPolicy {
	return ExpirationPolicy{
		Default: DefaultExpiration,
		Max:     MaxExpiration,
	}
}

// Validate checks that 0 < Default <= Max.
func (p ExpirationPolicy) Validate() error {
	if p.Default <= 0 {
		return fmt.Errorf("%w: default expiration must be positive, got %s", ErrInvalidConfig, p.Default)
	}
	if p.Max <= 0 {
		return fmt.Errorf("%w: max expiration must be positive, got %s", ErrInvalidConfig, p.Max)
	}
	if p.Default > p.Max {
		return fmt.Errorf("%w: default expiration %s exceeds max expiration %s", ErrInvalidConfig, p.Default, p.Max)
	}
	return nil
}

// ResolveExpiration picks the effective duration for a request.
//
// nil yields the policy default and anything above the maximum is clamped to
// it. Other values, zero and negatives included, pass through unchanged.
// The comparison happens in minutes so oversized requests never overflow.
func ResolveExpiration(requestedMinutes *int64, p ExpirationPolicy) time.Duration {
	if requestedMinutes == nil {
		return p.Default
	}

	minutes := *requestedMinutes
	if minutes > int64(p.Max/time.Minute) {
		return p.Max
	}
	if minutes < minMinutes {
		minutes = minMinutes
	}
	return time.Duration(minutes) * time.Minute
}
