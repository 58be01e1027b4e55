package resumeurl_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/resume-url/pkg/resumeurl"
)

func minutes(v int64) *int64 {
	return &v
}

func TestResolveExpiration(t *testing.T) {
	policy := resumeurl.DefaultPolicy()

	tests := []struct {
		name      string
		requested *int64
		want      time.Duration
	}{
		{"absent uses default", nil, 15 * time.Minute},
		{"within range", minutes(60), 60 * time.Minute},
		{"exactly max", minutes(1440), 24 * time.Hour},
		{"one above max is clamped", minutes(1441), 24 * time.Hour},
		{"far above max is clamped", minutes(2000), 24 * time.Hour},
		{"int64 max does not overflow", minutes(math.MaxInt64), 24 * time.Hour},
		{"zero passes through", minutes(0), 0},
		{"negative passes through", minutes(-5), -5 * time.Minute},
		{"int64 min saturates", minutes(math.MinInt64), time.Duration(math.MinInt64/int64(time.Minute)) * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resumeurl.ResolveExpiration(tt.requested, policy))
		})
	}
}

func TestResolveExpiration_Sweep(t *testing.T) {
	policy := resumeurl.DefaultPolicy()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		v := rng.Int63n(1441*2) - 1441
		got := resumeurl.ResolveExpiration(&v, policy)
		assert.Equal(t, time.Duration(v)*time.Minute, got, "v=%d", v)
	}

	for i := 0; i < 1000; i++ {
		v := 1441 + rng.Int63n(math.MaxInt64-1441)
		got := resumeurl.ResolveExpiration(&v, policy)
		assert.Equal(t, 24*time.Hour, got, "v=%d", v)
	}
}

func TestResolveExpiration_CustomPolicy(t *testing.T) {
	policy := resumeurl.ExpirationPolicy{Default: 5 * time.Minute, Max: 90 * time.Minute}

	assert.Equal(t, 5*time.Minute, resumeurl.ResolveExpiration(nil, policy))
	assert.Equal(t, 90*time.Minute, resumeurl.ResolveExpiration(minutes(91), policy))
	assert.Equal(t, 45*time.Minute, resumeurl.ResolveExpiration(minutes(45), policy))
}

func TestExpirationPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  resumeurl.ExpirationPolicy
		wantErr bool
	}{
		{"default policy", resumeurl.DefaultPolicy(), false},
		{"equal default and max", resumeurl.ExpirationPolicy{Default: time.Hour, Max: time.Hour}, false},
		{"zero default", resumeurl.ExpirationPolicy{Default: 0, Max: time.Hour}, true},
		{"negative max", resumeurl.ExpirationPolicy{Default: time.Minute, Max: -time.Hour}, true},
		{"default above max", resumeurl.ExpirationPolicy{Default: 2 * time.Hour, Max: time.Hour}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, resumeurl.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
