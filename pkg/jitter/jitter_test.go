package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationStaysInRange(t *testing.T) {
	base := 100 * time.Millisecond

	for range 100 {
		d := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, d, base)
		assert.Less(t, d, base+base/2)
	}
}

func TestDurationWithoutFactor(t *testing.T) {
	assert.Equal(t, time.Second, Duration(time.Second, 0))
	assert.Equal(t, time.Duration(0), Duration(0, DefaultJitter))
}

func TestExponentialBackoff(t *testing.T) {
	base, max := 100*time.Millisecond, time.Second

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 100 * time.Millisecond},
		{attempt: 1, want: 200 * time.Millisecond},
		{attempt: 3, want: 800 * time.Millisecond},
		{attempt: 4, want: time.Second},
		{attempt: 40, want: time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExponentialBackoff(base, max, tt.attempt, 0), "attempt %d", tt.attempt)
	}
}
