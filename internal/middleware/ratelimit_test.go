package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, time.Hour)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("10.0.0.1"), "request %d within burst", i+1)
	}
	require.False(t, rl.Allow("10.0.0.1"), "bucket exhausted")

	// clients are limited independently
	require.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterDefaults(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0, 0)
	defer rl.Stop()

	require.Equal(t, 100, rl.burst)
	require.Equal(t, 15*time.Minute, rl.window)
}

func TestRateLimiterStopIdempotent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	rl.Stop()
}
