package run

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialBackoffWithoutJitter(t *testing.T) {
	t.Parallel()

	b := &ExponentialBackoff{Initial: time.Second, Max: 30 * time.Second, Multiplier: 2}
	require.Equal(t, time.Second, b.Delay(1))
	require.Equal(t, 2*time.Second, b.Delay(2))
	require.Equal(t, 16*time.Second, b.Delay(5))
	require.Equal(t, 30*time.Second, b.Delay(6))
	require.Equal(t, time.Second, b.Delay(0))
}

func TestExponentialBackoffJitterBounds(t *testing.T) {
	t.Parallel()

	low := NewExponentialBackoff()
	low.rand = func() float64 { return 0 }
	high := NewExponentialBackoff()
	high.rand = func() float64 { return 1 }

	require.Equal(t, 800*time.Millisecond, low.Delay(1))
	require.Equal(t, 1200*time.Millisecond, high.Delay(1))
	require.Equal(t, 24*time.Second, low.Delay(10))
	require.Equal(t, 36*time.Second, high.Delay(10))
}

func TestConstantBackoff(t *testing.T) {
	t.Parallel()

	require.Equal(t, 5*time.Millisecond, ConstantBackoff(5*time.Millisecond).Delay(7))
}
