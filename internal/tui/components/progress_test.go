package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	t.Parallel()

	t.Run("creates progress with specified total", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(10)
		require.Equal(t, 10, p.total)
		require.Equal(t, 30, p.bar.Width)
	})

	t.Run("creates progress with zero total", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(0)
		require.Equal(t, 0, p.total)
	})
}

func TestProgressPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, settled, want int
	}{
		{0, 0, 0},
		{4, 1, 25},
		{3, 1, 33},
		{3, 2, 67},
		{2, 2, 100},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NewProgress(tt.total).Percent(tt.settled), "%d/%d", tt.settled, tt.total)
	}
}

func TestProgressView(t *testing.T) {
	t.Parallel()

	t.Run("renders with zero total", func(t *testing.T) {
		t.Parallel()
		view := NewProgress(0).View(0)
		require.Contains(t, view, "0/0")
		require.Contains(t, view, "0%")
	})

	t.Run("renders with partial completion", func(t *testing.T) {
		t.Parallel()
		view := NewProgress(10).View(5)
		require.Contains(t, view, "5/10")
		require.Contains(t, view, "50%")
	})

	t.Run("renders with full completion", func(t *testing.T) {
		t.Parallel()
		view := NewProgress(10).View(10)
		require.Contains(t, view, "10/10")
		require.Contains(t, view, "100%")
	})

	t.Run("progress bar takes up space", func(t *testing.T) {
		t.Parallel()
		view := NewProgress(100).View(50)
		require.Greater(t, len(strings.TrimSpace(view)), len("50/100  50%"))
	})
}
