package engine

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBWLimiter(t *testing.T) {
	t.Parallel()

	t.Run("burst capped to rate when rate < 1MB", func(t *testing.T) {
		t.Parallel()
		lim := NewBWLimiter(1024)
		assert.Equal(t, 1024, lim.Burst())
	})

	t.Run("burst is 1MB when rate >= 1MB", func(t *testing.T) {
		t.Parallel()
		lim := NewBWLimiter(10 * 1024 * 1024)
		assert.Equal(t, 1<<20, lim.Burst())
	})
}

func TestRateLimitedReader(t *testing.T) {
	t.Parallel()

	t.Run("reads all data", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte("x"), 4096)
		lim := NewBWLimiter(1 << 20)
		rl := newRateLimitedReader(context.Background(), bytes.NewReader(data), lim)

		got, err := io.ReadAll(rl)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("reads larger than burst are clamped", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte("y"), 300)
		lim := NewBWLimiter(100 * 1024) // burst 100 KiB
		lim.SetBurst(128)
		rl := newRateLimitedReader(context.Background(), bytes.NewReader(data), lim)

		buf := make([]byte, 4096)
		n, err := rl.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, 128, n)
	})

	t.Run("enforces rate limit", func(t *testing.T) {
		t.Parallel()
		// 10 KiB at 5 KiB/s with a 5 KiB burst takes about a second.
		data := bytes.Repeat([]byte("a"), 10*1024)
		lim := NewBWLimiter(5 * 1024)
		rl := newRateLimitedReader(context.Background(), bytes.NewReader(data), lim)

		start := time.Now()
		got, err := io.ReadAll(rl)
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, data, got)
		assert.GreaterOrEqual(t, elapsed, 800*time.Millisecond)
	})

	t.Run("cancelled context stops reads", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		data := bytes.Repeat([]byte("b"), 4096)
		lim := NewBWLimiter(1024)
		// Drain the burst so the next WaitN must block.
		require.True(t, lim.AllowN(time.Now(), 1024))
		rl := newRateLimitedReader(ctx, bytes.NewReader(data), lim)

		_, err := io.ReadAll(rl)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
