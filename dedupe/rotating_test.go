package dedupe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRotating(t *testing.T) {
	created := 0
	r := NewRotating(func() *Filter {
		created++
		return New(1000, 5)
	})
	require.Equal(t, 1, created)
	require.False(t, r.Contains("a"))
	r.Insert("a")
	require.True(t, r.Contains("a"))
	first := r.Current()

	r.Rotate()
	require.Equal(t, 2, created)
	require.NotSame(t, first, r.Current())
	require.False(t, r.Contains("a"))
	// the discarded filter is untouched
	require.True(t, first.Contains("a"))

	r.Insert("b")
	require.True(t, r.Contains("b"))
}

func TestRotatingRun(t *testing.T) {
	r := NewRotating(func() *Filter { return New(1000, 5) })
	r.Insert("a")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, 10*time.Millisecond)
		close(done)
	}()
	require.Eventually(t, func() bool { return !r.Contains("a") }, 2*time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
