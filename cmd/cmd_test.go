package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nsac-nust/stray-tracker/dedupe"
	st "github.com/nsac-nust/stray-tracker/settings"
)

func TestFilterSizing(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, runFilterSizing(out, 10000, 7, 1000, 2000))
	text := out.String()
	require.Contains(t, text, "capacity\t10000\n")
	require.Contains(t, text, "theoretical false positive rate\t0.008194\n")
	require.Contains(t, text, "of 2000 probes)")
	require.Contains(t, text, "best hash count for this capacity\t7\n")

	require.Error(t, runFilterSizing(out, 0, 7, 10, 10))
	require.Error(t, runFilterSizing(out, 100, 0, 10, 10))
}

func TestCheckImage(t *testing.T) {
	dir := t.TempDir()
	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"), make([]byte, 32)...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cat.png"), png, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cat.jpg"), png, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0600))

	out := &bytes.Buffer{}
	runCheckImage(out, []string{dir, filepath.Join(dir, "missing.png")})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	// walk order is lexical
	require.Contains(t, lines[0], "cat.jpg\t\trejected")
	require.Contains(t, lines[1], "cat.png\t\taccepted\timage/png")
	require.Contains(t, lines[2], "notes.txt\t\trejected")
	require.Contains(t, lines[3], "*Unable to stat")
}

func TestSeedMemoryStore(t *testing.T) {
	ctx := context.Background()
	store, closeStore, err := openStore(ctx)
	require.NoError(t, err)
	defer closeStore()

	require.NoError(t, seedStore(ctx, store, ""))
	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, count)
	// already seeded
	require.NoError(t, seedStore(ctx, store, ""))
	count, err = store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, count)

	require.Error(t, seedStore(ctx, store, filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	defer func(backend string) { st.Store.Backend = backend }(st.Store.Backend)
	st.Store.Backend = "sqlite"
	_, _, err := openStore(context.Background())
	require.ErrorContains(t, err, "unknown store backend")
}

func TestNewVoteFilter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func(interval time.Duration) { st.Votes.FilterRotateInterval = interval }(st.Votes.FilterRotateInterval)

	st.Votes.FilterRotateInterval = 0
	f, ok := newVoteFilter(ctx).(*dedupe.Filter)
	require.True(t, ok)
	require.Equal(t, st.Votes.FilterCapacity, f.Capacity())
	require.Equal(t, st.Votes.FilterHashCount, f.HashCount())

	st.Votes.FilterRotateInterval = time.Hour
	_, ok = newVoteFilter(ctx).(*dedupe.Rotating)
	require.True(t, ok)
}
