package kvprovider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestMemoryProvider(t *testing.T) {
	prov := NewMemoryProvider()

	// should be same tests as redis provider as they should function identically
	keys, cursor, err := prov.Scan(ctx, 0, "animal.*", 1000)
	require.Nil(t, err)
	require.Equal(t, cursor, uint64(0))
	require.Equal(t, keys, []string{})

	res, err := prov.GetBytes(ctx, "animal.1")
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, res)

	err = prov.Set(ctx, "animal.1", []byte("my message"), 0)
	require.Nil(t, err)

	res, err = prov.GetBytes(ctx, "animal.1")
	require.Nil(t, err)
	require.Equal(t, res, []byte("my message"))

	// returned slices are copies
	res[0] = 'X'
	res, err = prov.GetBytes(ctx, "animal.1")
	require.Nil(t, err)
	require.Equal(t, res, []byte("my message"))

	err = prov.Set(ctx, "animal.2", []byte("my message"), 0)
	require.Nil(t, err)
	err = prov.Set(ctx, "animal.3", []byte("my message"), 0)
	require.Nil(t, err)
	err = prov.Set(ctx, "counter.animal", []byte("3"), 0)
	require.Nil(t, err)

	keys, err = ScanAll(ctx, prov, "animal.*")
	require.Nil(t, err)
	require.ElementsMatch(t, keys, []string{
		"animal.1",
		"animal.2",
		"animal.3",
	})
	require.Equal(t, int64(4), prov.GetDBSize(ctx))

	deleted, err := prov.Del(ctx, "animal.2", "animal.missing")
	require.Nil(t, err)
	require.Equal(t, int64(1), deleted)
	require.Equal(t, int64(3), prov.GetDBSize(ctx))
}
