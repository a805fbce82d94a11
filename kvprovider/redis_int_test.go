//go:build integration

package kvprovider

import (
	"os"
	"testing"

	st "github.com/nsac-nust/stray-tracker/settings"
	"github.com/stretchr/testify/require"
)

func TestRedisProvider(t *testing.T) {
	conf := st.Store.Redis
	if conf.Endpoint == "" {
		conf.Endpoint = os.Getenv("REDIS_ENDPOINT")
	}
	prov, err := NewRedisProvider(&conf)
	require.Nil(t, err)
	defer prov.Close()
	require.Nil(t, prov.Ping(ctx))

	// clear previous run
	keys, err := ScanAll(ctx, prov, "animal.*")
	require.Nil(t, err)
	for _, k := range keys {
		_, err := prov.Del(ctx, k)
		require.Nil(t, err)
	}

	// should be same tests as memory provider as they should function identically
	keys, err = ScanAll(ctx, prov, "animal.*")
	require.Nil(t, err)
	require.Equal(t, keys, []string{})

	_, err = prov.GetBytes(ctx, "animal.1")
	require.ErrorIs(t, err, ErrNotFound)

	err = prov.Set(ctx, "animal.1", []byte("my message"), 0)
	require.Nil(t, err)

	res, err := prov.GetBytes(ctx, "animal.1")
	require.Nil(t, err)
	require.Equal(t, res, []byte("my message"))

	err = prov.Set(ctx, "animal.2", []byte("my message"), 0)
	require.Nil(t, err)
	err = prov.Set(ctx, "animal.3", []byte("my message"), 0)
	require.Nil(t, err)

	keys, err = ScanAll(ctx, prov, "animal.*")
	require.Nil(t, err)
	require.ElementsMatch(t, keys, []string{
		"animal.1",
		"animal.2",
		"animal.3",
	})

	deleted, err := prov.Del(ctx, "animal.2", "animal.missing")
	require.Nil(t, err)
	require.Equal(t, int64(1), deleted)
}
