package integration_tests

import (
	"context"
	"os"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/nsac-nust/stray-tracker/animals"
	"github.com/nsac-nust/stray-tracker/kvprovider"
	st "github.com/nsac-nust/stray-tracker/settings"
)

// RedisProvider connects to the configured redis, falling back to REDIS_ENDPOINT.
func RedisProvider(t *testing.T) *kvprovider.RedisProvider {
	conf := st.Store.Redis
	if conf.Endpoint == "" {
		conf.Endpoint = os.Getenv("REDIS_ENDPOINT")
	}
	prov, err := kvprovider.NewRedisProvider(&conf)
	require.NoError(t, err)
	require.NoError(t, prov.Ping(context.Background()))
	t.Cleanup(func() { prov.Close() })
	return prov
}

// CleanRedisStore returns an animal store over redis with every animal and the id sequence removed.
func CleanRedisStore(t *testing.T) *animals.KVStore {
	ctx := context.Background()
	prov := RedisProvider(t)
	keys, err := kvprovider.ScanAll(ctx, prov, "animal.*")
	require.NoError(t, err)
	keys = append(keys, "seq.animal")
	_, err = prov.Del(ctx, keys...)
	require.NoError(t, err)
	return animals.NewKVStore(prov)
}

// compare two structures by first dumping to json
func MarshalEqual(t *testing.T, in1, in2 any) {
	raw1, err := json.Marshal(in1)
	require.Nil(t, err)
	raw2, err := json.Marshal(in2)
	require.Nil(t, err)
	require.JSONEq(t, string(raw1), string(raw2))
}
