package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nsac-nust/stray-tracker/animals"
	"github.com/nsac-nust/stray-tracker/kvprovider"
	st "github.com/nsac-nust/stray-tracker/settings"
)

// openStore connects the configured animal store. The returned func releases it.
func openStore(ctx context.Context) (*animals.KVStore, func(), error) {
	switch st.Store.Backend {
	case "memory":
		return animals.NewKVStore(kvprovider.NewMemoryProvider()), func() {}, nil
	case "redis":
		prov, err := kvprovider.NewRedisProvider(&st.Store.Redis)
		if err != nil {
			return nil, nil, err
		}
		if err := prov.Ping(ctx); err != nil {
			prov.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", st.Store.Redis.Endpoint, err)
		}
		closer := func() {
			if err := prov.Close(); err != nil {
				st.Logger.Warn().Err(err).Msg("closing redis")
			}
		}
		return animals.NewKVStore(prov), closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q, expected memory or redis", st.Store.Backend)
	}
}

// loadSeed reads the seed file, falling back to the animals bundled with the binary.
func loadSeed(file string) ([]*animals.Animal, error) {
	content := animals.DefaultSeed
	if file != "" {
		var err error
		content, err = os.ReadFile(file)
		if err != nil {
			return nil, err
		}
	}
	return animals.LoadSeed(content)
}

// seedStore writes seed animals into store if it is empty.
func seedStore(ctx context.Context, store animals.Store, file string) error {
	seed, err := loadSeed(file)
	if err != nil {
		return fmt.Errorf("seed %q: %w", file, err)
	}
	n, err := animals.Seed(ctx, store, seed)
	if err != nil {
		return err
	}
	if n > 0 {
		st.Logger.Info().Int("animals", n).Msg("seeded empty animal store")
	}
	return nil
}
