package kvprovider

import (
	"context"
	"path"
	"sync"
	"time"
)

type MemoryProvider struct {
	Mem map[string][]byte
	mu  sync.Mutex
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		Mem: make(map[string][]byte),
	}
}

func (prov *MemoryProvider) GetDBSize(ctx context.Context) int64 {
	prov.mu.Lock()
	defer prov.mu.Unlock()
	return int64(len(prov.Mem))
}

func (prov *MemoryProvider) GetBytes(ctx context.Context, key string) ([]byte, error) {
	prov.mu.Lock()
	defer prov.mu.Unlock()
	val, ok := prov.Mem[key]
	if !ok {
		return nil, ErrNotFound
	}
	// callers may modify the returned slice
	return append([]byte(nil), val...), nil
}

// Set stores value. Expiration is ignored as nothing stored in memory outlives the process.
func (prov *MemoryProvider) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	prov.mu.Lock()
	defer prov.mu.Unlock()
	prov.Mem[key] = append([]byte(nil), value...)
	return nil
}

func (prov *MemoryProvider) Del(ctx context.Context, keys ...string) (int64, error) {
	prov.mu.Lock()
	defer prov.mu.Unlock()
	var deletedKeys int64
	for _, k := range keys {
		if _, ok := prov.Mem[k]; ok {
			delete(prov.Mem, k)
			deletedKeys += 1
		}
	}
	return deletedKeys, nil
}

// Scan returns every matching key in one page. Patterns use redis glob syntax.
func (prov *MemoryProvider) Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error) {
	prov.mu.Lock()
	defer prov.mu.Unlock()
	keys := []string{}
	for k := range prov.Mem {
		ok, err := path.Match(match, k)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			keys = append(keys, k)
		}
	}
	return keys, 0, nil
}
