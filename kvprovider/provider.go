package kvprovider

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by GetBytes when a key does not exist.
var ErrNotFound = errors.New("key not found")

// A KVInterface provides a fast key-value store. This is intended so we can run the service and its
// unit tests without connecting to redis.
type KVInterface interface {
	// GetBytes returns ErrNotFound for missing keys.
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	/*Delete any number of keys and return the number of elements that were deleted and any errors.*/
	Del(ctx context.Context, keys ...string) (int64, error)
	Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error)
	GetDBSize(ctx context.Context) int64
}

// ScanAll follows the scan cursor until every key matching match has been collected.
func ScanAll(ctx context.Context, kv KVInterface, match string) ([]string, error) {
	all := []string{}
	var cursor uint64
	for {
		keys, next, err := kv.Scan(ctx, cursor, match, 1000)
		if err != nil {
			return nil, err
		}
		all = append(all, keys...)
		if next == 0 {
			return all, nil
		}
		cursor = next
	}
}
