package kvprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	st "github.com/nsac-nust/stray-tracker/settings"

	"github.com/redis/go-redis/v9"
)

// Must not use one redis database with multiple deployments

type RedisProvider struct {
	Redis      *redis.Client
	maxRetries int
	backoff    time.Duration
}

func NewRedisProvider(conf *st.STRedis) (*RedisProvider, error) {
	if len(conf.Endpoint) == 0 {
		return nil, errors.New("no endpoint for redis")
	}
	timeout := time.Second * time.Duration(conf.ConnectionTimeoutSeconds)
	rdb := redis.NewClient(&redis.Options{
		Addr:         conf.Endpoint,
		Username:     conf.Username,
		Password:     conf.Password,
		MaxRetries:   conf.MaxRetries,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		DB:           conf.DB,
	})
	maxRetries := conf.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RedisProvider{Redis: rdb, maxRetries: maxRetries, backoff: timeout}, nil
}

// Ping checks the server is reachable.
func (prov *RedisProvider) Ping(ctx context.Context) error {
	if err := prov.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (prov *RedisProvider) Close() error {
	return prov.Redis.Close()
}

func retry[T any](prov *RedisProvider, ctx context.Context, genericCall func() (T, error)) (T, error) {
	var val T
	var err error
	for i := 0; i < prov.maxRetries; i++ {
		val, err = genericCall()
		// a missing key is an answer, not a failure
		if err == nil || errors.Is(err, redis.Nil) {
			return val, err
		}
		select {
		case <-ctx.Done():
			return val, ctx.Err()
		case <-time.After(prov.backoff):
		}
	}
	return val, err
}

func retryThree[T any, Z any](prov *RedisProvider, ctx context.Context, genericCall func() (T, Z, error)) (T, Z, error) {
	var val T
	var val2 Z
	var err error
	for i := 0; i < prov.maxRetries; i++ {
		val, val2, err = genericCall()
		if err == nil {
			return val, val2, err
		}
		select {
		case <-ctx.Done():
			return val, val2, ctx.Err()
		case <-time.After(prov.backoff):
		}
	}
	return val, val2, err
}

func (prov *RedisProvider) GetDBSize(ctx context.Context) int64 {
	val, _ := retry(prov, ctx, func() (int64, error) { return prov.Redis.DBSize(ctx).Result() })
	return val
}

func (prov *RedisProvider) GetBytes(ctx context.Context, key string) ([]byte, error) {
	val, err := retry(prov, ctx, func() ([]byte, error) { return prov.Redis.Get(ctx, key).Bytes() })
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return val, err
}

func (prov *RedisProvider) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	_, err := retry(prov, ctx, func() (int64, error) { return -1, prov.Redis.Set(ctx, key, value, expiration).Err() })
	return err
}

func (prov *RedisProvider) Del(ctx context.Context, key ...string) (int64, error) {
	return retry(prov, ctx, func() (int64, error) { return prov.Redis.Del(ctx, key...).Result() })
}

func (prov *RedisProvider) Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error) {
	return retryThree(prov, ctx, func() ([]string, uint64, error) { return prov.Redis.Scan(ctx, cursor, match, count).Result() })
}
