package storage

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

// RedisStorage stores each key as a plain redis string
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage connects to addr and verifies the connection with PING
func NewRedisStorage(addr string, timeout time.Duration) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", ErrUnavailable, addr, err)
	}
	return &RedisStorage{client: client}, nil
}

// GetItem returns the string stored at key
func (r *RedisStorage) GetItem(key string) (string, bool, error) {
	v, err := r.client.Get(key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetItem writes value without expiry
func (r *RedisStorage) SetItem(key, value string) error {
	return r.client.Set(key, value, 0).Err()
}

// Close closes the redis client
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
