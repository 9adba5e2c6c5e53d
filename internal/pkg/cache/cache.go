package cache

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// SetupCache connects to the redis (or Dragonfly) server at addr. An
// unreachable server is logged, not fatal: only optional features use it.
func SetupCache(addr, password string) *redis.Client {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Warnf("[Cache] Could not connect to %s: %v", addr, err)
	} else {
		log.Infof("[Cache] Connected to %s: %s", addr, pong)
	}
	return client
}

// GetClient returns the client created by SetupCache, or nil.
func GetClient() *redis.Client {
	return client
}

// Set stores a value with the given expiration.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get returns the value for key; redis.Nil when it does not exist.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// HIncrBy increments field of the hash at key.
func HIncrBy(ctx context.Context, key, field string, incr int64) error {
	return client.HIncrBy(ctx, key, field, incr).Err()
}

// HGetAll returns every field of the hash at key. Missing keys yield an empty map.
func HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return client.HGetAll(ctx, key).Result()
}
