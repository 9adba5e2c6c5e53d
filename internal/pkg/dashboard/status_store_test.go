package dashboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
)

func swapCache(t *testing.T) map[string]string {
	t.Helper()
	originalSet := dashboard.SetCacheImplementation
	originalGet := dashboard.GetCacheImplementation
	t.Cleanup(func() {
		dashboard.SetCacheImplementation = originalSet
		dashboard.GetCacheImplementation = originalGet
	})

	store := map[string]string{}
	dashboard.SetCacheImplementation = func(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
		store[key] = fmt.Sprint(value)
		return nil
	}
	dashboard.GetCacheImplementation = func(ctx context.Context, key string) (string, error) {
		v, ok := store[key]
		if !ok {
			return "", redis.Nil
		}
		return v, nil
	}
	return store
}

func TestRedisStatusStore(t *testing.T) {
	t.Run("mirrors the latest status", func(t *testing.T) {
		backing := swapCache(t)
		store := dashboard.NewRedisStatusStore(time.Minute)

		store.OnTransition(dashboard.Transition{ID: "abc", From: dashboard.StatusInitial, To: dashboard.StatusLoading})
		assert.Equal(t, "LOADING", backing["dashboard:status:abc"])

		store.OnTransition(dashboard.Transition{ID: "abc", From: dashboard.StatusLoading, To: dashboard.StatusFailure})

		status, err := store.GetStatus(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, dashboard.StatusFailure, status)
	})

	t.Run("returns not found for unknown ids", func(t *testing.T) {
		swapCache(t)
		store := dashboard.NewRedisStatusStore(time.Minute)

		_, err := store.GetStatus(context.Background(), "nope")
		assert.ErrorIs(t, err, dashboard.ErrNotFound)
	})

	t.Run("skips the cache for empty ids", func(t *testing.T) {
		swapCache(t)
		called := false
		dashboard.GetCacheImplementation = func(ctx context.Context, key string) (string, error) {
			called = true
			return "SUCCESS", nil
		}

		_, err := dashboard.NewRedisStatusStore(0).GetStatus(context.Background(), "")
		assert.ErrorIs(t, err, dashboard.ErrNotFound)
		assert.False(t, called)
	})

	t.Run("surfaces cache errors", func(t *testing.T) {
		swapCache(t)
		dashboard.GetCacheImplementation = func(ctx context.Context, key string) (string, error) {
			return "", fmt.Errorf("connection refused")
		}

		_, err := dashboard.NewRedisStatusStore(time.Minute).GetStatus(context.Background(), "abc")
		require.Error(t, err)
		assert.NotErrorIs(t, err, dashboard.ErrNotFound)
	})

	t.Run("write failures do not panic", func(t *testing.T) {
		swapCache(t)
		dashboard.SetCacheImplementation = func(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
			return fmt.Errorf("connection refused")
		}

		assert.NotPanics(t, func() {
			dashboard.NewRedisStatusStore(time.Minute).OnTransition(dashboard.Transition{ID: "abc", To: dashboard.StatusLoading})
		})
	})
}
