package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cache"
)

// StatusKeyFormat is the redis key of a mirrored dashboard status: dashboard:status:<uuid>
const StatusKeyFormat = "dashboard:status:%s"

// Swappable in tests.
var (
	SetCacheImplementation = cache.Set
	GetCacheImplementation = cache.Get
)

// RedisStatusStore mirrors each dashboard's current status into redis so other
// processes can report it. Only the status is stored, never the snapshot.
type RedisStatusStore struct {
	ttl     time.Duration
	timeout time.Duration
}

func NewRedisStatusStore(ttl time.Duration) *RedisStatusStore {
	if ttl <= 0 {
		ttl = DefaultInstanceTTL
	}
	return &RedisStatusStore{ttl: ttl, timeout: time.Second}
}

// OnTransition implements Observer.
func (s *RedisStatusStore) OnTransition(t Transition) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := SetCacheImplementation(ctx, fmt.Sprintf(StatusKeyFormat, t.ID), t.To.String(), s.ttl); err != nil {
		log.Warnf("[Dashboard] Failed to mirror status %s for %s: %v", t.To, t.ID, err)
	}
}

// GetStatus reads a mirrored status. ErrNotFound when nothing is mirrored for id.
func (s *RedisStatusStore) GetStatus(ctx context.Context, id string) (Status, error) {
	if id == "" {
		return StatusInitial, ErrNotFound
	}

	raw, err := GetCacheImplementation(ctx, fmt.Sprintf(StatusKeyFormat, id))
	if errors.Is(err, redis.Nil) {
		return StatusInitial, ErrNotFound
	}
	if err != nil {
		return StatusInitial, fmt.Errorf("failed to read mirrored status: %w", err)
	}
	return ParseStatus(raw)
}
