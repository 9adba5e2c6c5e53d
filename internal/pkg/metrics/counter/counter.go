package counter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cache"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
)

const statusCountsKey = "dashboard:counters:status"

// Swappable in tests.
var (
	IncrImplementation   = cache.HIncrBy
	GetAllImplementation = cache.HGetAll
)

// StatusCounter keeps per-status transition totals in a redis hash shared by
// all processes. Prometheus counters reset on restart, these do not.
type StatusCounter struct {
	timeout time.Duration
}

func NewStatusCounter() *StatusCounter {
	return &StatusCounter{timeout: time.Second}
}

// OnTransition implements dashboard.Observer.
func (c *StatusCounter) OnTransition(t dashboard.Transition) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := IncrImplementation(ctx, statusCountsKey, t.To.String(), 1); err != nil {
		log.Warnf("[Counter] Failed to count %s transition of %s: %v", t.To, t.ID, err)
	}
}

// Totals returns the number of transitions into each status. Every status is
// present, statuses never entered report 0.
func (c *StatusCounter) Totals(ctx context.Context) (map[string]int64, error) {
	raw, err := GetAllImplementation(ctx, statusCountsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read status counters: %w", err)
	}

	totals := map[string]int64{
		dashboard.StatusInitial.String(): 0,
		dashboard.StatusLoading.String(): 0,
		dashboard.StatusSuccess.String(): 0,
		dashboard.StatusFailure.String(): 0,
	}
	for field, value := range raw {
		if _, known := totals[field]; !known {
			continue
		}
		n, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil {
			log.Warnf("[Counter] Ignoring malformed counter %s=%q", field, value)
			continue
		}
		totals[field] = n
	}
	return totals, nil
}
