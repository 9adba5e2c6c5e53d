package apiv1

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
)

// DefaultWaitTimeout bounds POST /dashboards?wait=true.
const DefaultWaitTimeout = 30 * time.Second

// StatusReader reads statuses mirrored by other processes.
type StatusReader interface {
	GetStatus(ctx context.Context, id string) (dashboard.Status, error)
}

// StatsReader reads the shared per-status transition totals.
type StatsReader interface {
	Totals(ctx context.Context) (map[string]int64, error)
}

// APIServer implements the ServerInterface
type APIServer struct {
	manager     *dashboard.Manager
	mirror      StatusReader
	stats       StatsReader
	waitTimeout time.Duration
}

// NewAPIServer creates a new API server instance. mirror and stats may be nil.
func NewAPIServer(manager *dashboard.Manager, mirror StatusReader, stats StatsReader) *APIServer {
	return &APIServer{
		manager:     manager,
		mirror:      mirror,
		stats:       stats,
		waitTimeout: DefaultWaitTimeout,
	}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(Pong{Ping: "pong"})
}

// PostDashboard mounts a dashboard, which starts its single fetch.
func (s *APIServer) PostDashboard(c *fiber.Ctx, params PostDashboardParams) error {
	d := s.manager.Mount()

	if params.Wait {
		ctx, cancel := context.WithTimeout(c.UserContext(), s.waitTimeout)
		defer cancel()
		if err := d.Wait(ctx); err != nil {
			log.Warnf("[API] Waiting for dashboard %s ended early: %v", d.ID(), err)
		}
	}

	c.Location("/api/v1/dashboards/" + d.ID())
	return c.Status(fiber.StatusCreated).JSON(fromState(d.State()))
}

// GetDashboard returns status and, once loaded, the snapshot of a dashboard.
func (s *APIServer) GetDashboard(c *fiber.Ctx, id string) error {
	d, err := s.manager.Get(id)
	if err == nil {
		return c.JSON(fromState(d.State()))
	}

	if s.mirror != nil {
		status, mirrorErr := s.mirror.GetStatus(c.UserContext(), id)
		if mirrorErr == nil {
			return c.JSON(Dashboard{ID: id, Status: status, Mirrored: true})
		}
		if !errors.Is(mirrorErr, dashboard.ErrNotFound) {
			log.Warnf("[API] Status mirror lookup for %s failed: %v", id, mirrorErr)
		}
	}

	return notFound(c)
}

// DeleteDashboard tears a dashboard down, cancelling a pending fetch.
func (s *APIServer) DeleteDashboard(c *fiber.Ctx, id string) error {
	if err := s.manager.Teardown(id); err != nil {
		return notFound(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetStats reports the active instance count and, when redis is configured,
// the transition totals of all processes.
func (s *APIServer) GetStats(c *fiber.Ctx) error {
	stats := Stats{Active: s.manager.Len()}
	if s.stats != nil {
		totals, err := s.stats.Totals(c.UserContext())
		if err != nil {
			log.Errorf("[API] Failed to read transition totals: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(Error{Error: "stats_unavailable", Message: "transition totals could not be read"})
		}
		stats.Transitions = totals
	}
	return c.JSON(stats)
}

func fromState(state dashboard.State) Dashboard {
	created := state.CreatedAt.UTC()
	updated := state.UpdatedAt.UTC()
	return Dashboard{
		ID:        state.ID,
		Status:    state.Status,
		Snapshot:  state.Snapshot,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(Error{Error: "not_found", Message: "dashboard not found"})
}
