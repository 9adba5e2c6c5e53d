package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cowin"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
)

// Pong is the response of GET /ping.
type Pong struct {
	Ping string `json:"ping"`
}

// Dashboard is the API representation of a dashboard instance.
type Dashboard struct {
	ID        string           `json:"id"`
	Status    dashboard.Status `json:"status"`
	Snapshot  *cowin.Snapshot  `json:"snapshot,omitempty"`
	CreatedAt *time.Time       `json:"created_at,omitempty"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
	// Mirrored is set when the status was read from the shared status mirror
	// because the instance lives in another process.
	Mirrored bool `json:"mirrored,omitempty"`
}

// Stats is the response of GET /stats.
type Stats struct {
	Active      int              `json:"active"`
	Transitions map[string]int64 `json:"transitions,omitempty"`
}

type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type PostDashboardParams struct {
	// Wait blocks the request until the fetch cycle has resolved.
	Wait bool
}

// ServerInterface is implemented by APIServer.
type ServerInterface interface {
	GetPing(c *fiber.Ctx) error
	PostDashboard(c *fiber.Ctx, params PostDashboardParams) error
	GetDashboard(c *fiber.Ctx, id string) error
	DeleteDashboard(c *fiber.Ctx, id string) error
	GetStats(c *fiber.Ctx) error
}

// ServerInterfaceWrapper extracts parameters before calling the handlers.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetPing(c *fiber.Ctx) error {
	return w.Handler.GetPing(c)
}

func (w *ServerInterfaceWrapper) PostDashboard(c *fiber.Ctx) error {
	params := PostDashboardParams{Wait: c.QueryBool("wait", false)}
	return w.Handler.PostDashboard(c, params)
}

func (w *ServerInterfaceWrapper) GetDashboard(c *fiber.Ctx) error {
	return w.Handler.GetDashboard(c, c.Params("id"))
}

func (w *ServerInterfaceWrapper) DeleteDashboard(c *fiber.Ctx) error {
	return w.Handler.DeleteDashboard(c, c.Params("id"))
}

func (w *ServerInterfaceWrapper) GetStats(c *fiber.Ctx) error {
	return w.Handler.GetStats(c)
}

// RegisterHandlers mounts the v1 routes on router.
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.Get("/ping", wrapper.GetPing)
	router.Post("/dashboards", wrapper.PostDashboard)
	router.Get("/dashboards/:id", wrapper.GetDashboard)
	router.Delete("/dashboards/:id", wrapper.DeleteDashboard)
	router.Get("/stats", wrapper.GetStats)
}
