package router

import (
	"github.com/gofiber/fiber/v2"

	apiv1 "github.com/ManuelReschke/CowinDashboard/internal/api/v1"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are the services the routers hand to their handlers.
type Dependencies struct {
	Manager *dashboard.Manager
	// Mirror and Stats are optional
	Mirror apiv1.StatusReader
	Stats  apiv1.StatsReader
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	// HttpRouter initializes the session store the dashboard page relies on.
	setup(app, NewHttpRouter(deps.Manager), NewApiRouter(deps.Manager, deps.Mirror, deps.Stats))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
