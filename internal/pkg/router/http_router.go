package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CowinDashboard/app/controllers"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/session"
)

type HttpRouter struct {
	manager *dashboard.Manager
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// memory-backed unless NewSessionStore was already called with redis storage
	if session.GetSessionStore() == nil {
		session.NewSessionStore("memory", "")
	}

	controllers.InitializeDashboardController(h.manager)

	h.registerPublicRoutes(app)
}

func NewHttpRouter(manager *dashboard.Manager) *HttpRouter {
	return &HttpRouter{manager: manager}
}
