package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/CowinDashboard/app/controllers"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/constants"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get(constants.PublicRoute, controllers.HandleDashboard)
	app.Get(constants.DashboardViewRoute, controllers.HandleDashboardView)
	app.Post(constants.TeardownRoute, controllers.HandleDashboardTeardown)
}
