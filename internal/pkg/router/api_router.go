package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	apiv1 "github.com/ManuelReschke/CowinDashboard/internal/api/v1"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/constants"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
)

type ApiRouter struct {
	manager *dashboard.Manager
	mirror  apiv1.StatusReader
	stats   apiv1.StatsReader
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute, limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer(h.manager, h.mirror, h.stats)
	apiv1.RegisterHandlers(v1, apiServer)
}

func NewApiRouter(manager *dashboard.Manager, mirror apiv1.StatusReader, stats apiv1.StatsReader) *ApiRouter {
	return &ApiRouter{manager: manager, mirror: mirror, stats: stats}
}
