package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cache"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/config"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/constants"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cowin"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/env"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/metrics"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/router"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/session"
)

func main() {
	env.SetupEnvFile()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app, manager := NewApplication(cfg, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	manager.Start()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		manager.Stop()
		_ = app.Shutdown()
	}()

	log.Fatal(app.Listen(cfg.Addr()))
}

// NewApplication wires the dashboard services into a fiber app. The manager's
// sweeper is not started.
func NewApplication(cfg *config.Config, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*fiber.App, *dashboard.Manager) {
	collector := metrics.NewCollector(reg)
	observers := []dashboard.Observer{collector}

	deps := router.Dependencies{}
	if cfg.StatusMirror || cfg.SessionStorage == "redis" {
		cache.SetupCache(cfg.CacheAddr(), cfg.CachePassword)
	}
	if cfg.StatusMirror {
		mirror := dashboard.NewRedisStatusStore(cfg.InstanceTTL)
		observers = append(observers, dashboard.NewAsyncObserver(mirror, dashboard.DefaultObserverBuffer))
		deps.Mirror = mirror

		statusCounter := counter.NewStatusCounter()
		observers = append(observers, dashboard.NewAsyncObserver(statusCounter, dashboard.DefaultObserverBuffer))
		deps.Stats = statusCounter
	}
	session.NewSessionStore(cfg.SessionStorage, cfg.CachePassword)

	client := cowin.NewClient(cfg.VaccinationAPIURL, cfg.FetchTimeout)
	deps.Manager = dashboard.NewManager(client, dashboard.ManagerOptions{
		InstanceTTL:   cfg.InstanceTTL,
		SweepInterval: cfg.SweepInterval,
		Observers:     observers,
		Active:        collector.Active(),
	})

	app := fiber.New(fiber.Config{
		AppName: "CoWIN Dashboard",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	metricsAuth := basicauth.New(basicauth.Config{
		Users: map[string]string{
			cfg.MetricsUser: cfg.MetricsPassword,
		},
	})
	app.Get(constants.PrometheusRoute, metricsAuth, adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Get(constants.MonitorRoute, metricsAuth, monitor.New())

	// SWAGGER / OPENAPI
	if basePath := findBasePath(); basePath != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: constants.APIDocsBasePath,
			FilePath: basePath + "public/docs/v1/openapi.yml",
			Path:     "v1",
		}))
	} else {
		log.Println("[Boot] public/docs not found, API docs disabled")
	}

	// ROUTER
	router.InstallRouter(app, deps)

	return app, deps.Manager
}

// findBasePath locates the project root holding the public directory.
func findBasePath() string {
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/cowin to project root
		"../../../", // Fallback
	}
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public/docs/v1/openapi.yml"); err == nil {
			return path
		}
	}
	return ""
}
