package controllers

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/chart"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/constants"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/env"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/session"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/viewmodel"
	"github.com/ManuelReschke/CowinDashboard/views"
)

// StatusStopPolling makes htmx swap the response and cancel the polling trigger.
const StatusStopPolling = 286

var dashboardManager *dashboard.Manager

// InitializeDashboardController sets the manager the dashboard handlers use.
func InitializeDashboardController(m *dashboard.Manager) {
	dashboardManager = m
}

// HandleDashboard mounts a fresh dashboard for this page load and renders it.
// Other dashboards of the same session stay alive, they may belong to other tabs.
func HandleDashboard(c *fiber.Ctx) error {
	d := dashboardManager.Mount()
	if err := rememberDashboard(c, d.ID()); err != nil {
		log.Warnf("[Dashboard] Failed to remember dashboard %s in session: %v", d.ID(), err)
	}

	layout := viewmodel.Layout{
		Page:        "CoWIN Dashboard",
		IsDev:       env.IsDev(),
		TeardownURL: constants.TeardownURL(d.ID()),
	}
	page := views.Page(layout, views.DashboardView(buildDashboardViewModel(d.State())))

	c.Set(fiber.HeaderCacheControl, "no-store")
	return adaptor.HTTPHandler(templ.Handler(page))(c)
}

// HandleDashboardView renders the view fragment for the current status. An
// expired or torn down dashboard answers with the failure view and stops polling.
func HandleDashboardView(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")

	d, err := dashboardManager.Get(c.Params("id"))
	if err != nil || d.IsTornDown() {
		log.Debugf("[Dashboard] View requested for unknown dashboard %s", c.Params("id"))
		return adaptor.HTTPHandler(templ.Handler(views.FailureView(), templ.WithStatus(StatusStopPolling)))(c)
	}

	return adaptor.HTTPHandler(templ.Handler(views.DashboardView(buildDashboardViewModel(d.State()))))(c)
}

// HandleDashboardTeardown is called by the page when it is left. Only
// dashboards mounted by the same browser session can be torn down.
func HandleDashboardTeardown(c *fiber.Ctx) error {
	id := c.Params("id")
	if !ownsDashboard(c, id) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err := dashboardManager.Teardown(id); err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err := forgetDashboard(c, id); err != nil {
		log.Warnf("[Dashboard] Failed to forget dashboard %s in session: %v", id, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func sessionDashboards(c *fiber.Ctx) []string {
	raw := session.GetSessionValue(c, constants.SessionDashboardKey)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func rememberDashboard(c *fiber.Ctx, id string) error {
	ids := append(sessionDashboards(c), id)
	if len(ids) > constants.MaxSessionDashboards {
		ids = ids[len(ids)-constants.MaxSessionDashboards:]
	}
	return session.SetSessionValue(c, constants.SessionDashboardKey, strings.Join(ids, ","))
}

func forgetDashboard(c *fiber.Ctx, id string) error {
	ids := sessionDashboards(c)
	kept := ids[:0]
	for _, each := range ids {
		if each != id {
			kept = append(kept, each)
		}
	}
	return session.SetSessionValue(c, constants.SessionDashboardKey, strings.Join(kept, ","))
}

func ownsDashboard(c *fiber.Ctx, id string) bool {
	if id == "" {
		return false
	}
	for _, each := range sessionDashboards(c) {
		if each == id {
			return true
		}
	}
	return false
}

func buildDashboardViewModel(state dashboard.State) viewmodel.Dashboard {
	var charts chart.Set
	if state.Status == dashboard.StatusSuccess {
		var err error
		charts, err = chart.RenderSnapshot(state.Snapshot)
		if err != nil {
			log.Errorf("[Dashboard] Failed to render charts for %s: %v", state.ID, err)
		}
	}
	return viewmodel.NewDashboard(state, charts)
}
