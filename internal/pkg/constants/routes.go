package constants

import "fmt"

// Static route constants
const (
	PublicRoute        = "/"
	DashboardViewRoute = "/dashboard/:id/view"
	TeardownRoute      = "/dashboard/:id/teardown"
	PrometheusRoute    = "/metrics/prometheus"
	MonitorRoute       = "/metrics"
	APIRoute           = "/api"
	APIDocsBasePath    = "/docs/api/"
)

// Remote assets shown by the dashboard
const (
	LogoURL        = "https://assets.ccbp.in/frontend/react-js/cowin-logo.png"
	FailureViewURL = "https://assets.ccbp.in/frontend/react-js/api-failure-view.png"
	HtmxScriptURL  = "https://unpkg.com/htmx.org@1.9.12"
)

// SessionDashboardKey holds the ids of the dashboards mounted by a browser
// session, comma separated, newest last.
const SessionDashboardKey = "dashboard_ids"

// MaxSessionDashboards bounds how many ids a session remembers.
const MaxSessionDashboards = 16

func DashboardViewURL(id string) string {
	return fmt.Sprintf("/dashboard/%s/view", id)
}

func TeardownURL(id string) string {
	return fmt.Sprintf("/dashboard/%s/teardown", id)
}
