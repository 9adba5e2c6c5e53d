package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/CowinDashboard/app/controllers"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cowin"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
)

type emptyFetcher struct{}

func (emptyFetcher) FetchSnapshot(ctx context.Context) (*cowin.Snapshot, error) {
	return &cowin.Snapshot{}, nil
}

func TestInstallRouterRegistersRoutes(t *testing.T) {
	manager := dashboard.NewManager(emptyFetcher{}, dashboard.ManagerOptions{})
	t.Cleanup(manager.Stop)

	app := fiber.New()
	InstallRouter(app, Dependencies{Manager: manager})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{method: http.MethodGet, path: "/", want: fiber.StatusOK},
		{method: http.MethodGet, path: "/api", want: fiber.StatusOK},
		{method: http.MethodGet, path: "/api/v1/ping", want: fiber.StatusOK},
		{method: http.MethodGet, path: "/api/v1/stats", want: fiber.StatusOK},
		{method: http.MethodGet, path: "/dashboard/missing/view", want: controllers.StatusStopPolling},
		{method: http.MethodPost, path: "/dashboard/missing/teardown", want: fiber.StatusNotFound},
		{method: http.MethodGet, path: "/api/v1/dashboards/missing", want: fiber.StatusNotFound},
	}

	for _, tc := range tests {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}
