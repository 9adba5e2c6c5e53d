package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/constants"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cowin"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/session"
)

type stubFetcher struct {
	snapshot *cowin.Snapshot
	err      error
	release  chan struct{}
}

func (f *stubFetcher) FetchSnapshot(ctx context.Context) (*cowin.Snapshot, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.snapshot, f.err
}

var teardownURLPattern = regexp.MustCompile(`data-teardown-url="/dashboard/([0-9a-f-]+)/teardown"`)

func newDashboardApp(t *testing.T, fetcher dashboard.Fetcher) (*fiber.App, *dashboard.Manager) {
	t.Helper()
	session.NewSessionStore("memory", "")
	manager := dashboard.NewManager(fetcher, dashboard.ManagerOptions{})
	InitializeDashboardController(manager)
	t.Cleanup(manager.Stop)

	app := fiber.New()
	app.Get(constants.PublicRoute, HandleDashboard)
	app.Get(constants.DashboardViewRoute, HandleDashboardView)
	app.Post(constants.TeardownRoute, HandleDashboardTeardown)
	return app, manager
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func mountedID(t *testing.T, body string) string {
	t.Helper()
	match := teardownURLPattern.FindStringSubmatch(body)
	require.Len(t, match, 2, "page carries no teardown url")
	return match[1]
}

func sampleSnapshot() *cowin.Snapshot {
	return &cowin.Snapshot{
		Last7DaysVaccination: []cowin.DailyVaccination{
			{VaccineDate: "01-08", Dose1: 1500, Dose2: 500},
			{VaccineDate: "02-08", Dose1: 25000, Dose2: 1000},
		},
		VaccinationByAge:    []cowin.AgeShare{{Age: "18-44", Count: 30}, {Age: "44-60", Count: 20}, {Age: "Above 60", Count: 10}},
		VaccinationByGender: []cowin.GenderShare{{Gender: "Male", Count: 60}, {Gender: "Female", Count: 40}, {Gender: "Others", Count: 1}},
	}
}

func TestHandleDashboardRendersLoader(t *testing.T) {
	fetcher := &stubFetcher{snapshot: sampleSnapshot(), release: make(chan struct{})}
	defer close(fetcher.release)
	app, manager := newDashboardApp(t, fetcher)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))

	body := readBody(t, resp)
	assert.Contains(t, body, `data-testid="loader"`)
	assert.NotContains(t, body, "Something went wrong")

	id := mountedID(t, body)
	_, err = manager.Get(id)
	assert.NoError(t, err)
	assert.Contains(t, body, `hx-get="`+constants.DashboardViewURL(id)+`"`)
}

func TestHandleDashboardViewAfterResolve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app, manager := newDashboardApp(t, &stubFetcher{snapshot: sampleSnapshot()})
		d := manager.Mount()
		require.NoError(t, d.Wait(context.Background()))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, constants.DashboardViewURL(d.ID()), nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, "CoWin Vaccination in India")
		assert.Contains(t, body, "Vaccination Coverage")
		assert.Contains(t, body, "Vaccination by gender")
		assert.Contains(t, body, "Vaccination by age")
		assert.Contains(t, body, "<svg")
		assert.NotContains(t, body, `data-testid="loader"`)
	})

	t.Run("failure", func(t *testing.T) {
		app, manager := newDashboardApp(t, &stubFetcher{err: errors.New("upstream down")})
		d := manager.Mount()
		require.NoError(t, d.Wait(context.Background()))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, constants.DashboardViewURL(d.ID()), nil), -1)
		require.NoError(t, err)

		body := readBody(t, resp)
		assert.Contains(t, body, "Something went wrong")
		assert.Contains(t, body, `alt="failure view"`)
		assert.NotContains(t, body, "<svg")
	})

	t.Run("unknown dashboard stops polling", func(t *testing.T) {
		app, _ := newDashboardApp(t, &stubFetcher{})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, constants.DashboardViewURL("missing"), nil), -1)
		require.NoError(t, err)
		assert.Equal(t, StatusStopPolling, resp.StatusCode)

		body := readBody(t, resp)
		assert.Contains(t, body, "Something went wrong")
		assert.NotContains(t, body, "hx-trigger")
	})
}

func TestHandleDashboardViewAfterExpiry(t *testing.T) {
	fetcher := &stubFetcher{snapshot: sampleSnapshot(), release: make(chan struct{})}
	defer close(fetcher.release)
	app, manager := newDashboardApp(t, fetcher)

	d := manager.Mount()
	assert.Equal(t, 1, manager.Sweep(time.Now().Add(time.Hour)))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, constants.DashboardViewURL(d.ID()), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, StatusStopPolling, resp.StatusCode)
	assert.NotContains(t, readBody(t, resp), `data-testid="loader"`)
}

func mountPage(t *testing.T, app *fiber.App, cookie *http.Cookie) (string, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	id := mountedID(t, readBody(t, resp))
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	return id, cookie
}

func teardown(t *testing.T, app *fiber.App, id string, cookie *http.Cookie) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, constants.TeardownURL(id), nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestHandleDashboardTeardown(t *testing.T) {
	fetcher := &stubFetcher{snapshot: sampleSnapshot(), release: make(chan struct{})}
	defer close(fetcher.release)
	app, manager := newDashboardApp(t, fetcher)

	id, cookie := mountPage(t, app, nil)
	d, err := manager.Get(id)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, teardown(t, app, id, cookie))
	assert.True(t, d.IsTornDown())
	assert.Equal(t, dashboard.StatusLoading, d.State().Status)

	assert.Equal(t, fiber.StatusNotFound, teardown(t, app, id, cookie))
}

func TestHandleDashboardTeardownRequiresOwningSession(t *testing.T) {
	fetcher := &stubFetcher{snapshot: sampleSnapshot(), release: make(chan struct{})}
	defer close(fetcher.release)
	app, manager := newDashboardApp(t, fetcher)

	id, _ := mountPage(t, app, nil)
	_, stranger := mountPage(t, app, nil)

	assert.Equal(t, fiber.StatusNotFound, teardown(t, app, id, stranger))
	assert.Equal(t, fiber.StatusNotFound, teardown(t, app, id, nil))

	d, err := manager.Get(id)
	require.NoError(t, err)
	assert.False(t, d.IsTornDown())
}

func TestHandleDashboardKeepsOtherTabsOfSession(t *testing.T) {
	fetcher := &stubFetcher{snapshot: sampleSnapshot(), release: make(chan struct{})}
	app, manager := newDashboardApp(t, fetcher)

	firstID, cookie := mountPage(t, app, nil)
	secondID, _ := mountPage(t, app, cookie)
	assert.NotEqual(t, firstID, secondID)
	assert.Equal(t, 2, manager.Len())

	close(fetcher.release)
	first, err := manager.Get(firstID)
	require.NoError(t, err)
	require.NoError(t, first.Wait(context.Background()))

	req := httptest.NewRequest(http.MethodGet, constants.DashboardViewURL(firstID), nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "CoWin Vaccination in India")

	// both tabs can still leave
	assert.Equal(t, fiber.StatusNoContent, teardown(t, app, firstID, cookie))
	assert.Equal(t, fiber.StatusNoContent, teardown(t, app, secondID, cookie))
}
