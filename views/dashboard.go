package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/constants"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/viewmodel"
)

// DashboardView picks the single view matching the dashboard status. The
// Initial status renders nothing.
func DashboardView(vm viewmodel.Dashboard) templ.Component {
	switch vm.Status {
	case dashboard.StatusSuccess:
		return SuccessView(vm)
	case dashboard.StatusFailure:
		return FailureView()
	case dashboard.StatusLoading:
		return LoaderView(vm.ViewURL)
	default:
		return templ.NopComponent
	}
}

// LoaderView polls viewURL and replaces itself once the fetch has resolved.
func LoaderView(viewURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="dashboard-view" data-status="LOADING" hx-get="`+templ.EscapeString(viewURL)+
			`" hx-trigger="every 1s" hx-swap="outerHTML">`+
			`<div data-testid="loader" class="loader-container">`+
			`<div class="three-dots" style="height: 80px; width: 80px;"><span></span><span></span><span></span></div>`+
			`</div></div>`)
		return err
	})
}

func FailureView() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="dashboard-view" data-status="FAILURE" class="failure-view">`+
			`<img src="`+constants.FailureViewURL+`" alt="failure view">`+
			`<h1>Something went wrong</h1></div>`)
		return err
	})
}

func SuccessView(vm viewmodel.Dashboard) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="dashboard-view" data-status="SUCCESS">`)
		b.WriteString(`<h1 class="heading">CoWin Vaccination in India</h1>`)
		writeChartCard(&b, "vaccination-coverage", "Vaccination Coverage", vm.CoverageChart, vm.CoverageLegend)
		writeChartCard(&b, "vaccination-gender", "Vaccination by gender", vm.GenderChart, vm.GenderLegend)
		writeChartCard(&b, "vaccination-age", "Vaccination by age", vm.AgeChart, vm.AgeLegend)
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeChartCard(b *strings.Builder, class, title string, svg []byte, legend []viewmodel.LegendEntry) {
	b.WriteString(`<div class="chart-card ` + class + `">`)
	b.WriteString(`<h1 class="sub-heading">` + templ.EscapeString(title) + `</h1>`)
	if len(svg) == 0 {
		b.WriteString(`<p class="no-data">No data available</p></div>`)
		return
	}
	// go-chart output; labels are sanitized in the chart package
	b.Write(svg)

	if len(legend) > 0 {
		b.WriteString(`<ul class="legend">`)
		for _, entry := range legend {
			b.WriteString(`<li><span class="legend-dot" style="background-color: #` + templ.EscapeString(entry.Color) + `"></span>`)
			b.WriteString(templ.EscapeString(entry.Label))
			if entry.Value != "" {
				b.WriteString(` (` + templ.EscapeString(entry.Value) + `)`)
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</div>`)
}
