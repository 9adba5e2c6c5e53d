package viewmodel

import (
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/chart"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/constants"
	"github.com/ManuelReschke/CowinDashboard/internal/pkg/dashboard"
)

// LegendEntry is one colored legend item below a chart.
type LegendEntry struct {
	Label string
	Color string // hex, without '#'
	Value string // compact count, empty for series legends
}

// Dashboard contains everything the dashboard views need.
type Dashboard struct {
	ID      string
	Status  dashboard.Status
	ViewURL string

	// SVG documents, nil when the chart had no data
	CoverageChart []byte
	GenderChart   []byte
	AgeChart      []byte

	CoverageLegend []LegendEntry
	GenderLegend   []LegendEntry
	AgeLegend      []LegendEntry
}

// NewDashboard builds the view model from a dashboard state and its rendered charts.
func NewDashboard(state dashboard.State, charts chart.Set) Dashboard {
	vm := Dashboard{
		ID:      state.ID,
		Status:  state.Status,
		ViewURL: constants.DashboardViewURL(state.ID),
	}
	if state.Status != dashboard.StatusSuccess || state.Snapshot == nil {
		return vm
	}

	vm.CoverageChart = charts.Coverage
	vm.GenderChart = charts.Gender
	vm.AgeChart = charts.Age

	for _, series := range chart.DoseSeries {
		vm.CoverageLegend = append(vm.CoverageLegend, LegendEntry{Label: series.Label, Color: series.Color})
	}
	for i, share := range state.Snapshot.VaccinationByGender {
		vm.GenderLegend = append(vm.GenderLegend, legendEntry(chart.GenderCategories, i, share.Gender, share.Count))
	}
	for i, share := range state.Snapshot.VaccinationByAge {
		vm.AgeLegend = append(vm.AgeLegend, legendEntry(chart.AgeCategories, i, share.Age, share.Count))
	}
	return vm
}

func legendEntry(categories []chart.Category, i int, fallback string, count int64) LegendEntry {
	entry := LegendEntry{Label: fallback, Color: "9e9e9e", Value: chart.FormatCount(count)}
	if i < len(categories) {
		entry.Label = categories[i].Label
		entry.Color = categories[i].Color
	}
	return entry
}
