package chart

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cowin"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to chart")

// Static geometry of the three charts.
const (
	CoverageWidth  = 1000
	CoverageHeight = 500
	PieWidth       = 1000
	PieHeight      = 300

	barWidth   = 40
	barSpacing = 16
)

var (
	tickColor = drawing.ColorFromHex("808080")
	// non-zero so go-chart does not replace it with a palette color
	invisible = drawing.Color{R: 255, G: 255, B: 255, A: 0}

	// labels end up inline in the page
	labelSanitizer = strings.NewReplacer("<", "", ">", "", "&", "", `"`, "")
)

// RenderCoverage draws the last-days vaccination bars, dose1 and dose2 side by
// side for each date, as SVG.
func RenderCoverage(days []cowin.DailyVaccination) ([]byte, error) {
	if len(days) == 0 {
		return nil, ErrNoData
	}

	bars := make([]gochart.Value, 0, len(days)*len(DoseSeries))
	var peak int64
	for _, day := range days {
		if day.Dose1 > peak {
			peak = day.Dose1
		}
		if day.Dose2 > peak {
			peak = day.Dose2
		}
		bars = append(bars,
			gochart.Value{Label: labelSanitizer.Replace(day.VaccineDate), Value: float64(day.Dose1), Style: seriesStyle(DoseSeries[0])},
			gochart.Value{Label: "", Value: float64(day.Dose2), Style: seriesStyle(DoseSeries[1])},
		)
	}
	if peak == 0 {
		return nil, ErrNoData
	}

	bc := gochart.BarChart{
		Width:      CoverageWidth,
		Height:     CoverageHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 5, Left: 10, Right: 10, Bottom: 10}},
		XAxis:      gochart.Style{StrokeColor: tickColor, StrokeWidth: 1, FontColor: tickColor},
		YAxis: gochart.YAxis{
			ValueFormatter: tickFormatter,
			Range:          &gochart.ContinuousRange{Min: 0, Max: float64(peak)},
			Style:          gochart.Style{FontColor: tickColor},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render coverage chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderGender draws the gender shares as a half ring (180 degrees) as SVG. The
// first share starts at 3 o'clock and the shares run counter-clockwise over the top.
func RenderGender(shares []cowin.GenderShare) ([]byte, error) {
	counts := make([]int64, len(shares))
	for i, share := range shares {
		counts[i] = share.Count
	}
	slices, total := pieSlices(counts, GenderCategories)
	if total == 0 {
		return nil, ErrNoData
	}

	// go-chart draws clockwise from 3 o'clock. An invisible leading slice worth
	// the total hides the lower half; reversing puts the first share at 3 o'clock.
	values := make([]gochart.Value, 0, len(slices)+1)
	values = append(values, gochart.Value{
		Value: float64(total),
		Style: gochart.Style{FillColor: invisible, StrokeColor: invisible},
	})
	for i := len(slices) - 1; i >= 0; i-- {
		values = append(values, slices[i])
	}

	dc := gochart.DonutChart{
		Width:  PieWidth,
		Height: PieHeight,
		Values: values,
	}

	var buf bytes.Buffer
	if err := dc.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render gender chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderAge draws the age bracket shares as a full pie as SVG.
func RenderAge(shares []cowin.AgeShare) ([]byte, error) {
	counts := make([]int64, len(shares))
	for i, share := range shares {
		counts[i] = share.Count
	}
	slices, total := pieSlices(counts, AgeCategories)
	if total == 0 {
		return nil, ErrNoData
	}

	pc := gochart.PieChart{
		Width:  PieWidth,
		Height: PieHeight,
		Values: slices,
	}
	if len(slices) == 1 {
		// a single value is drawn as a plain circle using SliceStyle only
		pc.SliceStyle = slices[0].Style
	}

	var buf bytes.Buffer
	if err := pc.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render age chart: %w", err)
	}
	return buf.Bytes(), nil
}

// pieSlices binds positive counts to their categories by position. Zero and
// negative counts are skipped.
func pieSlices(counts []int64, categories []Category) ([]gochart.Value, int64) {
	var total int64
	values := make([]gochart.Value, 0, len(counts))
	for i, c := range counts {
		if c <= 0 {
			continue
		}
		total += c
		values = append(values, gochart.Value{Value: float64(c), Style: seriesStyle(categoryAt(categories, i))})
	}
	return values, total
}

func seriesStyle(c Category) gochart.Style {
	col := drawing.ColorFromHex(c.Color)
	return gochart.Style{
		FillColor:   col,
		StrokeColor: col,
		StrokeWidth: 1,
	}
}
