package chart

import (
	"errors"

	"github.com/ManuelReschke/CowinDashboard/internal/pkg/cowin"
)

// Set holds the rendered SVG of each dashboard chart. A nil entry means the
// chart had no data.
type Set struct {
	Coverage []byte
	Gender   []byte
	Age      []byte
}

// RenderSnapshot renders all three charts. Charts without data stay nil and do
// not count as an error; the first real render error is returned alongside
// whatever did render.
func RenderSnapshot(s *cowin.Snapshot) (Set, error) {
	var set Set
	if s == nil {
		return set, nil
	}

	var firstErr error
	keep := func(svg []byte, err error) []byte {
		if err != nil && !errors.Is(err, ErrNoData) && firstErr == nil {
			firstErr = err
		}
		return svg
	}

	set.Coverage = keep(RenderCoverage(s.Last7DaysVaccination))
	set.Gender = keep(RenderGender(s.VaccinationByGender))
	set.Age = keep(RenderAge(s.VaccinationByAge))

	return set, firstErr
}
