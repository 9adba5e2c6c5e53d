package cowin

// Transform reshapes the upstream document into a Snapshot. Daily entries are
// renamed positionally; age and gender shares keep their shape. The result
// shares no backing arrays with raw.
func Transform(raw RawResponse) *Snapshot {
	days := make([]DailyVaccination, len(raw.Last7DaysVaccination))
	for i, each := range raw.Last7DaysVaccination {
		days[i] = DailyVaccination{
			VaccineDate: each.VaccineDate,
			Dose1:       each.Dose1,
			Dose2:       each.Dose2,
		}
	}

	byAge := make([]AgeShare, len(raw.VaccinationByAge))
	copy(byAge, raw.VaccinationByAge)

	byGender := make([]GenderShare, len(raw.VaccinationByGender))
	copy(byGender, raw.VaccinationByGender)

	return &Snapshot{
		Last7DaysVaccination: days,
		VaccinationByAge:     byAge,
		VaccinationByGender:  byGender,
	}
}
