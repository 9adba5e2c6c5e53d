package cowin

// RawResponse is the document served by the vaccination endpoint.
type RawResponse struct {
	Last7DaysVaccination []RawDailyVaccination `json:"last_7_days_vaccination"`
	VaccinationByAge     []AgeShare            `json:"vaccination_by_age"`
	VaccinationByGender  []GenderShare         `json:"vaccination_by_gender"`
}

type RawDailyVaccination struct {
	VaccineDate string `json:"vaccine_date"`
	Dose1       int64  `json:"dose_1"`
	Dose2       int64  `json:"dose_2"`
}

// AgeShare is one age bracket with its vaccination count.
type AgeShare struct {
	Age   string `json:"age,omitempty"`
	Count int64  `json:"count"`
}

// GenderShare is one gender with its vaccination count.
type GenderShare struct {
	Gender string `json:"gender,omitempty"`
	Count  int64  `json:"count"`
}

// DailyVaccination is a display-ready entry of the last seven days.
type DailyVaccination struct {
	VaccineDate string `json:"vaccineDate"`
	Dose1       int64  `json:"dose1"`
	Dose2       int64  `json:"dose2"`
}

// Snapshot is the result of one successful fetch. It is never mutated after
// Transform returns it.
type Snapshot struct {
	Last7DaysVaccination []DailyVaccination `json:"last7DaysVaccination"`
	VaccinationByAge     []AgeShare         `json:"vaccinationByAge"`
	VaccinationByGender  []GenderShare      `json:"vaccinationByGender"`
}
