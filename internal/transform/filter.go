package transform

import "schoolindex/internal/school"

// Grade codes are compared as text. "9" does not match "09".
const (
	HighSchoolStart = "09"
	HighSchoolEnd   = "12"
)

type Predicate func(school.Record) bool

// HighSchool keeps records spanning exactly grades 09 through 12.
func HighSchool(r school.Record) bool {
	return r.StartGrade == HighSchoolStart && r.EndGrade == HighSchoolEnd
}

// Filter returns the records keep accepts, in input order.
func Filter(records []school.Record, keep Predicate) []school.Record {
	out := make([]school.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
