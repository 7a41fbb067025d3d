// Package school holds the record and entry types shared by sources, the
// transformer and sinks.
package school

const (
	ColName       = "NAME"
	ColCity       = "CITY"
	ColState      = "STATE"
	ColStartGrade = "ST_GRADE"
	ColEndGrade   = "END_GRADE"
)

// RequiredColumns lists the header names every input table must carry.
var RequiredColumns = []string{ColName, ColCity, ColState, ColStartGrade, ColEndGrade}

// Record is one row of the input table, restricted to the columns we use.
type Record struct {
	Name       string
	City       string
	State      string
	StartGrade string
	EndGrade   string
}

// Entry is one element of the output array. Value is always the lowercase
// form of Label.
type Entry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
