package transform

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"schoolindex/internal/school"
)

// BuildEntries converts records to entries, one per record, same order.
//
// Casing follows Unicode rules for the undetermined language tag, so the
// output does not depend on the host locale: NAME and CITY are title cased
// (first letter of each word upper, the rest lower), STATE is upper cased.
func BuildEntries(records []school.Record) []school.Entry {
	// Casers carry state and are not safe for concurrent use.
	title := cases.Title(language.Und)
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	out := make([]school.Entry, 0, len(records))
	for _, r := range records {
		label := FormatEntry(title.String(r.Name), title.String(r.City), upper.String(r.State))
		out = append(out, school.Entry{Label: label, Value: lower.String(label)})
	}
	return out
}
