package transform

import (
	"context"

	"schoolindex/internal/school"
	"schoolindex/source"
)

// NotAvailable is the text a missing cell is coerced to.
const NotAvailable = "nan"

// naTokens are cell values treated as missing, on top of the empty string.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// cell returns the text at row[i]. Cells past the end of a short row are
// missing.
func cell(row []string, i int) string {
	if i >= len(row) {
		return NotAvailable
	}
	return text(row[i])
}

func text(cell string) string {
	if cell == "" {
		return NotAvailable
	}
	if _, ok := naTokens[cell]; ok {
		return NotAvailable
	}
	return cell
}

// Records projects the required columns out of t. Missing columns are
// reported together in a SchemaError. For duplicate header names the first
// occurrence wins.
func Records(t *source.Table) ([]school.Record, error) {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range school.RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &school.SchemaError{Source: t.Name, Missing: missing}
	}

	name, city, state := idx[school.ColName], idx[school.ColCity], idx[school.ColState]
	st, end := idx[school.ColStartGrade], idx[school.ColEndGrade]

	out := make([]school.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, school.Record{
			Name:       cell(row, name),
			City:       cell(row, city),
			State:      cell(row, state),
			StartGrade: cell(row, st),
			EndGrade:   cell(row, end),
		})
	}
	return out, nil
}

// LoadAndFilter reads the whole table from src and returns the records keep
// accepts, in table order.
func LoadAndFilter(ctx context.Context, src source.Adapter, keep Predicate) ([]school.Record, error) {
	t, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	records, err := Records(t)
	if err != nil {
		return nil, err
	}
	return Filter(records, keep), nil
}
