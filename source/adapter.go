package source

import "context"

// Table is a whole input table held in memory. Header names the columns;
// every row has been padded or rejected so that len(row) == len(Header).
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

type Adapter interface {
	Configure(Config) error
	Load(context.Context) (*Table, error)
	Close() error
}
