package export

import "fmt"

// Dataset defines tabular export content. Every row holds one cell per header.
type Dataset struct {
	Title   string
	Summary []string
	Headers []string
	Rows    [][]string
}

// AddRow appends a row, rejecting rows whose width differs from the headers.
func (d *Dataset) AddRow(cells ...string) error {
	if len(cells) != len(d.Headers) {
		return fmt.Errorf("row has %d cells, want %d", len(cells), len(d.Headers))
	}
	d.Rows = append(d.Rows, cells)
	return nil
}
