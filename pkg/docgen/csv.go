package docgen

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVGenerator renders report tables as RFC 4180 CSV.
type CSVGenerator struct{}

func NewCSV() *CSVGenerator { return &CSVGenerator{} }

func (g *CSVGenerator) Generate(t Table) (*Document, error) {
	if len(t.Headers) == 0 {
		return nil, fmt.Errorf("docgen: table %q has no headers", t.Name)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return nil, fmt.Errorf("docgen: row %d has %d columns, want %d", i, len(row), len(t.Headers))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &Document{
		Filename:    t.Name + ".csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}
