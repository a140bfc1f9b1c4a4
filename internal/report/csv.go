package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/K0NGR3SS/colrisk/internal/models"
)

var csvHeader = []string{
	"Category", "Column", "Risk Level", "Information Type", "Concerns", "Recommendations", "Sample Values",
}

// CSVExporter writes one row per finding. Multi-item fields are
// semicolon-joined so each stays in a single cell.
type CSVExporter struct{}

func (CSVExporter) Format() string { return "csv" }

func (e CSVExporter) Export(path string, scan models.Scan) error {
	if err := e.write(path, scan.Findings); err != nil {
		return &ExportError{Format: e.Format(), Path: path, Err: err}
	}
	return nil
}

func (CSVExporter) write(path string, findings []models.Finding) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, fd := range findings {
		if err := w.Write(csvRow(fd)); err != nil {
			return fmt.Errorf("write row for %s: %w", fd.Column, err)
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(f models.Finding) []string {
	return []string{
		string(f.Category),
		f.Column,
		f.Risk.Title(),
		f.InformationType,
		joinConcerns(f.Concerns),
		joinConcerns(f.Recommendations),
		joinSamples(f.SampleValues),
	}
}
