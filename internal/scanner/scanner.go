package scanner

import (
	"context"
	"fmt"

	"github.com/K0NGR3SS/colrisk/internal/models"
	"github.com/K0NGR3SS/colrisk/internal/table"
	"github.com/K0NGR3SS/colrisk/internal/ui"
	"github.com/pterm/pterm"
)

type Scanner struct {
	Classifier *Classifier
	SampleSize int
}

func New(c *Classifier, sampleSize int) *Scanner {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &Scanner{Classifier: c, SampleSize: sampleSize}
}

// Scan classifies every column of tbl and returns one Finding per column in
// column order. spinner may be nil.
func (s *Scanner) Scan(ctx context.Context, tbl *table.Table, spinner *pterm.SpinnerPrinter) ([]models.Finding, error) {
	if tbl == nil || len(tbl.Columns) == 0 {
		src := ""
		if tbl != nil {
			src = tbl.Source
		}
		return nil, &table.MalformedTableError{Source: src, Reason: "table has no columns"}
	}

	findings := make([]models.Finding, 0, len(tbl.Columns))
	for i, col := range tbl.Columns {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan interrupted at column %q: %w", col.Name, err)
		}

		ui.UpdateSpinner(spinner, fmt.Sprintf("Classifying %s (%d/%d)...", col.Name, i+1, len(tbl.Columns)))

		sample := Sample(col.Values, s.SampleSize)
		findings = append(findings, s.Classifier.Classify(col.Name, sample))
	}

	return findings, nil
}
