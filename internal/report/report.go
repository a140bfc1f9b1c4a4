// Package report renders scan findings to files. Exporters only format
// findings; they never change them.
package report

import (
	"fmt"
	"strings"

	"github.com/K0NGR3SS/colrisk/internal/models"
)

const (
	DefaultCSVName = "security_risk_analysis.csv"
	DefaultPDFName = "security_risk_analysis.pdf"

	listSeparator   = "; "
	sampleSeparator = ", "
)

type Exporter interface {
	Format() string
	Export(path string, scan models.Scan) error
}

type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s report to %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Section is every finding of one category.
type Section struct {
	Category models.Category
	Findings []models.Finding
}

// Group splits findings into sections ordered by the first appearance of
// each category, keeping finding order inside a section.
func Group(findings []models.Finding) []Section {
	var sections []Section
	index := make(map[models.Category]int)
	for _, f := range findings {
		i, ok := index[f.Category]
		if !ok {
			i = len(sections)
			index[f.Category] = i
			sections = append(sections, Section{Category: f.Category})
		}
		sections[i].Findings = append(sections[i].Findings, f)
	}
	return sections
}

func joinConcerns(items []string) string {
	return strings.Join(items, listSeparator)
}

func joinSamples(items []string) string {
	return strings.Join(items, sampleSeparator)
}
