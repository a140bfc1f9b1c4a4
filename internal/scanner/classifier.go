package scanner

import (
	"github.com/K0NGR3SS/colrisk/internal/catalog"
	"github.com/K0NGR3SS/colrisk/internal/models"
)

// InsufficientDataConcern is added when a column has no non-null values.
const InsufficientDataConcern = "Insufficient data to assess value-level risk"

// Classifier maps a column name and sample to a Finding. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	catalog    catalog.Catalog
	thresholds Thresholds
}

func NewClassifier(cat catalog.Catalog, th Thresholds) *Classifier {
	return &Classifier{catalog: cat, thresholds: th}
}

// Classify never fails: unmatched columns come back Uncategorized at Low.
func (c *Classifier) Classify(columnName string, sample []string) models.Finding {
	rule, ok := c.catalog.Lookup(columnName)
	if !ok {
		rule = catalog.Uncategorized()
	}

	f := models.Finding{
		Category:        rule.Category,
		Column:          columnName,
		Risk:            rule.BaseRisk,
		InformationType: rule.InformationType,
		Concerns:        append([]string{}, rule.Concerns...),
		Recommendations: append([]string{}, rule.Recommendations...),
		SampleValues:    append([]string{}, sample...),
	}

	if len(sample) == 0 {
		f.Concerns = append(f.Concerns, InsufficientDataConcern)
		return f
	}

	for _, esc := range rule.Escalations {
		detect, known := shapes[esc.Shape]
		if !known || !detect(sample, c.thresholds) {
			continue
		}
		f.Risk = models.Max(f.Risk, esc.Level)
		f.Concerns = append(f.Concerns, esc.Concerns...)
		f.Recommendations = append(f.Recommendations, esc.Recommendations...)
	}

	return f
}
