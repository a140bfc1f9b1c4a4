package report

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K0NGR3SS/colrisk/internal/models"
)

func sampleScan() models.Scan {
	return models.Scan{
		ID:     "test-scan",
		Source: "users.csv",
		Rows:   2,
		Findings: []models.Finding{
			{
				Category:        models.CategoryPersonalInfo,
				Column:          "name",
				Risk:            models.RiskMedium,
				InformationType: "Personal Information",
				Concerns:        []string{"Contains demographic information", "Could be used for profiling"},
				Recommendations: []string{"Implement data minimization"},
				SampleValues:    []string{"Alice", "Bob"},
			},
			{
				Category:        models.CategoryLocations,
				Column:          "coordinates",
				Risk:            models.RiskCritical,
				InformationType: "Geographic Data",
				Concerns:        []string{"Contains exact GPS coordinates"},
				Recommendations: []string{"Replace with geohashed or area-level data"},
				SampleValues:    []string{"12.34,56.78"},
			},
			{
				Category:        models.CategoryPersonalInfo,
				Column:          "gender",
				Risk:            models.RiskMedium,
				InformationType: "Personal Information",
				SampleValues:    []string{"female"},
			},
			{
				Category:        models.CategoryUncategorized,
				Column:          "notes",
				Risk:            models.RiskLow,
				InformationType: "Unknown",
				Concerns:        []string{"Insufficient data to assess value-level risk"},
			},
		},
	}
}

func TestGroup_FirstSeenOrder(t *testing.T) {
	sections := Group(sampleScan().Findings)

	require.Len(t, sections, 3)
	assert.Equal(t, models.CategoryPersonalInfo, sections[0].Category)
	assert.Equal(t, models.CategoryLocations, sections[1].Category)
	assert.Equal(t, models.CategoryUncategorized, sections[2].Category)

	require.Len(t, sections[0].Findings, 2)
	assert.Equal(t, "name", sections[0].Findings[0].Column)
	assert.Equal(t, "gender", sections[0].Findings[1].Column)
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
}

func TestCSVExporter_OneRowPerFinding(t *testing.T) {
	scan := sampleScan()
	path := filepath.Join(t.TempDir(), DefaultCSVName)

	require.NoError(t, CSVExporter{}.Export(path, scan))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(scan.Findings)+1)
	assert.Equal(t, csvHeader, rows[0])

	for i, fd := range scan.Findings {
		row := rows[i+1]
		assert.Equal(t, string(fd.Category), row[0])
		assert.Equal(t, fd.Column, row[1])
		assert.Equal(t, fd.Risk.Title(), row[2])
		assert.Equal(t, fd.InformationType, row[3])
		assert.Equal(t, strings.Join(fd.Concerns, "; "), row[4])
		assert.Equal(t, strings.Join(fd.Recommendations, "; "), row[5])
		assert.Equal(t, strings.Join(fd.SampleValues, ", "), row[6])
	}
}

func TestCSVExporter_QuotesEmbeddedDelimiters(t *testing.T) {
	scan := models.Scan{Findings: []models.Finding{{
		Category:     models.CategoryLocations,
		Column:       "coord",
		Risk:         models.RiskHigh,
		SampleValues: []string{`"quoted", value`, "line\nbreak"},
	}}}
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, CSVExporter{}.Export(path, scan))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "\"quoted\", value, line\nbreak", rows[1][6])
}

func TestPDFExporter_ContainsEveryFindingUnderItsCategory(t *testing.T) {
	scan := sampleScan()
	path := filepath.Join(t.TempDir(), DefaultPDFName)

	require.NoError(t, PDFExporter{DisableCompression: true}.Export(path, scan))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(raw)

	require.True(t, strings.HasPrefix(body, "%PDF-"))
	assert.Contains(t, body, "Data Security Risk Analysis Report")

	for _, sec := range Group(scan.Findings) {
		heading := "(Category: " + string(sec.Category) + ")"
		assert.Equal(t, 1, strings.Count(body, heading), heading)
		headingAt := strings.Index(body, heading)

		for _, f := range sec.Findings {
			col := "(Column: " + f.Column + ")"
			assert.Equal(t, 1, strings.Count(body, col), col)
			assert.Greater(t, strings.Index(body, col), headingAt)
		}
	}

	assert.Contains(t, body, "(Risk Level: Critical)")
	assert.Contains(t, body, "(- Contains exact GPS coordinates)")
	assert.Contains(t, body, "(Alice, Bob)")
}

func TestPDFExporter_Compressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, PDFExporter{}.Export(path, sampleScan()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExporters_ReportExportError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out")

	for _, exp := range []Exporter{CSVExporter{}, PDFExporter{}} {
		t.Run(exp.Format(), func(t *testing.T) {
			err := exp.Export(path+"."+exp.Format(), sampleScan())
			require.Error(t, err)

			var exportErr *ExportError
			require.True(t, errors.As(err, &exportErr))
			assert.Equal(t, exp.Format(), exportErr.Format)
		})
	}
}
