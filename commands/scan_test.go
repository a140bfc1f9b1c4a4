package commands

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K0NGR3SS/colrisk/internal/catalog"
	"github.com/K0NGR3SS/colrisk/internal/config"
	"github.com/K0NGR3SS/colrisk/internal/models"
	"github.com/K0NGR3SS/colrisk/internal/report"
	"github.com/K0NGR3SS/colrisk/internal/table"
	"github.com/K0NGR3SS/colrisk/internal/ui"
)

const tweetsCSV = `_unit_id,gender,name,description,tweet_coord,user_timezone,created,profileimage,notes
815719226,male,sheezy0,"i sing my own rhythm and love long walks, dm me for my number or find me downtown","[40.74, -73.99]",Chennai,10/26/15 12:40,https://pbs.twimg.com/a.jpeg,
815719227,female,Ruby_Hue,,,Eastern Time (US & Canada),10/26/15 12:41,https://pbs.twimg.com/b.jpeg,
`

func TestAnalyzeAndExport_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tweets.csv")
	require.NoError(t, os.WriteFile(input, []byte(tweetsCSV), 0o644))

	cfg := config.Default()
	cfg.OutputDir = dir
	log := ui.NewLogger(false)

	scan, err := analyze(context.Background(), cfg, input, nil, nil, log)
	require.NoError(t, err)
	assert.Equal(t, 2, scan.Rows)
	assert.NotEmpty(t, scan.ID)
	require.Len(t, scan.Findings, 9)

	byColumn := map[string]models.Finding{}
	for _, f := range scan.Findings {
		byColumn[f.Column] = f
	}
	assert.Equal(t, models.CategoryIDs, byColumn["_unit_id"].Category)
	assert.Equal(t, models.RiskHigh, byColumn["description"].Risk)
	assert.Equal(t, models.RiskCritical, byColumn["tweet_coord"].Risk)
	assert.Equal(t, models.RiskHigh, byColumn["user_timezone"].Risk)
	assert.Equal(t, models.CategoryPersonalInfo, byColumn["profileimage"].Category)
	assert.Equal(t, models.CategoryUncategorized, byColumn["notes"].Category)
	assert.Equal(t, []string{"male", "female"}, byColumn["gender"].SampleValues)

	require.NoError(t, exportReports(cfg, scan, log, io.Discard))

	f, err := os.Open(filepath.Join(dir, report.DefaultCSVName))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(scan.Findings)+1)
	for i, fd := range scan.Findings {
		assert.Equal(t, fd.Column, rows[i+1][1])
		assert.Equal(t, fd.Risk.Title(), rows[i+1][2])
	}

	pdf, err := os.ReadFile(filepath.Join(dir, report.DefaultPDFName))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
}

func TestAnalyze_LoadFailures(t *testing.T) {
	cfg := config.Default()
	log := ui.NewLogger(false)

	_, err := analyze(context.Background(), cfg, filepath.Join(t.TempDir(), "missing.csv"), nil, nil, log)
	var encErr *table.EncodingDetectionError
	assert.True(t, errors.As(err, &encErr))

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = analyze(context.Background(), cfg, empty, nil, nil, log)
	var malformed *table.MalformedTableError
	assert.True(t, errors.As(err, &malformed))
}

func TestExportReports_ContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutputDir = dir
	cfg.CSVReport = filepath.Join("no-such-dir", "out.csv")

	scan := models.Scan{Findings: []models.Finding{{Column: "name", Category: models.CategoryPersonalInfo, Risk: models.RiskMedium}}}
	err := exportReports(cfg, scan, ui.NewLogger(false), io.Discard)

	var exportErr *report.ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "csv", exportErr.Format)

	_, statErr := os.Stat(filepath.Join(dir, report.DefaultPDFName))
	assert.NoError(t, statErr)
}

func TestPublish_JSONKeepsStdoutClean(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tweets.csv")
	require.NoError(t, os.WriteFile(input, []byte(tweetsCSV), 0o644))

	cfg := config.Default()
	cfg.OutputDir = dir
	cfg.OutputFormat = "json"
	cfg.MinRisk = "HIGH"
	log := ui.NewLogger(false)

	scan, err := analyze(context.Background(), cfg, input, nil, nil, log)
	require.NoError(t, err)

	var stdout, status bytes.Buffer
	require.NoError(t, publish(cfg, scan, log, &stdout, &status))

	var got models.Scan
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, scan.ID, got.ID)
	for _, f := range got.Findings {
		assert.True(t, f.Risk.AtLeast(models.RiskHigh), f.Column)
	}
	assert.Contains(t, status.String(), report.DefaultCSVName)
	assert.Contains(t, status.String(), report.DefaultPDFName)
}

func TestPublish_TableModeReportsOnStdout(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	scan := models.Scan{Findings: []models.Finding{{Column: "user_name", Category: models.CategoryPersonalInfo, Risk: models.RiskMedium}}}

	var stdout bytes.Buffer
	require.NoError(t, publish(cfg, scan, ui.NewLogger(false), &stdout, &stdout))
	assert.Contains(t, stdout.String(), "user_name")
	assert.Contains(t, stdout.String(), report.DefaultCSVName)
}

func TestRulesTable(t *testing.T) {
	data := rulesTable(catalog.Default())
	require.Len(t, data, catalog.Default().Len()+1)
	assert.Equal(t, "Locations", data[1][1])
	assert.Contains(t, data[1][4], "gps_coordinates")
}
