package ui

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/K0NGR3SS/colrisk/internal/models"
	"github.com/pterm/pterm"
)

func PrintFindings(w io.Writer, findings []models.Finding) {
	if len(findings) == 0 {
		pterm.Success.WithWriter(w).Println("No columns at or above the selected risk level.")
		return
	}

	pterm.Warning.WithWriter(w).Printf("%d columns flagged:\n\n", len(findings))

	data := [][]string{
		{"Risk", "Category", "Column", "Information Type", "Samples"},
	}

	for _, f := range findings {
		data = append(data, []string{
			RiskLabel(f.Risk),
			pterm.FgCyan.Sprint(string(f.Category)),
			f.Column,
			f.InformationType,
			truncate(strings.Join(f.SampleValues, ", "), 60),
		})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}

// PrintJSON writes the scan as indented JSON, for piping into other tools.
func PrintJSON(w io.Writer, scan models.Scan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(scan)
}

func RiskLabel(r models.RiskLevel) string {
	switch r {
	case models.RiskCritical:
		return pterm.FgRed.Sprint("CRITICAL")
	case models.RiskHigh:
		return pterm.FgRed.Sprint("HIGH")
	case models.RiskMedium:
		return pterm.FgYellow.Sprint("MEDIUM")
	default:
		return pterm.FgBlue.Sprint("LOW")
	}
}

func StartSpinner(text string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.Start(text)
	return spinner
}

// UpdateSpinner is a no-op for a nil spinner so library callers can scan
// without a terminal.
func UpdateSpinner(spinner *pterm.SpinnerPrinter, text string) {
	if spinner == nil {
		return
	}
	spinner.UpdateText(text)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max]) + "..."
	}
	return s
}
