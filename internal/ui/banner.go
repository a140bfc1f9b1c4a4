package ui

import (
	"os"

	"github.com/pterm/pterm"
)

func PrintBanner(version string) {
	logo := `
             __     _      __
  _________  / /____(_)____/ /__
 / ___/ __ \/ / ___/ / ___/ //_/
/ /__/ /_/ / / /  / (__  ) ,<
\___/\____/_/_/  /_/____/_/|_|
`
	pterm.FgRed.Println(logo)
	pterm.DefaultCenter.Println(pterm.FgGray.Sprint(version + " - Column Risk Triage"))
	pterm.Println()

	pterm.DefaultBox.
		WithTitle(pterm.FgYellow.Sprint("⚠️  SAMPLE VALUES ARE NOT REDACTED ⚠️")).
		WithTitleBottomCenter().
		WithRightPadding(2).
		WithLeftPadding(2).
		Println("Reports include raw example values from every column.\nTreat them with the same care as the input dataset.")

	pterm.Println()
}

// NewLogger returns the structured logger used for debug detail. Output
// goes to stderr so JSON on stdout stays clean.
func NewLogger(verbose bool) *pterm.Logger {
	level := pterm.LogLevelInfo
	if verbose {
		level = pterm.LogLevelDebug
	}
	return pterm.DefaultLogger.WithLevel(level).WithWriter(os.Stderr)
}
