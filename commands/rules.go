package commands

import (
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/K0NGR3SS/colrisk/internal/catalog"
	"github.com/K0NGR3SS/colrisk/internal/config"
	"github.com/K0NGR3SS/colrisk/internal/ui"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the column-name rules in priority order",
	Long:  `Prints the active pattern catalog. The first rule whose keyword appears in a column name decides its category.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(path, cmd.Flags().Changed("config"))
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			pterm.Error.Printf("Config: %v\n", err)
			os.Exit(exitLoadFailure)
		}

		_ = pterm.DefaultTable.WithHasHeader().WithData(rulesTable(cfg.Catalog())).Render()
	},
}

func rulesTable(cat catalog.Catalog) [][]string {
	data := [][]string{
		{"#", "Category", "Keywords", "Base Risk", "Escalations"},
	}
	for i, r := range cat.Rules() {
		var esc []string
		for _, e := range r.Escalations {
			esc = append(esc, string(e.Shape)+" -> "+string(e.Level))
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			string(r.Category),
			strings.Join(r.Keywords, ", "),
			ui.RiskLabel(r.BaseRisk),
			strings.Join(esc, ", "),
		})
	}
	return data
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
