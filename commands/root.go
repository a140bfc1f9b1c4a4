package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "colrisk",
	Short: "colrisk flags sensitive columns in tabular data before it is shared",
	Long: `colrisk inspects a delimited data file, classifies every column by name and sampled values,
assigns a risk level and writes CSV and PDF findings reports for a quick privacy review.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Local .env files are optional; real environment variables win.
		_ = godotenv.Load(".env.local")
		_ = godotenv.Load(".env")
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "colrisk.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug detail")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Skip the startup banner")
}
