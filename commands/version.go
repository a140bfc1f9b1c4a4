package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var Version = "v1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of colrisk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("colrisk " + Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
