package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/rasterkit/internal/version"
	"github.com/spf13/cobra"
)

// versionCmd prints the build metadata stamped into the binary.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
