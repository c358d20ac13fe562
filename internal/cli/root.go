package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "quern",
	Short: "Dataframe kernel for editor and notebook hosts",
	Long: `Quern maintains a table of named tabular datasets, loads them from
CSV, Excel, JSON, and Parquet files, runs scripts against them through
embedded engines, and reports summary statistics. Hosts drive it as a
subprocess with one JSON command per line on stdin.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("quern version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
