package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halfmoss/quern/internal/tabular"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Load a file and print its metadata report",
	Long: `Loads a single tabular file and prints the same three-part report
a GetInfo command produces: structural summary, descriptive statistics,
and the first five rows.

Supported formats: ` + strings.Join(tabular.SupportedExtensions(), ", ") + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	frame, err := tabular.Load(path)
	if err != nil {
		return err
	}
	defer frame.Release()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	fmt.Fprintln(cmd.OutOrStdout(), tabular.MetadataReport(name, frame))
	return nil
}
