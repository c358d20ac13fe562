package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halfmoss/quern/internal/dataset"
	"github.com/halfmoss/quern/internal/script"
	"github.com/halfmoss/quern/internal/tabular"
)

var (
	execLoads  []string
	execFile   string
	execEngine string
)

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Run a script against loaded datasets",
	Long: `Loads datasets named by --load, then runs a script against them with
the same engine and bindings an ExecuteCommand gets. The script comes from
--file, or from stdin when no file is given.

Example:
  quern exec --load df=sales.csv --file report.star
  echo 'print(df.shape)' | quern exec --load df=sales.csv`,
	Args: cobra.NoArgs,
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringArrayVar(&execLoads, "load", nil, "dataset to load, as name=path (repeatable)")
	execCmd.Flags().StringVarP(&execFile, "file", "f", "", "script file (default: read from stdin)")
	execCmd.Flags().StringVar(&execEngine, "engine", script.DefaultEngineName, "script engine to run with")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	store := dataset.NewStore()
	defer store.Release()

	for _, spec := range execLoads {
		name, path, ok := strings.Cut(spec, "=")
		if !ok || name == "" || path == "" {
			return fmt.Errorf("invalid --load %q: want name=path", spec)
		}
		frame, err := tabular.Load(path)
		if err != nil {
			return err
		}
		store.Put(name, frame)
	}

	code, err := readScript(cmd)
	if err != nil {
		return err
	}

	eng, err := script.DefaultRegistry().Get(execEngine)
	if err != nil {
		return err
	}
	res, err := eng.Execute(cmd.Context(), script.Params{
		Code:     code,
		Datasets: store.Snapshot(),
		Stdout:   cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	if res.HasValue {
		fmt.Fprintln(cmd.OutOrStdout(), res.Value)
	}
	return nil
}

func readScript(cmd *cobra.Command) (string, error) {
	if execFile != "" {
		data, err := os.ReadFile(execFile)
		if err != nil {
			return "", fmt.Errorf("reading script file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading script from stdin: %w", err)
	}
	return string(data), nil
}
