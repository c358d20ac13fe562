package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halfmoss/quern/internal/config"
	"github.com/halfmoss/quern/internal/kernel"
	"github.com/halfmoss/quern/internal/logging"
)

var (
	kernelConfigPath string
	kernelLogLevel   string
	kernelEngine     string
)

var kernelCmd = &cobra.Command{
	Use:   "kernel",
	Short: "Run the command loop over stdio",
	Long: `Reads one JSON command per line from stdin and writes results to
stdout, diagnostics to stderr, and the sentinel line after every command.
Runs until stdin closes.

This is the mode hosts spawn; the other subcommands are one-shot helpers
around the same internals.`,
	Args: cobra.NoArgs,
	RunE: runKernel,
}

func init() {
	kernelCmd.Flags().StringVar(&kernelConfigPath, "config", "", "config file path (default: .quern.yaml if present)")
	kernelCmd.Flags().StringVar(&kernelLogLevel, "log-level", "", "log level override: debug, info, warn, error")
	kernelCmd.Flags().StringVar(&kernelEngine, "engine", "", "default script engine override")
	rootCmd.AddCommand(kernelCmd)
}

func runKernel(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(kernelConfigPath)
	if err != nil {
		return err
	}
	if kernelLogLevel != "" {
		cfg.LogLevel = kernelLogLevel
	}
	if kernelEngine != "" {
		cfg.DefaultEngine = kernelEngine
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, cleanup := logging.Setup(logging.Options{Level: level, SeqURL: cfg.SeqURL})
	defer cleanup()

	loop := kernel.NewLoop(kernel.Options{
		In:            cmd.InOrStdin(),
		Out:           cmd.OutOrStdout(),
		ErrOut:        cmd.ErrOrStderr(),
		DefaultEngine: cfg.DefaultEngine,
		Logger:        logger,
	})
	if err := loop.Run(cmd.Context()); err != nil {
		return fmt.Errorf("kernel loop: %w", err)
	}
	return nil
}
