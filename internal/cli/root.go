// Package cli wires the cobra command surface of cmd/simcore: a root
// command plus run/serve subcommands, grounded on the inference-sim
// example's cmd/root.go pattern of package-level flag variables bound in
// init and a Run closure.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/trafficsim/simcore/pkg/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "simcore",
	Short: "Discrete-event traffic micro-simulation core",
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger.SetDefault(logger.NewText(logLevel, os.Stdout))
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}
