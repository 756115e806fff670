// Command 3pg runs the 3-PG forest stand growth model.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
)

var (
	logger  *zap.Logger
	rt      config.Runtime
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "3pg",
	Short:         "3-PG forest stand growth model",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if rt, err = config.ParseRuntime(); err != nil {
			return err
		}
		lvl, err := zapcore.ParseLevel(rt.LogLevel)
		if err != nil {
			return fmt.Errorf("THREEPG_LOG_LEVEL: %w", err)
		}
		if verbose {
			lvl = zapcore.DebugLevel
		}
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(lvl)
		if logger, err = zc.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every simulated month")
	rootCmd.AddCommand(runCmd, climateCmd, checkCmd, initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "3pg:", err)
		os.Exit(1)
	}
}
