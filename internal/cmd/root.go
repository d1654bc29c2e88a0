package cmd

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskgen/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "taskgen",
	Short: "CI task generator for workload definitions",
	Long: `taskgen discovers declarative workload definitions in a repository,
decides which CI tasks each should generate, and emits a task-configuration
document for the scheduler. Depending on the operation mode it generates
tasks for all workloads, only the ones touched by the current patch, or only
the ones applicable to the current build variant.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := log.New(log.Config{
			Level:  log.ParseLevel(logLevel),
			Format: log.ParseFormat(logFormat),
			Output: log.OutputStderr(),
		})
		log.SetDefaultLogger(logger.With("run_id", uuid.NewString()))
	},
}

var (
	logLevel  string
	logFormat string
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json, text)")
}
