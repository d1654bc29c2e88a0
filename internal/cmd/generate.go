package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskgen/internal/errors"
	"github.com/felixgeelhaar/taskgen/internal/evergreen"
	"github.com/felixgeelhaar/taskgen/internal/workload"
)

var generateCmd = &cobra.Command{
	Use:   "generate <mode>",
	Short: "Generate the task configuration for an operation mode",
	Long: `Generate the scheduler task configuration and write it to
build/TaskJSON/Tasks.json under the workspace root, replacing any previous
contents. The mode is one of:

  all_tasks      every task of every workload, with full task definitions
  variant_tasks  task references applicable to the current build variant
  patch_tasks    task references for workloads modified by the current patch

variant_tasks and patch_tasks read the build variant from the workspace's
expansions.yml.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	generateRepoRoot      string
	generateWorkspaceRoot string
	generateDryRun        bool
)

func init() {
	generateCmd.Flags().StringVar(&generateRepoRoot, "repo-root", ".", "root of the workload repository")
	generateCmd.Flags().StringVar(&generateWorkspaceRoot, "workspace-root", ".", "root of the build workspace")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "print the configuration to stdout instead of writing it")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	tasks, op, err := computeTasks(cmd, args[0], generateRepoRoot, generateWorkspaceRoot)
	if err != nil {
		return err
	}

	writer := evergreen.NewWriter(op)
	if generateDryRun {
		config := writer.Configuration(tasks)
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileMarshal, "failed to serialize task config", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	_, err = writer.Write(tasks)
	return err
}

// computeTasks resolves the operation and build context, then queries the
// repository for the matching task set.
func computeTasks(cmd *cobra.Command, modeName, repoRoot, workspaceRoot string) ([]workload.GeneratedTask, workload.Operation, error) {
	build, err := workload.LoadBuildInfo(workspaceRoot)
	if err != nil {
		return nil, workload.Operation{}, err
	}
	op, err := workload.NewOperation(modeName, repoRoot, workspaceRoot)
	if err != nil {
		return nil, workload.Operation{}, err
	}

	repo := workload.NewRepo(workload.NewLister(repoRoot))
	tasks, err := repo.Tasks(cmd.Context(), op, build)
	if err != nil {
		return nil, workload.Operation{}, err
	}
	return tasks, op, nil
}
