package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskgen/internal/ux"
)

var listCmd = &cobra.Command{
	Use:   "list <mode>",
	Short: "List the tasks an operation mode would generate",
	Long: `Compute the task set for the given operation mode and print it
without touching the output file. Useful for inspecting what a generate run
would schedule.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var (
	listRepoRoot      string
	listWorkspaceRoot string
	listFormat        string
)

func init() {
	listCmd.Flags().StringVar(&listRepoRoot, "repo-root", ".", "root of the workload repository")
	listCmd.Flags().StringVar(&listWorkspaceRoot, "workspace-root", ".", "root of the build workspace")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "text", "output format (text, json, yaml)")

	rootCmd.AddCommand(listCmd)
}

// taskSummary is one generated task in list output.
type taskSummary struct {
	Name     string `json:"name" yaml:"name"`
	Setup    string `json:"setup,omitempty" yaml:"setup,omitempty"`
	Path     string `json:"path" yaml:"path"`
	Modified bool   `json:"modified" yaml:"modified"`
}

// taskList is the list command's printable result.
type taskList struct {
	Mode    string        `json:"mode" yaml:"mode"`
	Variant string        `json:"variant,omitempty" yaml:"variant,omitempty"`
	Tasks   []taskSummary `json:"tasks" yaml:"tasks"`
}

// String renders the list for the text formatter.
func (l taskList) String() string {
	var b strings.Builder

	title := fmt.Sprintf("%d task(s) for %s", len(l.Tasks), l.Mode)
	if l.Variant != "" {
		title += " on " + l.Variant
	}
	b.WriteString(ux.TitleStyle.Render(title))

	for _, task := range l.Tasks {
		details := task.Path
		if task.Setup != "" {
			details += ", setup " + task.Setup
		}
		if task.Modified {
			details += ", modified"
		}
		b.WriteString("\n  ")
		b.WriteString(ux.TaskStyle.Render(task.Name))
		b.WriteString(" ")
		b.WriteString(ux.MutedStyle.Render("(" + details + ")"))
	}
	return b.String()
}

func runList(cmd *cobra.Command, args []string) error {
	tasks, op, err := computeTasks(cmd, args[0], listRepoRoot, listWorkspaceRoot)
	if err != nil {
		return err
	}

	result := taskList{Mode: op.Mode.String(), Variant: op.Variant}
	for _, task := range tasks {
		result.Tasks = append(result.Tasks, taskSummary{
			Name:     task.Name,
			Setup:    task.Setup,
			Path:     task.Workload.RelativePath(),
			Modified: task.Workload.IsModified,
		})
	}

	formatter, err := ux.NewFormatter(listFormat, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	return formatter.Format(result)
}
