package evergreen

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/taskgen/internal/errors"
	"github.com/felixgeelhaar/taskgen/internal/log"
	"github.com/felixgeelhaar/taskgen/internal/workload"
)

// Scheduling constants written into the output configuration. The process
// itself has no timeouts; these are enforced downstream by the scheduler.
const (
	// configExecTimeoutSecs caps a whole generated-config run at 18 hours
	configExecTimeoutSecs = 64800
	// taskExecTimeoutSecs caps a single task at 24 hours
	taskExecTimeoutSecs = 86400
	// taskIdleTimeoutSecs kills a task silent for 2 hours
	taskIdleTimeoutSecs = 7200

	taskPriority = 5

	// runWorkloadFunc is the project function that executes one workload
	runWorkloadFunc = "f_run_dsi_workload"
)

// outputFileParts locate the task configuration relative to the workspace
// root. Previous contents are discarded on every run.
var outputFileParts = []string{"build", "TaskJSON", "Tasks.json"}

// Writer converts generated tasks into the scheduler configuration for one
// operation and persists it.
type Writer struct {
	op workload.Operation
}

// NewWriter creates a Writer for the given operation.
func NewWriter(op workload.Operation) *Writer {
	return &Writer{op: op}
}

// Configuration builds the scheduler configuration without writing it.
// All-tasks mode emits full task definitions; variant and patch modes emit a
// single build-variant entry of bare task references.
func (w *Writer) Configuration(tasks []workload.GeneratedTask) *Configuration {
	if w.op.Mode == workload.ModeAllTasks {
		return allTasksConfiguration(tasks)
	}
	return variantTasksConfiguration(tasks, w.op.Variant)
}

// Write builds the configuration, serializes it and replaces the output
// file. Exactly one summary log line records the attempt, whether it
// succeeded or failed; failures are returned after being logged.
func (w *Writer) Write(tasks []workload.GeneratedTask) (config *Configuration, err error) {
	config = w.Configuration(tasks)
	outputFile := filepath.Join(append([]string{w.op.WorkspaceRoot}, outputFileParts...)...)

	logger := log.DefaultLogger()
	defer func() {
		if err != nil {
			logger.WithError(err).Error("Failed to write task config", "output_file", outputFile)
		} else {
			logger.Info("Wrote task config", "output_file", outputFile)
		}
	}()

	data, marshalErr := json.MarshalIndent(config, "", "  ")
	if marshalErr != nil {
		err = errors.Wrap(errors.ErrCodeFileMarshal, "failed to serialize task config", marshalErr)
		return nil, err
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(outputFile), 0755); mkdirErr != nil {
		err = errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to create output directory", mkdirErr)
		return nil, err
	}
	if removeErr := os.Remove(outputFile); removeErr != nil && !os.IsNotExist(removeErr) {
		err = errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to remove previous task config", removeErr)
		return nil, err
	}
	if writeErr := os.WriteFile(outputFile, data, 0644); writeErr != nil {
		err = errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write "+outputFile, writeErr)
		return nil, err
	}

	logger.Debug("Wrote task json", "output_file", outputFile, "contents", string(data))
	return config, nil
}

func allTasksConfiguration(tasks []workload.GeneratedTask) *Configuration {
	config := &Configuration{ExecTimeoutSecs: configExecTimeoutSecs}
	for _, task := range tasks {
		vars := map[string]string{
			"test_control":       task.Name,
			"auto_workload_path": task.Workload.RelativePath(),
		}
		if task.Setup != "" {
			vars["mongodb_setup"] = task.Setup
		}

		config.Tasks = append(config.Tasks, &Task{
			Name:     task.Name,
			Priority: taskPriority,
			Commands: []*Command{
				{
					Command: "timeout.update",
					Params: map[string]any{
						"exec_timeout_secs": taskExecTimeoutSecs,
						"timeout_secs":      taskIdleTimeoutSecs,
					},
				},
				{
					Func: runWorkloadFunc,
					Vars: vars,
				},
			},
		})
	}
	return config
}

func variantTasksConfiguration(tasks []workload.GeneratedTask, variant string) *Configuration {
	specs := make([]TaskSpec, 0, len(tasks))
	for _, task := range tasks {
		specs = append(specs, TaskSpec{Name: task.Name})
	}
	return &Configuration{
		BuildVariants: []*Variant{{Name: variant, Tasks: specs}},
	}
}
