package workload

import (
	"context"
	"sort"

	"github.com/felixgeelhaar/taskgen/internal/errors"
)

// Repo aggregates every workload definition in the repository checkout and
// computes the three task sets an invocation can ask for.
type Repo struct {
	lister *Lister
}

// NewRepo creates a Repo backed by the given lister.
func NewRepo(lister *Lister) *Repo {
	return &Repo{lister: lister}
}

// AllWorkloads parses every workload file, carrying the modified flag
// computed from version control. Workloads are returned in path order so
// task generation is deterministic.
func (r *Repo) AllWorkloads(ctx context.Context) ([]*Workload, error) {
	all, err := r.lister.AllWorkloadFiles()
	if err != nil {
		return nil, err
	}
	modified, err := r.lister.ModifiedWorkloadFiles(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(all))
	for path := range all {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	workloads := make([]*Workload, 0, len(paths))
	for _, path := range paths {
		_, isModified := modified[path]
		w, err := New(path, isModified)
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, w)
	}
	return workloads, nil
}

// ModifiedWorkloads returns the workloads flagged modified.
func (r *Repo) ModifiedWorkloads(ctx context.Context) ([]*Workload, error) {
	all, err := r.AllWorkloads(ctx)
	if err != nil {
		return nil, err
	}
	var modified []*Workload
	for _, w := range all {
		if w.IsModified {
			modified = append(modified, w)
		}
	}
	return modified, nil
}

// AllTasks returns every possible task from every workload.
func (r *Repo) AllTasks(ctx context.Context) ([]GeneratedTask, error) {
	workloads, err := r.AllWorkloads(ctx)
	if err != nil {
		return nil, err
	}
	var tasks []GeneratedTask
	for _, w := range workloads {
		tasks = append(tasks, w.AllTasks()...)
	}
	return tasks, nil
}

// VariantTasks returns the tasks applicable to the current build variant.
func (r *Repo) VariantTasks(ctx context.Context, build *BuildInfo) ([]GeneratedTask, error) {
	workloads, err := r.AllWorkloads(ctx)
	if err != nil {
		return nil, err
	}
	var tasks []GeneratedTask
	for _, w := range workloads {
		variantTasks, err := w.VariantTasks(build)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, variantTasks...)
	}
	return tasks, nil
}

// PatchTasks returns all tasks of every modified workload. Requirement
// filtering deliberately does not apply here: a modified workload gets all
// its tasks regardless of variant applicability.
func (r *Repo) PatchTasks(ctx context.Context) ([]GeneratedTask, error) {
	workloads, err := r.ModifiedWorkloads(ctx)
	if err != nil {
		return nil, err
	}
	var tasks []GeneratedTask
	for _, w := range workloads {
		tasks = append(tasks, w.AllTasks()...)
	}
	return tasks, nil
}

// Tasks dispatches to the task set matching the operation mode.
func (r *Repo) Tasks(ctx context.Context, op Operation, build *BuildInfo) ([]GeneratedTask, error) {
	switch op.Mode {
	case ModeAllTasks:
		return r.AllTasks(ctx)
	case ModePatchTasks:
		return r.PatchTasks(ctx)
	case ModeVariantTasks:
		return r.VariantTasks(ctx, build)
	default:
		// Unreachable given ParseMode, kept as a guard.
		return nil, errors.New(errors.ErrCodeOpUnknownMode, "invalid operation mode")
	}
}
