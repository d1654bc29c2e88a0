// Package workload models declarative workload definitions and the CI tasks
// they generate.
package workload

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/felixgeelhaar/taskgen/internal/errors"
	"github.com/felixgeelhaar/taskgen/internal/log"
	"github.com/felixgeelhaar/taskgen/internal/yamlfile"
)

// Keys recognized inside a workload definition.
const (
	autoRunKey  = "AutoRun"
	requiresKey = "Requires"
	prepareKey  = "PrepareEnvironmentWith"
	setupKey    = "mongodb_setup"
)

// GeneratedTask is one derived CI task: a name, an optional environment setup
// and the workload it came from.
type GeneratedTask struct {
	Name     string
	Setup    string
	Workload *Workload
}

// Workload represents one parsed workload definition file.
// Immutable after construction.
type Workload struct {
	// FilePath is the absolute path of the definition file
	FilePath string

	// IsModified records whether version control flagged the file as touched
	// by the current change
	IsModified bool

	// Requires maps expansion keys to their acceptable values. Nil when the
	// file has no AutoRun block.
	Requires map[string][]string

	// Setups lists the environment setups to generate one task each for, in
	// declaration order. Nil when the file declares none.
	Setups []string
}

// New parses the workload definition at path. A file without an AutoRun
// block is still schedulable: it has no requirements and no setups and yields
// a single default task.
func New(path string, isModified bool) (*Workload, error) {
	w := &Workload{
		FilePath:   path,
		IsModified: isModified,
	}

	doc, err := yamlfile.Load("", path)
	if err != nil {
		return nil, err
	}

	raw, ok := doc[autoRunKey]
	if !ok {
		return w, nil
	}
	autoRun, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeFileUnmarshal,
			fmt.Sprintf("%s block in file %s must be a mapping", autoRunKey, path))
	}

	if w.Requires, err = parseRequires(autoRun, path); err != nil {
		return nil, err
	}
	if w.Setups, err = parseSetups(autoRun, path); err != nil {
		return nil, err
	}
	return w, nil
}

func parseRequires(autoRun map[string]any, path string) (map[string][]string, error) {
	raw, ok := autoRun[requiresKey]
	if !ok || raw == nil {
		return nil, nil
	}
	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeFileUnmarshal,
			fmt.Sprintf("%s block in file %s must map keys to lists of values", requiresKey, path))
	}

	requires := make(map[string][]string, len(mapping))
	for key, values := range mapping {
		list, ok := values.([]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeFileUnmarshal,
				fmt.Sprintf("%s entry %q in file %s must hold a list", requiresKey, key, path))
		}
		acceptable := make([]string, 0, len(list))
		for _, value := range list {
			acceptable = append(acceptable, fmt.Sprint(value))
		}
		requires[key] = acceptable
	}
	return requires, nil
}

// parseSetups enforces the shape of the PrepareEnvironmentWith block: exactly
// one entry, keyed mongodb_setup, holding a list of setup names.
func parseSetups(autoRun map[string]any, path string) ([]string, error) {
	raw, ok := autoRun[prepareKey]
	if !ok {
		return nil, nil
	}

	prep, ok := raw.(map[string]any)
	if !ok || len(prep) != 1 {
		return nil, errors.NewSetupShapeError(path)
	}
	rawSetups, ok := prep[setupKey]
	if !ok {
		return nil, errors.NewSetupShapeError(path)
	}
	list, ok := rawSetups.([]any)
	if !ok {
		return nil, errors.NewSetupShapeError(path)
	}

	setups := make([]string, 0, len(list))
	for _, setup := range list {
		setups = append(setups, fmt.Sprint(setup))
	}
	return setups, nil
}

// BaseName returns the file's base name with the .yml extension stripped.
func (w *Workload) BaseName() string {
	return yamlfile.BaseName(w.FilePath)
}

// RelativePath returns the definition's path relative to the workloads
// subtree, the form the task execution function expects.
func (w *Workload) RelativePath() string {
	parts := strings.SplitN(filepath.ToSlash(w.FilePath), WorkloadsDir+"/", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return w.FilePath
}

// AllTasks returns every task this workload can generate, irrespective of the
// current build variant: one per setup in declaration order, or a single bare
// task when no setups are declared.
func (w *Workload) AllTasks() []GeneratedTask {
	base := toSnakeCase(w.BaseName())
	if w.Setups == nil {
		return []GeneratedTask{{Name: base, Workload: w}}
	}

	tasks := make([]GeneratedTask, 0, len(w.Setups))
	for _, setup := range w.Setups {
		tasks = append(tasks, GeneratedTask{
			Name:     base + "_" + toSnakeCase(setup),
			Setup:    setup,
			Workload: w,
		})
	}
	return tasks
}

// VariantTasks returns the workload's tasks when every Requires constraint is
// satisfied by the current build, or nothing otherwise. Every constraint is
// evaluated and logged even after one fails, then the results are reduced to
// a single AND; the full scan keeps the scheduling decision observable.
func (w *Workload) VariantTasks(build *BuildInfo) ([]GeneratedTask, error) {
	if len(w.Requires) == 0 {
		return nil, nil
	}

	logger := log.DefaultLogger()
	okay := true

	keys := make([]string, 0, len(w.Requires))
	for key := range w.Requires {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		acceptable := w.Requires[key]
		has, err := build.Has(key, acceptable)
		if err != nil {
			return nil, err
		}
		msg := "Scheduling workload."
		if !has {
			msg = "Not scheduling workload"
			okay = false
		}
		logger.Info(msg,
			"workload_base_name", w.BaseName(),
			"key", key,
			"acceptable_values", acceptable,
			"build_variant", build.Variant(),
		)
	}

	if !okay {
		return nil, nil
	}
	return w.AllTasks(), nil
}

var (
	camelBoundary = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	snakeBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// toSnakeCase converts CamelCase and hyphenated names to snake_case, e.g.
// "MyWorkload" -> "my_workload" and "CDARollingIndexes" ->
// "cda_rolling_indexes". Task names must be a pure function of the file base
// name and setup name, so the rewrite order is fixed.
func toSnakeCase(name string) string {
	s := camelBoundary.ReplaceAllString(name, "${1}_${2}")
	s = strings.ReplaceAll(s, "-", "_")
	s = snakeBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
