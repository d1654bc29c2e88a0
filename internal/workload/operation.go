package workload

import (
	"fmt"

	"github.com/felixgeelhaar/taskgen/internal/errors"
	"github.com/felixgeelhaar/taskgen/internal/yamlfile"
)

// Mode selects what kind of tasks an invocation generates.
type Mode int

const (
	// ModeAllTasks generates every task of every workload
	ModeAllTasks Mode = iota
	// ModeVariantTasks generates tasks applicable to the current build variant
	ModeVariantTasks
	// ModePatchTasks generates all tasks of workloads touched by the current patch
	ModePatchTasks
)

// String returns the CLI token for the mode
func (m Mode) String() string {
	switch m {
	case ModeAllTasks:
		return "all_tasks"
	case ModeVariantTasks:
		return "variant_tasks"
	case ModePatchTasks:
		return "patch_tasks"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses one of the three fixed mode tokens. Mode strings never
// travel past this boundary; everything downstream works on the closed enum.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "all_tasks":
		return ModeAllTasks, nil
	case "variant_tasks":
		return ModeVariantTasks, nil
	case "patch_tasks":
		return ModePatchTasks, nil
	default:
		return ModeAllTasks, errors.NewUnknownModeError(s)
	}
}

// Operation is the resolved input of one invocation.
type Operation struct {
	Mode          Mode
	Variant       string
	RepoRoot      string
	WorkspaceRoot string
}

// NewOperation parses the mode token and, for variant and patch modes,
// resolves the build variant from the workspace's expansions file.
func NewOperation(modeName, repoRoot, workspaceRoot string) (Operation, error) {
	mode, err := ParseMode(modeName)
	if err != nil {
		return Operation{}, err
	}

	op := Operation{
		Mode:          mode,
		RepoRoot:      repoRoot,
		WorkspaceRoot: workspaceRoot,
	}

	if mode == ModeVariantTasks || mode == ModePatchTasks {
		expansions, err := yamlfile.Load(workspaceRoot, ExpansionsFile)
		if err != nil {
			return Operation{}, err
		}
		variant, ok := expansions[BuildVariantKey]
		if !ok {
			return Operation{}, errors.New(errors.ErrCodeExpansionBadValue,
				fmt.Sprintf("expansions file is missing the %s key required for %s", BuildVariantKey, mode))
		}
		op.Variant = fmt.Sprint(variant)
	}

	return op, nil
}
