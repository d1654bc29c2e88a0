package exitcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/taskgen/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: Success},
		{name: "plain error", err: fmt.Errorf("boom"), want: GeneralError},
		{name: "missing file", err: errors.NewFileNotFoundError("expansions.yml"), want: ConfigError},
		{name: "bad setup shape", err: errors.NewSetupShapeError("w.yml"), want: ConfigError},
		{name: "unknown expansion", err: errors.NewUnknownExpansionError("k", nil), want: ConfigError},
		{name: "git failed", err: errors.NewVCSCommandError("git diff", fmt.Errorf("exit 128")), want: VCSError},
		{name: "write failed", err: errors.New(errors.ErrCodeFileWriteFailed, "disk full"), want: WriteError},
		{name: "bad mode", err: errors.NewUnknownModeError("sometimes_tasks"), want: UsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	assert.Equal(t, "Success", GetExitCodeDescription(Success))
	assert.Equal(t, "Unknown error", GetExitCodeDescription(99))
}
