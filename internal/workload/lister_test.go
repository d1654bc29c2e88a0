package workload

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskgen/internal/errors"
)

// stubGit returns canned output per git subcommand.
func stubGit(outputs map[string]string, failing map[string]error) gitRunner {
	return func(ctx context.Context, dir string, args ...string) (string, error) {
		sub := args[0]
		if err, ok := failing[sub]; ok {
			return "", err
		}
		return outputs[sub], nil
	}
}

func TestAllWorkloadFiles(t *testing.T) {
	repoRoot := t.TempDir()
	a := writeWorkload(t, repoRoot, "scale/BigUpdate.yml", "{}\n")
	b := writeWorkload(t, repoRoot, "networking/Ping.yml", "{}\n")
	writeWorkload(t, repoRoot, "scale/notes.md", "not a workload\n")

	lister := NewLister(repoRoot)
	files, err := lister.AllWorkloadFiles()
	require.NoError(t, err)

	assert.Equal(t, map[string]struct{}{a: {}, b: {}}, files)
}

func TestAllWorkloadFiles_MissingTree(t *testing.T) {
	lister := NewLister(t.TempDir())

	files, err := lister.AllWorkloadFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestModifiedWorkloadFiles(t *testing.T) {
	repoRoot := t.TempDir()
	lister := NewLister(repoRoot)
	lister.runGit = stubGit(map[string]string{
		"merge-base": "abc123\n",
		"diff":       "src/workloads/scale/BigUpdate.yml\nsrc/workloads/README.md\n\n",
	}, nil)

	files, err := lister.ModifiedWorkloadFiles(context.Background())
	require.NoError(t, err)

	want := map[string]struct{}{
		filepath.Join(repoRoot, "src/workloads/scale/BigUpdate.yml"): {},
	}
	assert.Equal(t, want, files)
}

func TestModifiedWorkloadFiles_GitFailure(t *testing.T) {
	for _, sub := range []string{"merge-base", "diff"} {
		t.Run(sub, func(t *testing.T) {
			lister := NewLister(t.TempDir())
			lister.runGit = stubGit(
				map[string]string{"merge-base": "abc123\n"},
				map[string]error{sub: fmt.Errorf("exit status 128")},
			)

			_, err := lister.ModifiedWorkloadFiles(context.Background())
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeVCSCommandFailed, errors.CodeOf(err))
		})
	}
}
