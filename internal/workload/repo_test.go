package workload

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskgen/internal/yamlfile"
)

const plainWorkload = "SchemaVersion: 2018-07-01\n"

const autoRunWorkload = `
AutoRun:
  Requires:
    build_variant:
      - linux
  PrepareEnvironmentWith:
    mongodb_setup:
      - x
`

// newTestRepo seeds A.yml (no auto-run) and B.yml (auto-run requiring the
// linux build variant, setup x) and stubs git so that modifiedDiff names the
// modified files.
func newTestRepo(t *testing.T, modifiedDiff string) *Repo {
	t.Helper()
	repoRoot := t.TempDir()
	writeWorkload(t, repoRoot, "A.yml", plainWorkload)
	writeWorkload(t, repoRoot, "B.yml", autoRunWorkload)

	lister := NewLister(repoRoot)
	lister.runGit = stubGit(map[string]string{
		"merge-base": "abc123\n",
		"diff":       modifiedDiff,
	}, nil)
	return NewRepo(lister)
}

func taskNames(tasks []GeneratedTask) []string {
	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		names = append(names, task.Name)
	}
	return names
}

func TestRepo_AllTasks(t *testing.T) {
	repo := newTestRepo(t, "")

	tasks, err := repo.AllTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b_x"}, taskNames(tasks))
}

func TestRepo_VariantTasks(t *testing.T) {
	repo := newTestRepo(t, "")

	t.Run("matching variant", func(t *testing.T) {
		build := NewBuildInfo(yamlfile.Document{"build_variant": "linux"})
		tasks, err := repo.VariantTasks(context.Background(), build)
		require.NoError(t, err)
		assert.Equal(t, []string{"b_x"}, taskNames(tasks))
	})

	t.Run("other variant", func(t *testing.T) {
		build := NewBuildInfo(yamlfile.Document{"build_variant": "osx"})
		tasks, err := repo.VariantTasks(context.Background(), build)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestRepo_PatchTasks(t *testing.T) {
	t.Run("only modified workloads, requirements ignored", func(t *testing.T) {
		repo := newTestRepo(t, "src/workloads/B.yml\n")

		tasks, err := repo.PatchTasks(context.Background())
		require.NoError(t, err)
		// B requires the linux variant but patch mode does not filter on it.
		assert.Equal(t, []string{"b_x"}, taskNames(tasks))
	})

	t.Run("nothing modified", func(t *testing.T) {
		repo := newTestRepo(t, "")

		tasks, err := repo.PatchTasks(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestRepo_ModifiedFlagCarried(t *testing.T) {
	repo := newTestRepo(t, "src/workloads/A.yml\n")

	workloads, err := repo.AllWorkloads(context.Background())
	require.NoError(t, err)
	require.Len(t, workloads, 2)

	assert.Equal(t, "A", workloads[0].BaseName())
	assert.True(t, workloads[0].IsModified)
	assert.False(t, workloads[1].IsModified)
}

func TestRepo_TasksDispatch(t *testing.T) {
	repo := newTestRepo(t, "src/workloads/A.yml\n")
	build := NewBuildInfo(yamlfile.Document{"build_variant": "linux"})

	tests := []struct {
		mode Mode
		want []string
	}{
		{ModeAllTasks, []string{"a", "b_x"}},
		{ModeVariantTasks, []string{"b_x"}},
		{ModePatchTasks, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			tasks, err := repo.Tasks(context.Background(), Operation{Mode: tt.mode}, build)
			require.NoError(t, err)
			assert.Equal(t, tt.want, taskNames(tasks))
		})
	}
}
