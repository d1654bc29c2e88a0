package workload

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/taskgen/internal/errors"
)

// WorkloadsDir is the repository subtree holding workload definitions.
const WorkloadsDir = "src/workloads"

// mergeBaseRef is the remote branch the patch diff is computed against.
const mergeBaseRef = "origin/master"

// gitRunner executes a git command inside dir and returns its stdout.
type gitRunner func(ctx context.Context, dir string, args ...string) (string, error)

// Lister enumerates workload definition files, both the full set and the set
// modified relative to the merge-base. Separate from Repo for easier testing.
type Lister struct {
	repoRoot string
	runGit   gitRunner
}

// NewLister creates a Lister rooted at the workload repository.
func NewLister(repoRoot string) *Lister {
	return &Lister{
		repoRoot: repoRoot,
		runGit:   runGitCommand,
	}
}

// AllWorkloadFiles returns the set of all workload YAML files under the
// workloads subtree, as absolute paths. A missing subtree yields an empty set.
func (l *Lister) AllWorkloadFiles() (map[string]struct{}, error) {
	root := filepath.Join(l.repoRoot, WorkloadsDir)
	files := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".yml") {
			files[path] = struct{}{}
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return files, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to list workload files under "+root, err)
	}
	return files, nil
}

// ModifiedWorkloadFiles returns the set of workload files added, modified, or
// renamed between the merge-base of HEAD and origin/master, as absolute
// paths. A failing git invocation fails the whole operation.
func (l *Lister) ModifiedWorkloadFiles(ctx context.Context) (map[string]struct{}, error) {
	base, err := l.runGit(ctx, l.repoRoot, "merge-base", "HEAD", mergeBaseRef)
	if err != nil {
		return nil, errors.NewVCSCommandError("git merge-base HEAD "+mergeBaseRef, err)
	}
	base = strings.TrimSpace(base)

	out, err := l.runGit(ctx, l.repoRoot,
		"diff", "--name-only", "--diff-filter=AMR", base, "--", WorkloadsDir+"/")
	if err != nil {
		return nil, errors.NewVCSCommandError("git diff --name-only --diff-filter=AMR", err)
	}

	files := make(map[string]struct{})
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, ".yml") {
			files[filepath.Join(l.repoRoot, line)] = struct{}{}
		}
	}
	return files, nil
}

func runGitCommand(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
