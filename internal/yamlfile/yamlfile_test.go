package yamlfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskgen/internal/errors"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "expansions.yml", "build_variant: linux-standalone\nmongodb_setup: standalone\n")

	doc, err := Load(root, "expansions.yml")
	require.NoError(t, err)
	assert.Equal(t, "linux-standalone", doc["build_variant"])
	assert.Equal(t, "standalone", doc["mongodb_setup"])
}

func TestLoad_AbsolutePath(t *testing.T) {
	root := t.TempDir()
	abs := writeFile(t, root, "nested/Workload.yml", "Keyword: value\n")

	doc, err := Load("/somewhere/else", abs)
	require.NoError(t, err)
	assert.Equal(t, "value", doc["Keyword"])
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(t.TempDir(), "expansions.yml")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "expansions.yml")
}

func TestLoad_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad.yml", "key: [unclosed\n")

	_, err := Load(root, "bad.yml")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileUnmarshal, errors.CodeOf(err))
}

func TestLoadSet_SkipsMissingFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bootstrap.yml", "platform: linux\n")

	docs, err := LoadSet(root, []string{"bootstrap.yml", "runtime.yml"})
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "linux", docs["bootstrap"]["platform"])
	assert.NotContains(t, docs, "runtime")
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "expansions", BaseName("workspace/expansions.yml"))
	assert.Equal(t, "MyWorkload", BaseName("src/workloads/scale/MyWorkload.yml"))
}
