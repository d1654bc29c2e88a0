// Package yamlfile loads YAML documents from the repository and workspace.
package yamlfile

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/taskgen/internal/errors"
)

// Document is one parsed YAML file, an arbitrarily nested mapping.
type Document map[string]any

// Load reads and parses a single YAML file. The path is resolved relative to
// root unless it is already absolute. A missing file is an error; there is no
// caching, every call re-reads the file.
func Load(root, path string) (Document, error) {
	joined := path
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(root, path)
	}

	data, err := os.ReadFile(joined)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFoundError(joined)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read "+joined, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewFileUnmarshalError(joined, err)
	}
	return doc, nil
}

// LoadSet loads the given files and keys each document by the file's base
// name with the extension stripped, e.g. "config/expansions.yml" ->
// "expansions". Unlike Load, paths that do not exist are silently skipped:
// callers use LoadSet for optional auxiliary files, and that asymmetry with
// Load is intentional.
func LoadSet(root string, paths []string) (map[string]Document, error) {
	out := make(map[string]Document)
	for _, path := range paths {
		joined := path
		if !filepath.IsAbs(joined) {
			joined = filepath.Join(root, path)
		}
		if !Exists(joined) {
			continue
		}
		doc, err := Load(root, path)
		if err != nil {
			return nil, err
		}
		out[BaseName(path)] = doc
	}
	return out, nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// BaseName returns the file's base name with the .yml extension stripped.
func BaseName(path string) string {
	return strings.SplitN(filepath.Base(path), ".yml", 2)[0]
}
