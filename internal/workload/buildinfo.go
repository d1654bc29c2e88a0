package workload

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/taskgen/internal/errors"
	"github.com/felixgeelhaar/taskgen/internal/yamlfile"
)

const (
	// ExpansionsFile is the well-known expansions file inside the workspace root
	ExpansionsFile = "expansions.yml"

	// BuildVariantKey is the expansion naming the current build variant
	BuildVariantKey = "build_variant"
)

// BuildInfo wraps the expansion values of the current build.
// It is immutable after construction.
type BuildInfo struct {
	expansions yamlfile.Document
}

// LoadBuildInfo reads the expansions file from the workspace root.
func LoadBuildInfo(workspaceRoot string) (*BuildInfo, error) {
	expansions, err := yamlfile.Load(workspaceRoot, ExpansionsFile)
	if err != nil {
		return nil, err
	}
	return NewBuildInfo(expansions), nil
}

// NewBuildInfo wraps an already-parsed expansions mapping.
func NewBuildInfo(expansions yamlfile.Document) *BuildInfo {
	return &BuildInfo{expansions: expansions}
}

// Has reports whether the expansion named key holds one of acceptableValues.
// Querying a key absent from the expansions is a hard error naming the key,
// never a false negative: an unrecognized Requires key in a workload must
// surface loudly.
func (b *BuildInfo) Has(key string, acceptableValues []string) (bool, error) {
	raw, ok := b.expansions[key]
	if !ok {
		return false, errors.NewUnknownExpansionError(key, b.Keys())
	}

	actual := fmt.Sprint(raw)
	for _, acceptable := range acceptableValues {
		if actual == acceptable {
			return true, nil
		}
	}
	return false, nil
}

// Variant returns the current build variant, or "unknown" when the
// expansions do not carry one. Used for log context only.
func (b *BuildInfo) Variant() string {
	if v, ok := b.expansions[BuildVariantKey]; ok {
		return fmt.Sprint(v)
	}
	return "unknown"
}

// Keys returns the sorted expansion keys.
func (b *BuildInfo) Keys() []string {
	keys := make([]string, 0, len(b.expansions))
	for key := range b.expansions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
