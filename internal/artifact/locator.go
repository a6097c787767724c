// Package artifact locates the prebuilt archive a release attaches.
package artifact

import (
	"fmt"
	"os"
	"strings"
)

// MissingAssetError indicates the artifact has not been built. Its message
// enumerates the exact commands needed to produce it.
type MissingAssetError struct {
	Path      string
	BuildHint []string
}

func (e *MissingAssetError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "release asset not found: %s\n", e.Path)
	b.WriteString("Build it first:")
	if len(e.BuildHint) == 0 {
		fmt.Fprintf(&b, "\n  run your build and place the archive at %s", e.Path)
		return b.String()
	}
	for _, line := range e.BuildHint {
		fmt.Fprintf(&b, "\n  %s", line)
	}
	return b.String()
}

// Locator is a pre-flight gate for the release artifact. There is no search
// path and no fallback location: the artifact either exists at the configured
// path or the run aborts.
type Locator struct {
	buildHint []string
}

// NewLocator creates a Locator. buildHint lines are included in the
// diagnostic when the artifact is missing.
func NewLocator(buildHint []string) *Locator {
	return &Locator{buildHint: buildHint}
}

// Locate verifies a regular file exists at path.
func (l *Locator) Locate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &MissingAssetError{Path: path, BuildHint: l.buildHint}
		}
		return fmt.Errorf("could not stat release asset %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("release asset %s is a directory, expected a file", path)
	}
	return nil
}
