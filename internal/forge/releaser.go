// Package forge talks to the release-hosting side of a git forge.
package forge

import (
	"context"
	"fmt"
)

// Release describes a hosted, user-facing release bound to a tag.
type Release struct {
	TagName string
	Title   string
	Notes   string
	Assets  []Asset
}

// Asset describes a downloadable file attached to a release.
type Asset struct {
	Name string
	Size int64
	URL  string
}

// Releaser defines the interface for release-hosting operations.
type Releaser interface {
	// Available reports whether the release tool can be used at all. It is
	// called before any remote-mutating action so a missing tool fails the
	// run without side effects.
	Available() error

	// View fetches the hosted release for the tag. A missing release is
	// reported as *ReleaseNotFoundError.
	View(ctx context.Context, tag string) (*Release, error)

	// Delete removes the hosted release for the tag, leaving the tag itself
	// in place. A missing release is reported as *ReleaseNotFoundError.
	Delete(ctx context.Context, tag string) error

	// Create publishes a new release for rel.TagName with one attached
	// asset file.
	Create(ctx context.Context, rel Release, assetPath string) error
}

// ToolMissingError indicates the release CLI is not installed.
type ToolMissingError struct {
	Tool string
	Hint string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("release tool '%s' not found on PATH. Install it from %s", e.Tool, e.Hint)
}

// ReleaseNotFoundError indicates no hosted release exists for the tag.
type ReleaseNotFoundError struct {
	Tag string
}

func (e *ReleaseNotFoundError) Error() string {
	return fmt.Sprintf("no release found for tag '%s'", e.Tag)
}
