package repo

import (
	"context"
)

// Revision represents a specific git point-in-time (tag or hash).
type Revision string

func (r Revision) String() string { return string(r) }

// Gitter defines the interface for the git operations the publish workflow
// performs against the local repository and its remote.
type Gitter interface {
	// SetRemote guarantees the named remote resolves to url afterwards,
	// regardless of prior state. Removing a stale binding that does not
	// exist is tolerated.
	SetRemote(ctx context.Context, name, url string) error

	// SyncBranch fetches the upstream branch, rebases the local branch onto
	// it and pushes the result upstream with tracking established. A rebase
	// conflict is fatal and surfaced verbatim.
	SyncBranch(ctx context.Context, remote, branch string) error

	// ForceTag creates the tag at HEAD, overwriting any existing tag of the
	// same name.
	ForceTag(ctx context.Context, tag string) error

	// PushTagForce force-pushes the tag, overwriting the remote's reference.
	PushTagForce(ctx context.Context, remote, tag string) error

	// Head returns the commit hash the repository currently points at.
	Head(ctx context.Context) (Revision, error)
}
