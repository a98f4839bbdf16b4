// Package vcs defines the repository service conman consumes: the
// version-controlled home of the mirrored files and the operations run
// against its upstream.
//
// The metadata engine treats this as a black box. The one coupling point is
// Status: the metadata store document lives inside the repository and must
// never be reported as a tracked-file change, so implementations exclude it.
package vcs

import "context"

// ChangeKind classifies a working-tree change.
type ChangeKind int

const (
	// ChangeNew is a file not yet committed.
	ChangeNew ChangeKind = iota
	// ChangeModified is a committed file with uncommitted edits.
	ChangeModified
	// ChangeDeleted is a committed file removed from the working tree.
	ChangeDeleted
)

// String returns a human-readable representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeNew:
		return "new"
	case ChangeModified:
		return "modified"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change is a single uncommitted working-tree change. RelPath is relative to
// the repository root; the metadata store maps it back to a system path by
// mirror-path suffix.
type Change struct {
	Kind    ChangeKind
	RelPath string
}

// Repository is the version-control surface conman operates against.
type Repository interface {
	// Root returns the repository working-tree root.
	Root() string

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch() (string, error)

	// Status returns the uncommitted changes in the working tree, with the
	// metadata store document excluded. An empty slice means clean.
	Status(ctx context.Context) ([]Change, error)

	// HasUnsaved reports whether Status would return any changes.
	HasUnsaved(ctx context.Context) (bool, error)

	// Commit stages everything and commits with the given message.
	Commit(ctx context.Context, message string) error

	// Pull fast-forwards the given branch from the upstream remote.
	Pull(ctx context.Context, branch string) error

	// Push pushes the given branch to the upstream remote.
	Push(ctx context.Context, branch string) error

	// Checkout switches to the named branch, creating it if missing.
	Checkout(branch string) error

	// SetUpstream points the branch at its remote counterpart.
	SetUpstream(branch string) error

	// DeleteBranch removes the named local branch.
	DeleteBranch(name string) error

	// LocalBranches lists local branch names.
	LocalBranches() ([]string, error)

	// Reset discards the given working-tree changes: edits and deletions
	// are restored from HEAD, new files are removed from the index.
	Reset(ctx context.Context, changes []Change) error
}
