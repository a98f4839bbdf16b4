package vcs

import "errors"

// Common errors returned by repository operations. Check with errors.Is.
var (
	// ErrNotARepo is returned when the mirror repository does not exist at
	// its expected location, typically before `conman init` has run.
	ErrNotARepo = errors.New("mirror repository not found")

	// ErrDirty is returned when an operation requires a clean working tree
	// but there are unsaved changes.
	ErrDirty = errors.New("repository has unsaved changes")

	// ErrRefNotFound is returned when the named branch does not exist.
	ErrRefNotFound = errors.New("branch not found")
)
