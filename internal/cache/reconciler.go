// Package cache detects drift between the metadata store and the snapshot of
// it written at the end of the previous run.
//
// The snapshot captures "what we expected to be tracked". Comparing it
// against the live store distinguishes files that were legitimately removed
// from files orphaned by a branch switch: the store no longer lists them,
// but they still exist on the user's filesystem. Resolution of such dangling
// entries is interactive and belongs to the ops layer; this package only
// produces the verdict.
package cache

import (
	"github.com/mWalrus/conman/internal/pathenc"
	"github.com/mWalrus/conman/internal/store"
)

// VerdictKind is the outcome of comparing store against snapshot.
type VerdictKind int

const (
	// DoNothing means store and snapshot agree.
	DoNothing VerdictKind = iota
	// FullPopulate means the snapshot was empty while the store is not:
	// first run, or the cache was cleared. The snapshot just needs writing.
	FullPopulate
	// HandleDangling means the snapshot lists files the store no longer
	// tracks; each needs per-file user resolution.
	HandleDangling
)

// String returns a human-readable representation of the verdict kind.
func (k VerdictKind) String() string {
	switch k {
	case DoNothing:
		return "do-nothing"
	case FullPopulate:
		return "full-populate"
	case HandleDangling:
		return "handle-dangling"
	default:
		return "unknown"
	}
}

// Verdict describes what changed since the last run. It is transient and
// never persisted.
type Verdict struct {
	Kind VerdictKind

	// Dangling holds the snapshot entries absent from the store, in
	// snapshot order. Only set for HandleDangling.
	Dangling []store.TrackedFile
}

// ReadSnapshot loads the cache snapshot document. The snapshot shares the
// store's document shape, so a missing file reads as empty and a malformed
// one fails with store.ErrParse.
func ReadSnapshot(path string, codec *pathenc.Codec) ([]store.TrackedFile, error) {
	s, err := store.Read(path, codec)
	if err != nil {
		return nil, err
	}
	return s.Files, nil
}

// WriteSnapshot rewrites the snapshot document from the current store,
// making the two converge regardless of how the previous verdict was
// resolved.
func WriteSnapshot(path string, s *store.Store, codec *pathenc.Codec) error {
	return store.WriteDocument(path, s.Files, codec)
}

// Reconcile compares the live store against the snapshot and returns the
// verdict. The comparison is deterministic: the same inputs always yield the
// same kind and the same dangling set, in snapshot order.
func Reconcile(s *store.Store, snapshot []store.TrackedFile) Verdict {
	if len(snapshot) == 0 {
		if len(s.Files) == 0 {
			return Verdict{Kind: DoNothing}
		}
		return Verdict{Kind: FullPopulate}
	}

	var dangling []store.TrackedFile
	for _, f := range snapshot {
		if !s.IsManaged(f.SystemPath) {
			dangling = append(dangling, f)
		}
	}

	if len(dangling) == 0 {
		return Verdict{Kind: DoNothing}
	}
	return Verdict{Kind: HandleDangling, Dangling: dangling}
}
