package ops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mWalrus/conman/internal/cache"
	"github.com/mWalrus/conman/internal/mirror"
	"github.com/mWalrus/conman/internal/store"
	"github.com/mWalrus/conman/internal/vcs"
)

// Discard throws away the unsaved repository changes and rolls the metadata
// and the live system files back to the last saved state:
//
//   - a new mirror file is dropped, and its store entry with it
//   - a modified mirror file is restored from the last save, then re-applied
//     to its system location
//   - a deleted mirror file is restored, and its store entry is recovered
//     from the cache snapshot
//
// With files given, only changes belonging to those system paths are
// discarded.
func (c *Context) Discard(ctx context.Context, files []string) error {
	changes, err := c.Repo.Status(ctx)
	if err != nil {
		return err
	}

	s, err := c.readStore()
	if err != nil {
		return err
	}

	if len(files) > 0 {
		only, err := canonicalizeAll(files)
		if err != nil {
			return err
		}
		changes = narrowChanges(s, changes, only)
	}
	if len(changes) == 0 {
		c.printf("nothing to discard\n")
		return nil
	}

	summary := make([]string, 0, len(changes))
	for _, ch := range changes {
		summary = append(summary, fmt.Sprintf("%s: %s", ch.Kind, systemPathFor(s, ch.RelPath)))
	}
	ok, err := c.confirm(fmt.Sprintf("Discard these changes?\n%s", strings.Join(summary, "\n")))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := c.Repo.Reset(ctx, changes); err != nil {
		return err
	}

	snapshot, err := cache.ReadSnapshot(c.Paths.Snapshot, c.Codec)
	if err != nil {
		return err
	}

	var (
		errs    []error
		touched bool
	)
	for _, ch := range changes {
		changedStore, err := c.rollBackOne(s, snapshot, ch)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.RelPath, err))
			continue
		}
		touched = touched || changedStore
	}

	if touched {
		if err := s.Persist(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.refreshCachesForCurrentBranch(s); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		c.Log.Info("discarded changes", "count", len(changes))
		c.printf("discarded %d change(s)\n", len(changes))
	}
	return errors.Join(errs...)
}

// narrowChanges keeps only the changes whose mirror maps to one of the given
// system paths.
func narrowChanges(s *store.Store, changes []vcs.Change, only []string) []vcs.Change {
	var kept []vcs.Change
	for _, ch := range changes {
		mapped := systemPathFor(s, ch.RelPath)
		for _, path := range only {
			if mapped == path {
				kept = append(kept, ch)
				break
			}
		}
	}
	return kept
}

// rollBackOne finishes the rollback of a single change after the repository
// reset. The returned bool reports whether the store was modified.
func (c *Context) rollBackOne(s *store.Store, snapshot []store.TrackedFile, ch vcs.Change) (bool, error) {
	switch ch.Kind {
	case vcs.ChangeNew:
		// The mirror file is gone again; drop the entry that pointed at it.
		if f := s.FindWhereMirrorPathEndsWith(ch.RelPath); f != nil {
			s.Unmanage(f.SystemPath)
			return true, nil
		}
		return false, nil

	case vcs.ChangeModified:
		f := s.FindWhereMirrorPathEndsWith(ch.RelPath)
		if f == nil {
			return false, nil
		}
		passphrase, err := c.passphraseFor(*f)
		if err != nil {
			return false, err
		}
		return false, mirror.CopyToSystem(*f, passphrase)

	case vcs.ChangeDeleted:
		// The mirror file is back; recover its entry from the snapshot if
		// the store lost it.
		if s.FindWhereMirrorPathEndsWith(ch.RelPath) != nil {
			return false, nil
		}
		for _, f := range snapshot {
			if strings.HasSuffix(f.MirrorPath, ch.RelPath) {
				s.Manage(f)
				return true, nil
			}
		}
		return false, nil

	default:
		return false, fmt.Errorf("unknown change kind %d", ch.Kind)
	}
}
