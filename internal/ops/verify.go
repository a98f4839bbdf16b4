package ops

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mWalrus/conman/internal/cache"
	"github.com/mWalrus/conman/internal/mirror"
	"github.com/mWalrus/conman/internal/store"
)

// Dangling-entry resolutions offered to the user, in the order they are
// presented.
const (
	resolveSkip   = "skip (leave the file alone)"
	resolveDelete = "delete (remove it from the system)"
	resolveManage = "manage (track it on this branch too)"
)

// Verify reconciles the metadata store against the cache snapshot and
// resolves any dangling entries interactively. It runs before every other
// operation so commands always see a consistent view; operations that later
// change the tracked set rewrite the caches themselves via refreshCaches.
func (c *Context) Verify(ctx context.Context) error {
	if err := c.alignBranch(); err != nil {
		return err
	}

	s, err := c.readStore()
	if err != nil {
		return err
	}

	branch, err := c.Repo.CurrentBranch()
	if err != nil {
		return err
	}

	// Cheap precheck: when the branch cache matches the active branch and
	// every recorded file is still tracked, the expensive snapshot walk and
	// any prompting can be skipped.
	bc, err := cache.ReadBranchCache(c.Paths.BranchCache)
	if err != nil {
		return err
	}
	if !bc.IsEmpty() && bc.Branch == branch && !bc.HasChanges(s) {
		c.Log.Debug("branch cache clean, skipping reconciliation", "branch", branch)
		return nil
	}

	snapshot, err := cache.ReadSnapshot(c.Paths.Snapshot, c.Codec)
	if err != nil {
		return err
	}

	verdict := cache.Reconcile(s, snapshot)
	c.Log.Debug("reconciled store against snapshot",
		"verdict", verdict.Kind.String(),
		"tracked", len(s.Files),
		"dangling", len(verdict.Dangling))

	switch verdict.Kind {
	case cache.DoNothing, cache.FullPopulate:
		// Nothing to resolve; converge the caches and move on.
	case cache.HandleDangling:
		if err := c.resolveDangling(s, verdict.Dangling); err != nil {
			return err
		}
	}

	return c.refreshCaches(s, branch)
}

// alignBranch checks the repository out on the configured branch when the two
// disagree, e.g. after the branch was switched by hand.
func (c *Context) alignBranch() error {
	branch, err := c.Repo.CurrentBranch()
	if err != nil {
		return err
	}
	if branch == c.Config.Upstream.Branch {
		return nil
	}

	c.Log.Info("repository branch differs from config, checking out",
		"have", branch, "want", c.Config.Upstream.Branch)
	if err := c.Repo.Checkout(c.Config.Upstream.Branch); err != nil {
		return fmt.Errorf("failed to align repository with configured branch: %w", err)
	}
	return nil
}

// resolveDangling asks the user what to do with each file the snapshot still
// lists but the store no longer tracks. Resolution continues through failures
// and returns them joined.
func (c *Context) resolveDangling(s *store.Store, dangling []store.TrackedFile) error {
	var errs []error
	for _, f := range dangling {
		if err := c.resolveOne(s, f); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.SystemPath, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Context) resolveOne(s *store.Store, f store.TrackedFile) error {
	if _, err := os.Stat(f.SystemPath); os.IsNotExist(err) {
		// Nothing left on the system either; it just drops out of the
		// snapshot on the next write.
		c.Log.Debug("dangling entry has no live file, dropping", "path", f.SystemPath)
		return nil
	}

	choice, err := c.Oracle.Choose(
		fmt.Sprintf("%s is no longer tracked on this branch. What should happen to it?", f.SystemPath),
		[]string{resolveSkip, resolveDelete, resolveManage},
	)
	if err != nil {
		return err
	}

	switch choice {
	case resolveSkip:
		c.Log.Debug("dangling entry skipped", "path", f.SystemPath)
		return nil

	case resolveDelete:
		if err := os.Remove(f.SystemPath); err != nil {
			return fmt.Errorf("failed to delete %s: %w", f.SystemPath, err)
		}
		c.Log.Info("deleted dangling file", "path", f.SystemPath)
		return nil

	case resolveManage:
		// The old mirror file belongs to another branch; the entry gets a
		// fresh mirror location here.
		f.MirrorPath = c.Paths.MirrorPathFor(f.SystemPath)
		passphrase, err := c.passphraseFor(f)
		if err != nil {
			return err
		}
		if err := mirror.CopyToMirror(f, passphrase); err != nil {
			return err
		}
		s.Manage(f)
		if err := s.Persist(); err != nil {
			return err
		}
		c.Log.Info("re-managed dangling file", "path", f.SystemPath)
		return nil

	default:
		return fmt.Errorf("unknown resolution %q", choice)
	}
}

// refreshCaches rewrites the snapshot and the branch cache from the current
// store. Every operation that changes the tracked set ends with this, which
// is what makes the reconciliation converge.
func (c *Context) refreshCaches(s *store.Store, branch string) error {
	if err := cache.WriteSnapshot(c.Paths.Snapshot, s, c.Codec); err != nil {
		return err
	}

	bc := &cache.BranchCache{}
	bc.Update(branch, c.Repo.Root(), s)
	return bc.Write(c.Paths.BranchCache)
}

// refreshCachesForCurrentBranch is refreshCaches with the branch looked up.
func (c *Context) refreshCachesForCurrentBranch(s *store.Store) error {
	branch, err := c.Repo.CurrentBranch()
	if err != nil {
		return err
	}
	return c.refreshCaches(s, branch)
}
