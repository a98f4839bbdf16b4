package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/mWalrus/conman/internal/vcs"
)

// Reset discards the given working-tree changes. Modified and deleted files
// are restored from HEAD; new files are dropped from the index and removed
// from the working tree. Failures on one change do not stop the rest.
func (g *Git) Reset(ctx context.Context, changes []vcs.Change) error {
	var errs []error

	for _, change := range changes {
		switch change.Kind {
		case vcs.ChangeNew:
			// Untracked or freshly staged file: unstage, then delete.
			_, _ = g.run(ctx, "rm", "--cached", "--ignore-unmatch", "--", change.RelPath)
			if err := os.Remove(filepath.Join(g.root, change.RelPath)); err != nil && !os.IsNotExist(err) {
				errs = append(errs, err)
			}

		case vcs.ChangeModified, vcs.ChangeDeleted:
			if _, err := g.run(ctx, "checkout", "HEAD", "--", change.RelPath); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}
