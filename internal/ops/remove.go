package ops

import (
	"errors"

	"github.com/mWalrus/conman/internal/mirror"
)

// Remove stops tracking the given files: the store entry and the mirrored
// copy go away, the live system file stays. Removing an untracked path is a
// benign no-op.
func (c *Context) Remove(files []string) error {
	if len(files) == 0 {
		return errors.New("no files given")
	}

	s, err := c.readStore()
	if err != nil {
		return err
	}

	var (
		errs    []error
		removed int
	)
	for _, path := range files {
		systemPath, err := canonicalize(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		entry := s.Unmanage(systemPath)
		if entry == nil {
			c.Log.Debug("not tracked, nothing to remove", "path", systemPath)
			continue
		}

		if err := mirror.RemoveMirror(*entry); err != nil {
			errs = append(errs, err)
			continue
		}

		removed++
		c.Log.Info("stopped tracking file", "path", systemPath)
		c.printf("no longer tracking %s\n", systemPath)
	}

	if removed > 0 {
		if err := s.Persist(); err != nil {
			errs = append(errs, err)
		} else if err := c.refreshCachesForCurrentBranch(s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
