package ops

import (
	"errors"
	"fmt"
	"os"

	"github.com/mWalrus/conman/internal/mirror"
	"github.com/mWalrus/conman/internal/store"
)

// Add starts tracking the given files. Each file is copied into the mirror
// repository under a fresh timestamped name; with encrypted set the mirrored
// copy is encrypted at rest. Already-managed paths are skipped silently.
func (c *Context) Add(files []string, encrypted bool) error {
	if len(files) == 0 {
		return errors.New("no files given")
	}

	s, err := c.readStore()
	if err != nil {
		return err
	}

	var (
		errs  []error
		added int
	)
	for _, path := range files {
		systemPath, err := canonicalize(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if s.IsManaged(systemPath) {
			c.Log.Debug("already managed, skipping", "path", systemPath)
			continue
		}

		if _, err := os.Stat(systemPath); err != nil {
			errs = append(errs, fmt.Errorf("cannot track %s: %w", systemPath, err))
			continue
		}

		file := store.TrackedFile{
			SystemPath: systemPath,
			MirrorPath: c.Paths.MirrorPathFor(systemPath),
			Encrypted:  encrypted,
		}

		passphrase, err := c.passphraseFor(file)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", systemPath, err))
			continue
		}
		if err := mirror.CopyToMirror(file, passphrase); err != nil {
			errs = append(errs, err)
			continue
		}

		s.Manage(file)
		added++
		c.Log.Info("tracking new file", "path", systemPath, "encrypted", encrypted)
		c.printf("now tracking %s\n", systemPath)
	}

	if added > 0 {
		if err := s.Persist(); err != nil {
			errs = append(errs, err)
		} else if err := c.refreshCachesForCurrentBranch(s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
