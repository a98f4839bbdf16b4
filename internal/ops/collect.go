package ops

import (
	"errors"
	"fmt"

	"github.com/mWalrus/conman/internal/mirror"
	"github.com/mWalrus/conman/internal/store"
)

// Collect refreshes the mirrored copies of tracked files whose system copy
// has changed. With files given, the batch is narrowed to those paths.
// Every file is attempted; failures are joined and returned together.
func (c *Context) Collect(files []string) error {
	s, err := c.readStore()
	if err != nil {
		return err
	}
	if len(s.Files) == 0 {
		return ErrNothingTracked
	}

	if len(files) > 0 {
		keep, err := canonicalizeAll(files)
		if err != nil {
			return err
		}
		s.Retain(keep)
	}

	var (
		errs      []error
		collected int
	)
	for _, f := range s.Files {
		changed, err := mirror.SourceChangedSinceMirror(f.SystemPath, f.MirrorPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !changed {
			c.Log.Debug("mirror up to date", "path", f.SystemPath)
			continue
		}

		ok, err := c.confirm(fmt.Sprintf("%s changed since it was last collected. Update the mirror?", f.SystemPath))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}

		if err := c.collectOne(f); err != nil {
			errs = append(errs, err)
			continue
		}
		collected++
		c.printf("collected %s\n", f.SystemPath)
	}

	if collected == 0 && len(errs) == 0 {
		c.printf("everything up to date\n")
	}
	return errors.Join(errs...)
}

// collectOne copies one tracked file's system content into its mirror.
func (c *Context) collectOne(f store.TrackedFile) error {
	passphrase, err := c.passphraseFor(f)
	if err != nil {
		return fmt.Errorf("%s: %w", f.SystemPath, err)
	}
	if err := mirror.CopyToMirror(f, passphrase); err != nil {
		return err
	}
	c.Log.Info("collected file into mirror", "path", f.SystemPath)
	return nil
}

func canonicalizeAll(files []string) ([]string, error) {
	out := make([]string, 0, len(files))
	for _, f := range files {
		p, err := canonicalize(f)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
