package ops

import (
	"context"
	"errors"
	"fmt"

	"github.com/mWalrus/conman/internal/mirror"
)

// Apply writes the mirrored copies back out to their system locations,
// overwriting whatever is there. It refuses to run over unsaved repository
// changes so a half-edited mirror never lands on the system. With files
// given, the batch is narrowed to those paths.
func (c *Context) Apply(ctx context.Context, files []string) error {
	unsaved, err := c.Repo.HasUnsaved(ctx)
	if err != nil {
		return err
	}
	if unsaved {
		return ErrUnsavedChanges
	}

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

	var errs []error
	for _, f := range s.Files {
		ok, err := c.confirm(fmt.Sprintf("Overwrite %s with the mirrored copy?", f.SystemPath))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}

		passphrase, err := c.passphraseFor(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.SystemPath, err))
			continue
		}
		if err := mirror.CopyToSystem(f, passphrase); err != nil {
			errs = append(errs, err)
			continue
		}
		c.Log.Info("applied mirrored file to system", "path", f.SystemPath)
		c.printf("applied %s\n", f.SystemPath)
	}

	return errors.Join(errs...)
}
