package ops

import (
	"context"
	"fmt"

	"github.com/mWalrus/conman/internal/ui"
)

// CheckoutBranch switches the repository to the named branch, creating it if
// missing, records it in the config and reconciles the tracked set against
// what the new branch carries. Unsaved changes block the switch.
func (c *Context) CheckoutBranch(ctx context.Context, name string) error {
	unsaved, err := c.Repo.HasUnsaved(ctx)
	if err != nil {
		return err
	}
	if unsaved {
		return ErrUnsavedChanges
	}

	if err := c.Repo.Checkout(name); err != nil {
		return err
	}
	if err := c.Repo.SetUpstream(name); err != nil {
		return err
	}

	c.Config.Upstream.Branch = name
	if err := c.Config.Write(); err != nil {
		return err
	}
	c.Log.Info("switched branch", "branch", name)
	c.printf("switched to %s\n", name)

	// The new branch may track a different set of files; resolve the
	// difference right away instead of on the next command.
	return c.Verify(ctx)
}

// ListBranches prints the local branches, marking the active one.
func (c *Context) ListBranches() error {
	branches, err := c.Repo.LocalBranches()
	if err != nil {
		return err
	}
	current, err := c.Repo.CurrentBranch()
	if err != nil {
		return err
	}

	for _, b := range branches {
		if b == current {
			c.printf("%s\n", ui.Accent.Render("* "+b))
		} else {
			c.printf("  %s\n", b)
		}
	}
	return nil
}

// CurrentBranch prints the active branch.
func (c *Context) CurrentBranch() error {
	current, err := c.Repo.CurrentBranch()
	if err != nil {
		return err
	}
	c.printf("%s\n", current)
	return nil
}

// DeleteBranch removes a local branch after confirmation. The active branch
// cannot be deleted.
func (c *Context) DeleteBranch(name string) error {
	current, err := c.Repo.CurrentBranch()
	if err != nil {
		return err
	}
	if name == current {
		return fmt.Errorf("cannot delete the active branch %s", name)
	}

	ok, err := c.confirm(fmt.Sprintf("Delete branch %s? Files only tracked there are lost.", name))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := c.Repo.DeleteBranch(name); err != nil {
		return err
	}
	c.Log.Info("deleted branch", "branch", name)
	c.printf("deleted %s\n", name)
	return nil
}
