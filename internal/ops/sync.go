package ops

import "context"

// Pull fast-forwards the configured branch from upstream. Unsaved changes
// block the pull so they cannot be clobbered by the merge.
func (c *Context) Pull(ctx context.Context) error {
	unsaved, err := c.Repo.HasUnsaved(ctx)
	if err != nil {
		return err
	}
	if unsaved {
		return ErrUnsavedChanges
	}

	branch := c.Config.Upstream.Branch
	if err := c.Repo.Pull(ctx, branch); err != nil {
		return err
	}
	c.Log.Info("pulled from upstream", "branch", branch)
	c.printf("pulled %s\n", branch)
	return nil
}

// Push publishes the configured branch to upstream. Unsaved changes block the
// push; they would silently be left behind otherwise.
func (c *Context) Push(ctx context.Context) error {
	unsaved, err := c.Repo.HasUnsaved(ctx)
	if err != nil {
		return err
	}
	if unsaved {
		return ErrUnsavedChanges
	}

	branch := c.Config.Upstream.Branch
	if err := c.Repo.Push(ctx, branch); err != nil {
		return err
	}
	c.Log.Info("pushed to upstream", "branch", branch)
	c.printf("pushed %s\n", branch)
	return nil
}
