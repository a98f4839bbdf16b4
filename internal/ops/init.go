package ops

import (
	"context"
	"fmt"
)

// CloneFunc clones the upstream repository to root, authenticating with the
// optional SSH key file.
type CloneFunc func(ctx context.Context, url, root, keyFile string) error

// Init sets up the local state from scratch: creates the data and config
// directories and clones the configured upstream into the data directory.
// Running it again over an existing clone is harmless.
func (c *Context) Init(ctx context.Context, clone CloneFunc) error {
	if err := c.Paths.EnsureDirs(); err != nil {
		return err
	}

	up := c.Config.Upstream
	if err := clone(ctx, up.URL, c.Paths.Repo, up.KeyFile); err != nil {
		return fmt.Errorf("failed to clone %s: %w", up.URL, err)
	}

	c.Log.Info("initialized", "upstream", up.URL, "branch", up.Branch)
	c.printf("initialized from %s\n", up.URL)
	return nil
}
