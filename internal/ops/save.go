package ops

import (
	"context"
	"fmt"
	"strings"
)

// Save commits all uncommitted repository changes. The commit message lists
// every change by kind and system path, so the upstream history reads in
// terms of the user's files rather than mirror names.
func (c *Context) Save(ctx context.Context) error {
	changes, err := c.Repo.Status(ctx)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		c.printf("nothing to save\n")
		return nil
	}

	s, err := c.readStore()
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("system-update: updating files\n\n")
	for _, ch := range changes {
		fmt.Fprintf(&sb, "%s: %s\n", ch.Kind, c.Codec.Encode(systemPathFor(s, ch.RelPath)))
	}

	if err := c.Repo.Commit(ctx, sb.String()); err != nil {
		return err
	}
	c.Log.Info("saved changes", "count", len(changes))
	c.printf("saved %d change(s)\n", len(changes))
	return nil
}
