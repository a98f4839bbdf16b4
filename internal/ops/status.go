package ops

import (
	"context"

	"github.com/mWalrus/conman/internal/ui"
	"github.com/mWalrus/conman/internal/vcs"
)

// Status prints the unsaved repository changes, mapped back to the system
// paths they mirror.
func (c *Context) Status(ctx context.Context) error {
	changes, err := c.Repo.Status(ctx)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		c.printf("%s\n", ui.Good.Render("everything saved"))
		return nil
	}

	s, err := c.readStore()
	if err != nil {
		return err
	}

	c.printf("%s\n", ui.Underline.Render("unsaved changes"))
	for _, ch := range changes {
		var style = ui.Warn
		switch ch.Kind {
		case vcs.ChangeNew:
			style = ui.Good
		case vcs.ChangeDeleted:
			style = ui.Bad
		}
		c.printf("  %s %s\n", style.Render(ch.Kind.String()+":"), c.Codec.Encode(systemPathFor(s, ch.RelPath)))
	}
	return nil
}
