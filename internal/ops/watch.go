package ops

import (
	"context"

	"github.com/mWalrus/conman/internal/mirror"
	"github.com/mWalrus/conman/internal/watch"
)

// Watch runs until ctx is cancelled, collecting tracked files into the
// mirror as they change on the system. Deletions are only logged; removing a
// tracked file stays an explicit `conman remove`.
func (c *Context) Watch(ctx context.Context) error {
	s, err := c.readStore()
	if err != nil {
		return err
	}
	if len(s.Files) == 0 {
		return ErrNothingTracked
	}

	w, err := watch.New(s.Files)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	c.Log.Info("watching tracked files", "count", len(s.Files))
	c.printf("watching %d file(s), press ctrl-c to stop\n", len(s.Files))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-w.Events():
			switch ev.Op {
			case watch.OpModify:
				changed, err := mirror.SourceChangedSinceMirror(ev.File.SystemPath, ev.File.MirrorPath)
				if err != nil {
					c.Log.Warn("drift check failed", "path", ev.File.SystemPath, "error", err)
					continue
				}
				if !changed {
					continue
				}
				if err := c.collectOne(ev.File); err != nil {
					c.Log.Warn("collect failed", "path", ev.File.SystemPath, "error", err)
					continue
				}
				c.printf("collected %s\n", ev.File.SystemPath)

			case watch.OpDelete:
				c.Log.Warn("tracked file removed from system", "path", ev.File.SystemPath)
			}

		case err := <-w.Errors():
			c.Log.Warn("watcher error", "error", err)
		}
	}
}
