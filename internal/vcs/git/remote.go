package git

import (
	"context"
)

// Pull fast-forwards the given branch from origin. Divergent histories fail
// rather than auto-merge; conman's model is a single user on a single
// upstream, so a failed fast-forward means something external happened.
func (g *Git) Pull(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "pull", "--ff-only", "origin", branch)
	return err
}

// Push pushes the given branch to origin, setting the upstream so later
// pulls and status checks track it.
func (g *Git) Push(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "push", "--set-upstream", "origin", branch)
	return err
}
