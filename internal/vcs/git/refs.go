package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/mWalrus/conman/internal/vcs"
)

// Checkout switches to the named branch, creating it if it does not exist
// yet. Branch switches are how tracked-file sets diverge; the cache
// reconciler picks up the pieces on the next run.
func (g *Git) Checkout(branch string) error {
	ctx := context.Background()

	if g.branchExists(branch) {
		_, err := g.run(ctx, "checkout", branch)
		return err
	}

	_, err := g.run(ctx, "checkout", "-b", branch)
	return err
}

// SetUpstream points the branch at its counterpart on origin. A missing
// remote branch is not an error; the upstream is set on the first push
// instead.
func (g *Git) SetUpstream(branch string) error {
	_, err := g.run(context.Background(), "branch",
		"--set-upstream-to", fmt.Sprintf("origin/%s", branch), branch)
	if err != nil {
		// The remote branch may not exist yet.
		return nil
	}
	return nil
}

// DeleteBranch removes the named local branch.
func (g *Git) DeleteBranch(name string) error {
	if !g.branchExists(name) {
		return fmt.Errorf("%w: %s", vcs.ErrRefNotFound, name)
	}

	_, err := g.run(context.Background(), "branch", "-D", name)
	return err
}

// LocalBranches lists local branch names.
func (g *Git) LocalBranches() ([]string, error) {
	output, err := g.run(context.Background(),
		"for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// branchExists reports whether a local branch with the given name exists.
func (g *Git) branchExists(name string) bool {
	_, err := g.run(context.Background(), "show-ref", "--verify", "--quiet",
		fmt.Sprintf("refs/heads/%s", name))
	return err == nil
}
