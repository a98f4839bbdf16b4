// Package git implements the repository service with the git binary.
//
// All operations shell out to git with the repository as the working
// directory; failures carry the captured command output so the user sees
// what git itself complained about.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mWalrus/conman/internal/paths"
	"github.com/mWalrus/conman/internal/vcs"
)

// Git implements vcs.Repository for a git working tree.
type Git struct {
	root string

	// sshKey, when set, is injected via GIT_SSH_COMMAND for remote
	// operations.
	sshKey string
}

// Open returns a Git for the repository at root. Returns vcs.ErrNotARepo
// when no repository exists there.
func Open(root, sshKey string) (*Git, error) {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = root

	if err := cmd.Run(); err != nil {
		return nil, vcs.ErrNotARepo
	}

	return &Git{root: root, sshKey: sshKey}, nil
}

// Clone clones url into root and opens the result. When the repository
// already exists on disk the clone is skipped.
func Clone(ctx context.Context, url, root, sshKey string) (*Git, error) {
	if _, err := os.Stat(root); err == nil {
		return Open(root, sshKey)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", url, root)
	cmd.Env = sshEnv(sshKey)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("git clone failed: %w\n%s", err, string(output))
	}

	return Open(root, sshKey)
}

// Root returns the repository working-tree root.
func (g *Git) Root() string {
	return g.root
}

// run executes a git command in the repository, returning stdout.
func (g *Git) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.root
	cmd.Env = sshEnv(g.sshKey)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\n%s",
			strings.Join(args, " "), err, string(output))
	}
	return output, nil
}

// sshEnv builds the process environment, pointing git at the configured
// ssh key when one is set.
func sshEnv(sshKey string) []string {
	env := os.Environ()
	if sshKey != "" {
		env = append(env, fmt.Sprintf("GIT_SSH_COMMAND=ssh -i %s -o IdentitiesOnly=yes", sshKey))
	}
	return env
}

// CurrentBranch returns the checked-out branch name.
func (g *Git) CurrentBranch() (string, error) {
	output, err := g.run(context.Background(), "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// Status returns uncommitted working-tree changes, excluding the metadata
// store document so it is never mistaken for a tracked-file change.
func (g *Git) Status(ctx context.Context) ([]vcs.Change, error) {
	output, err := g.run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}

	var changes []vcs.Change
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if len(line) < 4 {
			continue
		}

		// Porcelain format: XY <path>
		code := line[:2]
		relPath := strings.TrimSpace(line[3:])

		if relPath == paths.MetadataFileName {
			continue
		}

		kind, ok := parseChangeKind(code)
		if !ok {
			continue
		}

		changes = append(changes, vcs.Change{Kind: kind, RelPath: relPath})
	}

	return changes, nil
}

// parseChangeKind maps a porcelain XY status code to a change kind.
func parseChangeKind(code string) (vcs.ChangeKind, bool) {
	switch {
	case strings.Contains(code, "?") || strings.Contains(code, "A"):
		return vcs.ChangeNew, true
	case strings.Contains(code, "D"):
		return vcs.ChangeDeleted, true
	case strings.Contains(code, "M"):
		return vcs.ChangeModified, true
	default:
		return 0, false
	}
}

// HasUnsaved reports whether there are uncommitted changes.
func (g *Git) HasUnsaved(ctx context.Context) (bool, error) {
	changes, err := g.Status(ctx)
	if err != nil {
		return false, err
	}
	return len(changes) > 0, nil
}

// Commit stages all changes and commits them with the given message.
func (g *Git) Commit(ctx context.Context, message string) error {
	if message == "" {
		return fmt.Errorf("commit message is required")
	}

	if _, err := g.run(ctx, "add", "--all"); err != nil {
		return err
	}
	if _, err := g.run(ctx, "commit", "-m", message); err != nil {
		return err
	}
	return nil
}
