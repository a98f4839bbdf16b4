package ops

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mWalrus/conman/internal/config"
	"github.com/mWalrus/conman/internal/logging"
	"github.com/mWalrus/conman/internal/pathenc"
	"github.com/mWalrus/conman/internal/paths"
	"github.com/mWalrus/conman/internal/vcs"
)

// fakeRepo is a scripted vcs.Repository. Tests preload its fields and assert
// on the recorded calls.
type fakeRepo struct {
	root    string
	branch  string
	changes []vcs.Change

	branches []string

	commits    []string
	pulls      []string
	pushes     []string
	checkouts  []string
	upstreams  []string
	deletions  []string
	resetCalls [][]vcs.Change
}

func (r *fakeRepo) Root() string                    { return r.root }
func (r *fakeRepo) CurrentBranch() (string, error)  { return r.branch, nil }
func (r *fakeRepo) LocalBranches() ([]string, error) { return r.branches, nil }

func (r *fakeRepo) Status(context.Context) ([]vcs.Change, error) {
	return r.changes, nil
}

func (r *fakeRepo) HasUnsaved(context.Context) (bool, error) {
	return len(r.changes) > 0, nil
}

func (r *fakeRepo) Commit(_ context.Context, message string) error {
	r.commits = append(r.commits, message)
	r.changes = nil
	return nil
}

func (r *fakeRepo) Pull(_ context.Context, branch string) error {
	r.pulls = append(r.pulls, branch)
	return nil
}

func (r *fakeRepo) Push(_ context.Context, branch string) error {
	r.pushes = append(r.pushes, branch)
	return nil
}

func (r *fakeRepo) Checkout(branch string) error {
	r.checkouts = append(r.checkouts, branch)
	r.branch = branch
	return nil
}

func (r *fakeRepo) SetUpstream(branch string) error {
	r.upstreams = append(r.upstreams, branch)
	return nil
}

func (r *fakeRepo) DeleteBranch(name string) error {
	r.deletions = append(r.deletions, name)
	return nil
}

func (r *fakeRepo) Reset(_ context.Context, changes []vcs.Change) error {
	r.resetCalls = append(r.resetCalls, changes)
	r.changes = nil
	return nil
}

// fakeOracle answers prompts from preloaded scripts, in order.
type fakeOracle struct {
	t *testing.T

	confirms []bool
	choices  []string
	selects  []int
}

func (o *fakeOracle) Confirm(string) (bool, error) {
	if len(o.confirms) == 0 {
		o.t.Fatal("unexpected Confirm call")
	}
	answer := o.confirms[0]
	o.confirms = o.confirms[1:]
	return answer, nil
}

func (o *fakeOracle) Choose(_ string, options []string) (string, error) {
	if len(o.choices) == 0 {
		o.t.Fatal("unexpected Choose call")
	}
	choice := o.choices[0]
	o.choices = o.choices[1:]
	for _, opt := range options {
		if opt == choice {
			return choice, nil
		}
	}
	return "", fmt.Errorf("scripted choice %q not offered", choice)
}

func (o *fakeOracle) FuzzySelect(_ string, items []string) (int, error) {
	if len(o.selects) == 0 {
		o.t.Fatal("unexpected FuzzySelect call")
	}
	idx := o.selects[0]
	o.selects = o.selects[1:]
	if idx >= len(items) {
		return 0, fmt.Errorf("scripted index %d out of range", idx)
	}
	return idx, nil
}

// testContext builds a Context over temp directories with a fake repo and
// oracle. The fake repo's working tree is the real repo directory under the
// data dir, so mirror files land where the store expects them.
func testContext(t *testing.T) (*Context, *fakeRepo, *fakeOracle) {
	t.Helper()

	dataDir := t.TempDir()
	configDir := t.TempDir()
	p := paths.NewAt(dataDir, configDir)
	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	if err := os.MkdirAll(p.Repo, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cfgContent := "[upstream]\nurl = \"git@example.com:user/configs.git\"\nbranch = \"main\"\n"
	if err := os.WriteFile(p.ConfigFile(), []byte(cfgContent), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := config.Read(p.ConfigFile())
	if err != nil {
		t.Fatalf("config.Read: %v", err)
	}

	repo := &fakeRepo{root: p.Repo, branch: "main", branches: []string{"main"}}
	oracle := &fakeOracle{t: t}

	c := &Context{
		Config: cfg,
		Paths:  p,
		Codec:  pathenc.NewWithHome(t.TempDir()),
		Repo:   repo,
		Oracle: oracle,
		Log:    logging.Discard(),
		Out:    io.Discard,
	}
	return c, repo, oracle
}

// writeSystemFile creates a file to track and returns its canonical path.
func writeSystemFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	canonical, err := canonicalize(path)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	return canonical
}
