package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mWalrus/conman/internal/config"
	"github.com/mWalrus/conman/internal/history"
	"github.com/mWalrus/conman/internal/logging"
	"github.com/mWalrus/conman/internal/ops"
	"github.com/mWalrus/conman/internal/pathenc"
	"github.com/mWalrus/conman/internal/paths"
	"github.com/mWalrus/conman/internal/ui"
	"github.com/mWalrus/conman/internal/vcs/git"
)

// setup builds the operation context for a command invocation. With openRepo
// unset the repository is left nil; only init, which creates it, runs that
// way.
func setup(openRepo bool) (*ops.Context, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	if err := p.EnsureDirs(); err != nil {
		return nil, err
	}

	cfg, err := config.Read(p.ConfigFile())
	if err != nil {
		return nil, fmt.Errorf("%w\n\ncreate %s with at least:\n\n  [upstream]\n  url = \"git@github.com:you/configs.git\"",
			err, p.ConfigFile())
	}

	codec, err := pathenc.New()
	if err != nil {
		return nil, err
	}

	c := &ops.Context{
		Config:    cfg,
		Paths:     p,
		Codec:     codec,
		Oracle:    ui.Terminal{},
		Log:       logging.Setup(p.LogFile(), flagVerbose),
		AssumeYes: flagNoConfirm,
		PassphraseFunc: func() (string, error) {
			return ui.ReadPassphrase("encryption passphrase")
		},
	}

	if openRepo {
		repo, err := git.Open(p.Repo, cfg.Upstream.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w\n\nrun `conman init` first", err)
		}
		c.Repo = repo
	}

	return c, nil
}

// runOp is the shared command body: build the context, reconcile the caches,
// run the operation and record the invocation in the history database.
func runOp(cmd *cobra.Command, args []string, fn func(c *ops.Context) error) error {
	return runOpWith(cmd, args, true, true, fn)
}

func runOpWith(cmd *cobra.Command, args []string, openRepo, verify bool, fn func(c *ops.Context) error) error {
	c, err := setup(openRepo)
	if err != nil {
		return err
	}

	start := time.Now()
	if verify {
		if err := c.Verify(cmd.Context()); err != nil {
			return err
		}
	}
	opErr := fn(c)
	recordHistory(c, cmd.Name(), args, opErr, time.Since(start))
	return opErr
}

// recordHistory appends the invocation to the history database. Failures
// here only get logged; they never fail the command.
func recordHistory(c *ops.Context, name string, args []string, opErr error, elapsed time.Duration) {
	db, err := history.Open(c.Paths.HistoryDB())
	if err != nil {
		c.Log.Warn("failed to open history database", "error", err)
		return
	}
	defer db.Close()

	outcome := "ok"
	if opErr != nil {
		outcome = opErr.Error()
	}
	if err := db.Record(name, args, outcome, elapsed); err != nil {
		c.Log.Warn("failed to record invocation", "error", err)
	}
}
