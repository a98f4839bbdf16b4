// Package ops implements the conman commands. Each operation is a method on
// Context, which carries everything a command needs: configuration, resolved
// paths, the repository, the interactive oracle and the logger. Commands never
// reach for global state.
//
// Batch operations over multiple files never abort on the first failure: each
// file is attempted, failures are collected with errors.Join, and the combined
// error is returned after the batch completes.
package ops

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mWalrus/conman/internal/config"
	"github.com/mWalrus/conman/internal/pathenc"
	"github.com/mWalrus/conman/internal/paths"
	"github.com/mWalrus/conman/internal/store"
	"github.com/mWalrus/conman/internal/ui"
	"github.com/mWalrus/conman/internal/vcs"
)

var (
	// ErrUnsavedChanges guards operations that would clobber or publish
	// uncommitted repository state. Matches vcs.ErrDirty under errors.Is.
	ErrUnsavedChanges = fmt.Errorf("%w; run `conman save` or `conman discard` first", vcs.ErrDirty)

	// ErrNothingTracked is returned by operations that need at least one
	// tracked file.
	ErrNothingTracked = errors.New("no files are tracked yet; run `conman add` first")

	// ErrNoPassphrase is returned when an encrypted entry needs a passphrase
	// and none could be resolved.
	ErrNoPassphrase = errors.New("no encryption passphrase available")
)

// Context carries the collaborators of a single command invocation.
type Context struct {
	Config *config.Config
	Paths  *paths.Paths
	Codec  *pathenc.Codec
	Repo   vcs.Repository
	Oracle ui.Oracle
	Log    *slog.Logger

	// Out receives user-facing command output. Defaults to stdout.
	Out io.Writer

	// AssumeYes answers every confirmation with yes. Set by --no-confirm.
	AssumeYes bool

	// PassphraseFunc prompts for a passphrase when the config has none.
	PassphraseFunc func() (string, error)

	passphrase    string
	passphraseSet bool
}

func (c *Context) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// confirm asks through the oracle unless confirmations are disabled.
func (c *Context) confirm(prompt string) (bool, error) {
	if c.AssumeYes {
		return true, nil
	}
	return c.Oracle.Confirm(prompt)
}

// Passphrase resolves the encryption passphrase: configured value first,
// otherwise an interactive prompt. The answer is cached for the invocation so
// a batch over many encrypted files prompts at most once.
func (c *Context) Passphrase() (string, error) {
	if c.passphraseSet {
		return c.passphrase, nil
	}
	if c.Config != nil && c.Config.Encryption.Passphrase != "" {
		c.passphrase = c.Config.Encryption.Passphrase
		c.passphraseSet = true
		return c.passphrase, nil
	}
	if c.PassphraseFunc == nil {
		return "", ErrNoPassphrase
	}
	p, err := c.PassphraseFunc()
	if err != nil {
		return "", fmt.Errorf("failed to resolve passphrase: %w", err)
	}
	c.passphrase = p
	c.passphraseSet = true
	return p, nil
}

// passphraseFor resolves a passphrase only when the entry actually needs one.
func (c *Context) passphraseFor(file store.TrackedFile) (string, error) {
	if !file.Encrypted {
		return "", nil
	}
	return c.Passphrase()
}

// readStore loads the metadata store from the repository.
func (c *Context) readStore() (*store.Store, error) {
	return store.Read(c.Paths.Metadata, c.Codec)
}

// canonicalize turns a user-supplied path into the absolute, cleaned system
// path that identifies a tracked file.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// systemPathFor maps a repository-relative path back to the system path it
// mirrors. Unmapped paths render as the relative path itself, so repository
// files conman does not manage still show up in status output.
func systemPathFor(s *store.Store, relPath string) string {
	if f := s.FindWhereMirrorPathEndsWith(relPath); f != nil {
		return f.SystemPath
	}
	return relPath
}
