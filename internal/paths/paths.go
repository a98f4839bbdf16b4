// Package paths resolves the filesystem locations conman operates on: the
// data directory holding the mirror repository and cache documents, and the
// config directory holding the user's config file.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is used as the directory name under the platform data/config roots.
	AppName = "conman"

	// MetadataFileName is the metadata store document, stored inside the
	// mirror repository so it travels with the tracked content. Repository
	// status reporting must exclude it.
	MetadataFileName = "_conman_internal_metadata.toml"

	// SnapshotFileName is the cache snapshot document, stored in the data
	// directory (outside the repository) so it survives branch switches.
	SnapshotFileName = "_metadata_cache.toml"

	// BranchCacheFileName is the branch-tagged cache document.
	BranchCacheFileName = "_branch_cache.toml"

	// RepoDirName is the mirror repository directory under the data dir.
	RepoDirName = "repo"

	logFileName     = "conman.log"
	historyFileName = "history.db"
)

// Paths holds every location the tool reads or writes.
type Paths struct {
	// DataDir is the per-user data directory, e.g. ~/.local/share/conman.
	DataDir string

	// ConfigDir is the per-user config directory, e.g. ~/.config/conman.
	ConfigDir string

	// Repo is the mirror repository working tree.
	Repo string

	// Metadata is the metadata store document inside the repository.
	Metadata string

	// Snapshot is the cache snapshot document outside the repository.
	Snapshot string

	// BranchCache is the branch cache document outside the repository.
	BranchCache string
}

// New resolves all paths from the platform's user directories.
func New() (*Paths, error) {
	dataDir, err := userDataDir()
	if err != nil {
		return nil, err
	}
	configRoot, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return NewAt(filepath.Join(dataDir, AppName), filepath.Join(configRoot, AppName)), nil
}

// NewAt constructs Paths rooted at explicit data and config directories.
// Used by tests to operate inside temp dirs.
func NewAt(dataDir, configDir string) *Paths {
	repo := filepath.Join(dataDir, RepoDirName)
	return &Paths{
		DataDir:     dataDir,
		ConfigDir:   configDir,
		Repo:        repo,
		Metadata:    filepath.Join(repo, MetadataFileName),
		Snapshot:    filepath.Join(dataDir, SnapshotFileName),
		BranchCache: filepath.Join(dataDir, BranchCacheFileName),
	}
}

// EnsureDirs creates the data and config directories if missing.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.DataDir, p.ConfigDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ConfigFile returns the user config file location.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.toml")
}

// LogFile returns the rotating log file location.
func (p *Paths) LogFile() string {
	return filepath.Join(p.DataDir, logFileName)
}

// HistoryDB returns the invocation history database location.
func (p *Paths) HistoryDB() string {
	return filepath.Join(p.DataDir, historyFileName)
}

// MirrorPathFor generates a fresh mirror location inside the repository for
// the given system path. The name is timestamped to avoid collisions between
// identically named files tracked from different directories.
func (p *Paths) MirrorPathFor(systemPath string) string {
	name := fmt.Sprintf("%d-%s", time.Now().Unix(), filepath.Base(systemPath))
	return filepath.Join(p.Repo, name)
}

// userDataDir returns the platform data root, honoring XDG_DATA_HOME.
func userDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}
