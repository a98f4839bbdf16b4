package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mWalrus/conman/internal/store"
)

// BranchCache records, per upstream branch, the repo-relative mirror paths
// that were tracked when the cache was last written. It is a cheap,
// branch-aware precursor to the full reconciliation: when nothing changed
// for the active branch, no interactive prompting is needed.
type BranchCache struct {
	Branch string   `toml:"branch"`
	Files  []string `toml:"files"`
}

// ReadBranchCache loads the branch cache document. Missing reads as empty.
func ReadBranchCache(path string) (*BranchCache, error) {
	var bc BranchCache

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &bc, nil
		}
		return nil, fmt.Errorf("failed to read branch cache: %w", err)
	}

	if err := toml.Unmarshal(data, &bc); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrParse, err)
	}
	return &bc, nil
}

// IsEmpty reports whether the cache has never been written.
func (bc *BranchCache) IsEmpty() bool {
	return bc.Branch == "" && len(bc.Files) == 0
}

// HasChanges reports whether the tracked set differs from what this cache
// recorded: true when any recorded file has no suffix match among the
// store's mirror paths.
func (bc *BranchCache) HasChanges(s *store.Store) bool {
	for _, f := range bc.Files {
		if s.FindWhereMirrorPathEndsWith(f) == nil {
			return true
		}
	}
	return false
}

// Update re-tags the cache with the given branch and records the store's
// current mirror paths, relative to the repository root.
func (bc *BranchCache) Update(branch, repoRoot string, s *store.Store) {
	bc.Branch = branch
	bc.Files = bc.Files[:0]
	for _, f := range s.Files {
		rel, err := filepath.Rel(repoRoot, f.MirrorPath)
		if err != nil || strings.HasPrefix(rel, "..") {
			// Mirror path outside the repo root should not happen; fall
			// back to the basename so the suffix match still works.
			rel = filepath.Base(f.MirrorPath)
		}
		bc.Files = append(bc.Files, rel)
	}
}

// Write persists the cache document atomically.
func (bc *BranchCache) Write(path string) error {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(bc); err != nil {
		return fmt.Errorf("failed to encode branch cache: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".conman-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp document: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.WriteString(sb.String()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write branch cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp document: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace branch cache: %w", err)
	}
	return nil
}
