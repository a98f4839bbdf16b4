// Package mirror copies tracked file content between its live system
// location and its mirrored copy inside the repository, encrypting or
// decrypting as the tracked entry dictates, and detects drift between the
// two sides.
package mirror

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mWalrus/conman/internal/crypt"
	"github.com/mWalrus/conman/internal/store"
)

// Files are read whole into memory. Configuration files are small; streaming
// large binaries is a non-goal.

// CopyToMirror reads the system path's content and writes it to the mirror
// path, encrypting with passphrase when the entry is flagged. Existing mirror
// content is overwritten.
func CopyToMirror(file store.TrackedFile, passphrase string) error {
	content, err := os.ReadFile(file.SystemPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file.SystemPath, err)
	}

	if file.Encrypted {
		content, err = crypt.Encrypt(content, passphrase)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", file.SystemPath, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(file.MirrorPath), 0o755); err != nil {
		return fmt.Errorf("failed to create mirror directory: %w", err)
	}
	if err := os.WriteFile(file.MirrorPath, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", file.MirrorPath, err)
	}
	return nil
}

// CopyToSystem restores the mirrored content to the system path, decrypting
// when the entry is flagged. Parent directories of the system path are
// created if missing. Decryption happens fully in memory before the
// destination is touched, so a wrong passphrase leaves the system file
// as it was.
func CopyToSystem(file store.TrackedFile, passphrase string) error {
	content, err := os.ReadFile(file.MirrorPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file.MirrorPath, err)
	}

	if file.Encrypted {
		content, err = crypt.Decrypt(content, passphrase)
		if err != nil {
			return fmt.Errorf("failed to decrypt %s: %w", file.MirrorPath, err)
		}
	}

	if parent := filepath.Dir(file.SystemPath); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", parent, err)
		}
	}
	if err := os.WriteFile(file.SystemPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file.SystemPath, err)
	}
	return nil
}

// RemoveMirror deletes the mirrored copy of an unmanaged file. A missing
// mirror file is not an error.
func RemoveMirror(file store.TrackedFile) error {
	if err := os.Remove(file.MirrorPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", file.MirrorPath, err)
	}
	return nil
}
