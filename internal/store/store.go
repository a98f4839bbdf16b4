// Package store maintains the authoritative mapping of tracked files: which
// system paths conman manages, where their mirrored copies live inside the
// repository, and whether they are encrypted at rest.
//
// The store is persisted as a single TOML document inside the mirror
// repository. Reads treat a missing document as an empty store; writes
// replace the whole document atomically.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mWalrus/conman/internal/pathenc"
)

// ErrParse is returned when the on-disk document exists but cannot be
// decoded. There is no partial-load recovery.
var ErrParse = errors.New("malformed metadata document")

// TrackedFile is the unit of management. SystemPath is the canonical
// identity; MirrorPath and Encrypted are fixed at creation time.
type TrackedFile struct {
	SystemPath string
	MirrorPath string
	Encrypted  bool
}

type trackedFileDoc struct {
	SystemPath string `toml:"system_path"`
	MirrorPath string `toml:"mirror_path"`
	Encrypted  bool   `toml:"encrypted"`
}

type document struct {
	Files []trackedFileDoc `toml:"files"`
}

// Store is the in-memory, ordered collection of tracked files backed by a
// document on disk. It is owned by a single command invocation; there is no
// concurrent access model.
type Store struct {
	Files []TrackedFile

	path  string
	codec *pathenc.Codec
}

// Read loads the store document at path. A missing document yields an empty
// store; a document that exists but does not decode yields ErrParse.
func Read(path string, codec *pathenc.Codec) (*Store, error) {
	s := &Store{path: path, codec: codec}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read metadata document: %w", err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	s.Files = make([]TrackedFile, 0, len(doc.Files))
	for _, f := range doc.Files {
		s.Files = append(s.Files, TrackedFile{
			SystemPath: codec.Decode(f.SystemPath),
			MirrorPath: codec.Decode(f.MirrorPath),
			Encrypted:  f.Encrypted,
		})
	}

	return s, nil
}

// IsManaged reports whether the system path is already tracked.
func (s *Store) IsManaged(systemPath string) bool {
	return s.FindBySystemPath(systemPath) != nil
}

// Manage appends a tracked file. The caller must have verified the path is
// not already managed.
func (s *Store) Manage(file TrackedFile) {
	s.Files = append(s.Files, file)
}

// Unmanage removes and returns the entry for the given system path. A nil
// return means nothing was tracked under that path; callers treat this as a
// benign no-op.
func (s *Store) Unmanage(systemPath string) *TrackedFile {
	for i, f := range s.Files {
		if f.SystemPath == systemPath {
			removed := f
			s.Files = append(s.Files[:i], s.Files[i+1:]...)
			return &removed
		}
	}
	return nil
}

// FindBySystemPath returns the entry tracking the given system path.
func (s *Store) FindBySystemPath(systemPath string) *TrackedFile {
	for i := range s.Files {
		if s.Files[i].SystemPath == systemPath {
			return &s.Files[i]
		}
	}
	return nil
}

// FindWhereMirrorPathEndsWith maps a repository-relative path, as reported by
// the repository service, back to a tracked file. Mirror paths are stored
// absolute, so the match is on the path suffix.
func (s *Store) FindWhereMirrorPathEndsWith(relPath string) *TrackedFile {
	if relPath == "" {
		return nil
	}
	for i := range s.Files {
		if strings.HasSuffix(s.Files[i].MirrorPath, relPath) {
			return &s.Files[i]
		}
	}
	return nil
}

// Retain drops every entry whose system path is not in keep. Used by batch
// operations that were narrowed to specific files on the command line.
func (s *Store) Retain(keep []string) {
	kept := s.Files[:0]
	for _, f := range s.Files {
		for _, k := range keep {
			if f.SystemPath == k {
				kept = append(kept, f)
				break
			}
		}
	}
	s.Files = kept
}

// Persist serializes the whole collection and replaces the backing document.
// The write goes through a temp file in the same directory followed by a
// rename, so a crash mid-write leaves the previous document intact.
func (s *Store) Persist() error {
	return WriteDocument(s.path, s.Files, s.codec)
}

// WriteDocument writes a tracked-file list as a store-shaped TOML document at
// path. The cache snapshot shares this document shape with the store.
func WriteDocument(path string, files []TrackedFile, codec *pathenc.Codec) error {
	doc := document{Files: make([]trackedFileDoc, 0, len(files))}
	for _, f := range files {
		doc.Files = append(doc.Files, trackedFileDoc{
			SystemPath: codec.Encode(f.SystemPath),
			MirrorPath: codec.Encode(f.MirrorPath),
			Encrypted:  f.Encrypted,
		})
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode metadata document: %w", err)
	}

	return atomicWrite(path, []byte(sb.String()))
}

// atomicWrite replaces path with data via a same-directory temp file and
// rename.
func atomicWrite(path string, data []byte) error {
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

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp document: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace document %s: %w", path, err)
	}
	return nil
}
