package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mWalrus/conman/internal/pathenc"
)

func testCodec() *pathenc.Codec {
	return pathenc.NewWithHome("/home/u")
}

func TestReadMissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.toml")

	s, err := Read(path, testCodec())
	if err != nil {
		t.Fatalf("Read() on missing document failed: %v", err)
	}
	if len(s.Files) != 0 {
		t.Errorf("Read() on missing document returned %d files, want 0", len(s.Files))
	}
}

func TestReadMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.toml")
	if err := os.WriteFile(path, []byte("not [ valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Read(path, testCodec())
	if !errors.Is(err, ErrParse) {
		t.Errorf("Read() error = %v, want ErrParse", err)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.toml")
	codec := testCodec()

	s, err := Read(path, codec)
	if err != nil {
		t.Fatal(err)
	}
	s.Manage(TrackedFile{
		SystemPath: "/home/u/.bashrc",
		MirrorPath: "/home/u/.local/share/conman/repo/171-.bashrc",
		Encrypted:  false,
	})
	s.Manage(TrackedFile{
		SystemPath: "/etc/hosts",
		MirrorPath: "/home/u/.local/share/conman/repo/172-hosts",
		Encrypted:  true,
	})
	if err := s.Persist(); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}

	// Persisted document must carry encoded (portable) paths.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), pathenc.Token) {
		t.Errorf("persisted document does not use the home placeholder:\n%s", data)
	}
	if strings.Contains(string(data), "/home/u/") {
		t.Errorf("persisted document leaks the raw home directory:\n%s", data)
	}

	got, err := Read(path, codec)
	if err != nil {
		t.Fatalf("Read() after Persist() failed: %v", err)
	}
	if len(got.Files) != 2 {
		t.Fatalf("Read() returned %d files, want 2", len(got.Files))
	}
	if got.Files[0].SystemPath != "/home/u/.bashrc" {
		t.Errorf("Files[0].SystemPath = %q", got.Files[0].SystemPath)
	}
	if !got.Files[1].Encrypted {
		t.Error("Files[1].Encrypted = false, want true")
	}
}

func TestUnmanage(t *testing.T) {
	s := &Store{Files: []TrackedFile{
		{SystemPath: "/home/u/.bashrc"},
		{SystemPath: "/home/u/.vimrc"},
	}}

	removed := s.Unmanage("/home/u/.bashrc")
	if removed == nil || removed.SystemPath != "/home/u/.bashrc" {
		t.Fatalf("Unmanage() = %+v, want the .bashrc entry", removed)
	}
	if len(s.Files) != 1 || s.Files[0].SystemPath != "/home/u/.vimrc" {
		t.Errorf("Files after Unmanage = %+v", s.Files)
	}

	if got := s.Unmanage("/home/u/.bashrc"); got != nil {
		t.Errorf("Unmanage() of absent path = %+v, want nil", got)
	}
}

func TestUniquenessUnderAddRemove(t *testing.T) {
	s := &Store{}

	add := func(p string) {
		if !s.IsManaged(p) {
			s.Manage(TrackedFile{SystemPath: p})
		}
	}

	add("/home/u/.bashrc")
	add("/home/u/.bashrc")
	add("/home/u/.vimrc")
	s.Unmanage("/home/u/.vimrc")
	add("/home/u/.vimrc")
	add("/home/u/.vimrc")

	seen := map[string]int{}
	for _, f := range s.Files {
		seen[f.SystemPath]++
	}
	for p, n := range seen {
		if n != 1 {
			t.Errorf("system path %q tracked %d times, want 1", p, n)
		}
	}
	if len(s.Files) != 2 {
		t.Errorf("len(Files) = %d, want 2", len(s.Files))
	}
}

func TestFindWhereMirrorPathEndsWith(t *testing.T) {
	s := &Store{Files: []TrackedFile{
		{SystemPath: "/home/u/.bashrc", MirrorPath: "/data/conman/repo/171-.bashrc"},
		{SystemPath: "/home/u/.vimrc", MirrorPath: "/data/conman/repo/172-.vimrc"},
	}}

	got := s.FindWhereMirrorPathEndsWith("171-.bashrc")
	if got == nil || got.SystemPath != "/home/u/.bashrc" {
		t.Errorf("FindWhereMirrorPathEndsWith() = %+v", got)
	}

	if got := s.FindWhereMirrorPathEndsWith("nope"); got != nil {
		t.Errorf("FindWhereMirrorPathEndsWith(nope) = %+v, want nil", got)
	}
	if got := s.FindWhereMirrorPathEndsWith(""); got != nil {
		t.Errorf("FindWhereMirrorPathEndsWith(\"\") = %+v, want nil", got)
	}
}

func TestRetain(t *testing.T) {
	s := &Store{Files: []TrackedFile{
		{SystemPath: "/a"},
		{SystemPath: "/b"},
		{SystemPath: "/c"},
	}}

	s.Retain([]string{"/c", "/a"})

	if len(s.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(s.Files))
	}
	// Store order is preserved, not the keep order.
	if s.Files[0].SystemPath != "/a" || s.Files[1].SystemPath != "/c" {
		t.Errorf("Files after Retain = %+v", s.Files)
	}
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.toml")

	s := &Store{path: path, codec: testCodec()}
	s.Manage(TrackedFile{SystemPath: "/home/u/.bashrc", MirrorPath: "/x/171-.bashrc"})
	if err := s.Persist(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries after Persist(), want 1", len(entries))
	}
}
