package cache

import (
	"path/filepath"
	"testing"

	"github.com/mWalrus/conman/internal/pathenc"
	"github.com/mWalrus/conman/internal/store"
)

func testCodec() *pathenc.Codec {
	return pathenc.NewWithHome("/home/u")
}

func storeOf(paths ...string) *store.Store {
	s := &store.Store{}
	for _, p := range paths {
		s.Manage(store.TrackedFile{SystemPath: p, MirrorPath: "/data/repo/1-" + filepath.Base(p)})
	}
	return s
}

func snapshotOf(paths ...string) []store.TrackedFile {
	var files []store.TrackedFile
	for _, p := range paths {
		files = append(files, store.TrackedFile{SystemPath: p})
	}
	return files
}

func TestReconcileBothEmpty(t *testing.T) {
	v := Reconcile(storeOf(), nil)
	if v.Kind != DoNothing {
		t.Errorf("Reconcile() = %v, want DoNothing", v.Kind)
	}
}

func TestReconcileEmptySnapshot(t *testing.T) {
	v := Reconcile(storeOf("/home/u/.bashrc"), nil)
	if v.Kind != FullPopulate {
		t.Errorf("Reconcile() = %v, want FullPopulate", v.Kind)
	}
}

func TestReconcileAgreement(t *testing.T) {
	s := storeOf("/home/u/.bashrc", "/home/u/.vimrc")
	v := Reconcile(s, snapshotOf("/home/u/.bashrc", "/home/u/.vimrc"))
	if v.Kind != DoNothing {
		t.Errorf("Reconcile() = %v, want DoNothing", v.Kind)
	}
}

func TestReconcileDangling(t *testing.T) {
	// Branch switch dropped .bashrc and .vimrc from the store.
	s := storeOf("/home/u/.zshrc")
	snap := snapshotOf("/home/u/.vimrc", "/home/u/.zshrc", "/home/u/.bashrc")

	v := Reconcile(s, snap)
	if v.Kind != HandleDangling {
		t.Fatalf("Reconcile() = %v, want HandleDangling", v.Kind)
	}
	if len(v.Dangling) != 2 {
		t.Fatalf("len(Dangling) = %d, want 2", len(v.Dangling))
	}
	// Snapshot order, not sorted.
	if v.Dangling[0].SystemPath != "/home/u/.vimrc" || v.Dangling[1].SystemPath != "/home/u/.bashrc" {
		t.Errorf("Dangling = %+v, want snapshot order", v.Dangling)
	}
}

func TestReconcileStoreEmptySnapshotNot(t *testing.T) {
	v := Reconcile(storeOf(), snapshotOf("/home/u/.bashrc"))
	if v.Kind != HandleDangling {
		t.Fatalf("Reconcile() = %v, want HandleDangling", v.Kind)
	}
	if len(v.Dangling) != 1 || v.Dangling[0].SystemPath != "/home/u/.bashrc" {
		t.Errorf("Dangling = %+v", v.Dangling)
	}
}

func TestReconcileDeterminism(t *testing.T) {
	s := storeOf("/home/u/.zshrc")
	snap := snapshotOf("/home/u/.vimrc", "/home/u/.bashrc")

	first := Reconcile(s, snap)
	for i := 0; i < 5; i++ {
		v := Reconcile(s, snap)
		if v.Kind != first.Kind || len(v.Dangling) != len(first.Dangling) {
			t.Fatalf("Reconcile() verdict varies: %+v vs %+v", v, first)
		}
		for j := range v.Dangling {
			if v.Dangling[j].SystemPath != first.Dangling[j].SystemPath {
				t.Fatalf("Reconcile() entry order varies")
			}
		}
	}
}

func TestConvergenceAfterSnapshotRewrite(t *testing.T) {
	// Regardless of how a dangling verdict was resolved, rewriting the
	// snapshot from the (possibly updated) store must make the next
	// reconciliation a DoNothing.
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "snapshot.toml")
	codec := testCodec()

	s := storeOf("/home/u/.zshrc")
	v := Reconcile(s, snapshotOf("/home/u/.bashrc", "/home/u/.zshrc"))
	if v.Kind != HandleDangling {
		t.Fatalf("setup: Reconcile() = %v", v.Kind)
	}

	// Simulate "manage" for the dangling entry.
	s.Manage(store.TrackedFile{SystemPath: "/home/u/.bashrc", MirrorPath: "/data/repo/9-.bashrc"})

	if err := WriteSnapshot(snapPath, s, codec); err != nil {
		t.Fatalf("WriteSnapshot() failed: %v", err)
	}
	snap, err := ReadSnapshot(snapPath, codec)
	if err != nil {
		t.Fatalf("ReadSnapshot() failed: %v", err)
	}

	if v := Reconcile(s, snap); v.Kind != DoNothing {
		t.Errorf("second Reconcile() = %v, want DoNothing", v.Kind)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "snapshot.toml")
	codec := testCodec()

	s := storeOf("/home/u/.bashrc")
	s.Files[0].Encrypted = true

	if err := WriteSnapshot(snapPath, s, codec); err != nil {
		t.Fatal(err)
	}
	snap, err := ReadSnapshot(snapPath, codec)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 1 {
		t.Fatalf("len(snapshot) = %d, want 1", len(snap))
	}
	if snap[0].SystemPath != "/home/u/.bashrc" || !snap[0].Encrypted {
		t.Errorf("snapshot entry = %+v", snap[0])
	}
}

func TestReadSnapshotMissing(t *testing.T) {
	snap, err := ReadSnapshot(filepath.Join(t.TempDir(), "none.toml"), testCodec())
	if err != nil {
		t.Fatalf("ReadSnapshot() on missing file failed: %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("len(snapshot) = %d, want 0", len(snap))
	}
}
