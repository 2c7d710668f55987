package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemStore_GetMissing(t *testing.T) {
	m := NewMemStore()
	if _, ok := m.Get("nope"); ok {
		t.Fatal("expected missing key to report absent")
	}
}

func TestMemStore_LastWriteWins(t *testing.T) {
	m := NewMemStore()
	_ = m.Set("k", "1")
	_ = m.Set("k", "2")
	if v, _ := m.Get("k"); v != "2" {
		t.Fatalf("expected 2, got %q", v)
	}
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := fs.Get("skyStrikeHighScore"); ok {
		t.Fatal("expected empty store")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("opening should not create the file, stat err=%v", err)
	}
}

func TestFileStore_SetPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.yaml")
	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := fs.Set("skyStrikeHighScore", "420"); err != nil {
		t.Fatalf("set: %v", err)
	}

	again, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok := again.Get("skyStrikeHighScore")
	if !ok || v != "420" {
		t.Fatalf("expected 420 after reopen, got %q (present=%v)", v, ok)
	}
}

func TestFileStore_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	if err := os.WriteFile(path, []byte("values: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFileStore(path); err == nil {
		t.Fatal("expected parse error for corrupt file")
	}
}
