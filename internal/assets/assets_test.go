package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadPrefersLastRoot(t *testing.T) {
	base := t.TempDir()
	low := filepath.Join(base, "low")
	high := filepath.Join(base, "high")
	writeFile(t, filepath.Join(low, "flip.wav"), "low")
	writeFile(t, filepath.Join(high, "flip.wav"), "high")
	writeFile(t, filepath.Join(low, "only-low.png"), "png")

	m := NewManager(low)
	if err := m.AddRoot(high); err != nil {
		t.Fatalf("AddRoot() error: %v", err)
	}

	data, err := m.Load("flip.wav")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if string(data) != "high" {
		t.Errorf("Load() = %q, want %q", data, "high")
	}
	if _, err := m.Load("only-low.png"); err != nil {
		t.Errorf("Load() should fall back to earlier roots: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	m := NewManager(t.TempDir())
	if _, err := m.Load("nope.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() = %v, want ErrNotFound", err)
	}
}

func TestLoadCaches(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "page.png")
	writeFile(t, path, "first")

	m := NewManager(root)
	if _, err := m.Load("page.png"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	writeFile(t, path, "second")

	data, _ := m.Load("page.png")
	if string(data) != "first" {
		t.Errorf("cached Load() = %q, want %q", data, "first")
	}
	hits, misses := m.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits %d misses, want 1 and 1", hits, misses)
	}

	m.Close()
	data, _ = m.Load("page.png")
	if string(data) != "second" {
		t.Errorf("Load() after Close = %q, want %q", data, "second")
	}
}

func TestListSortsAndFilters(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"0002.png", "0001.png", "0003.bmp", "notes.txt"} {
		writeFile(t, filepath.Join(root, "frames", name), "x")
	}

	m := NewManager(root)
	files, err := m.List("frames", ".png", ".bmp")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	want := []string{"0001.png", "0002.png", "0003.bmp"}
	if len(files) != len(want) {
		t.Fatalf("List() returned %d files, want %d", len(files), len(want))
	}
	for i, f := range files {
		if filepath.Base(f) != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, filepath.Base(f), want[i])
		}
	}
}

func TestAbsolutePathBypassesRoots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.wav")
	writeFile(t, path, "abs")

	m := NewManager(t.TempDir())
	data, err := m.Load(path)
	if err != nil || string(data) != "abs" {
		t.Errorf("Load(%s) = %q, %v", path, data, err)
	}
}

func TestAddRootRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	writeFile(t, path, "x")

	if err := NewManager().AddRoot(path); err == nil {
		t.Error("AddRoot() should reject a regular file")
	}
}
