package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSceneWrites(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(scene, []byte("name: a\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := New(scene)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(scene, []byte("name: b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != scene {
			t.Fatalf("event for %q, want %q", got, scene)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for scene write")
	}
}

func TestCloseClosesChannels(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatal("Events still open")
	}
	if _, ok := <-w.Errors; ok {
		t.Fatal("Errors still open")
	}
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestReloadDeliversLoadedValue(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.yml")
	if err := os.WriteFile(scene, []byte("first"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := New(scene)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	load := func(path string) (string, error) {
		data, err := os.ReadFile(path)
		return string(data), err
	}
	values := Reload(w, load, func(err error) { t.Logf("reload error: %v", err) })

	if err := os.WriteFile(scene, []byte("second"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case got := <-values:
		if got != "second" && got != "" {
			t.Fatalf("loaded %q", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for range values {
	}
}
