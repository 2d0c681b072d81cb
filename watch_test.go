package boing

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsWatchedFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"config.yml", true},
		{"char/config.YAML", true},
		{"Miss Qing.png", true},
		{"sprite.WEBP", true},
		{"clack.wav", true},
		{"boing.ogg", true},
		{"notes.txt", false},
		{".config.yml.swp", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := isWatchedFile(tt.path); got != tt.want {
			t.Errorf("isWatchedFile(%q) = %t, want %t", tt.path, got, tt.want)
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("fps: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event for %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for config.yml")
	}
}

func TestWatcherCoalescesBurstToFinalWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "config.yml")
	var last time.Time
	for _, body := range []string{"fps: 10\n", "fps: 20\n", "fps: 30\n"} {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		last = time.Now()
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event for %q, want %q", got, path)
		}
		if d := time.Since(last); d < watchDebounce/2 {
			t.Errorf("event %v after the last write, want it to wait for quiet", d)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "fps: 30\n" {
			t.Errorf("file at event = %q, want the final write", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for config.yml")
	}

	select {
	case got := <-w.Events:
		t.Errorf("second event for %q, want one per burst", got)
	case <-time.After(3 * watchDebounce):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
