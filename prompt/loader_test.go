package prompt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoaderReadsFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.md")
	second := filepath.Join(dir, "second.md")
	if err := os.WriteFile(first, []byte("part one"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("part two"), 0o644); err != nil {
		t.Fatal(err)
	}

	parts, err := NewLoader().Load(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(parts) != 2 || parts[0] != "part one" || parts[1] != "part two" {
		t.Errorf("Load() = %v", parts)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), []string{"/does/not/exist.md"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoaderFetchesURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote prompt"))
	}))
	defer srv.Close()

	parts, err := NewLoader().Load(context.Background(), []string{srv.URL + "/prompt.md"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(parts) != 1 || parts[0] != "remote prompt" {
		t.Errorf("Load() = %v", parts)
	}
}

func TestLoaderRemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewLoader().Load(context.Background(), []string{srv.URL})
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestWatcherSeesEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.md")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	watcher, err := NewWatcher([]string{path})
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer watcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	changes := watcher.Watch(ctx)

	// Give the watch loop a moment before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	for change := range changes {
		if change.Content == "v2" {
			return
		}
	}
	t.Fatal("never observed updated content")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.md")
	other := filepath.Join(dir, "other.md")
	if err := os.WriteFile(watched, []byte("w"), 0o644); err != nil {
		t.Fatal(err)
	}

	watcher, err := NewWatcher([]string{watched})
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer watcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	changes := watcher.Watch(ctx)

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(other, []byte("noise"), 0o644); err != nil {
		t.Fatal(err)
	}

	for change := range changes {
		if change.Path == other {
			t.Fatalf("unwatched file reported: %v", change)
		}
	}
}
