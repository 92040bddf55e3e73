package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFSNotifyWatcher_EmitsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.csv")
	if err := os.WriteFile(path, []byte("Address\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewFSNotifyWatcher()
	if err != nil {
		t.Fatalf("creating watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx, path)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("Address\nDamrak 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if filepath.Clean(ev.Path) != filepath.Clean(path) {
			t.Errorf("unexpected event path: %s", ev.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event after writing the watched file")
	}
}

func TestFSNotifyWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.csv")
	other := filepath.Join(dir, "other.txt")
	os.WriteFile(path, []byte("x"), 0o644)

	w, err := NewFSNotifyWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx, path)
	if err != nil {
		t.Fatal(err)
	}

	os.WriteFile(other, []byte("y"), 0o644)

	select {
	case ev := <-events:
		t.Errorf("unexpected event for %s", ev.Path)
	case <-time.After(500 * time.Millisecond):
	}
}
