package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStartWatcherRequiresRoot(t *testing.T) {
	if _, _, err := StartWatcher(context.Background(), WatchConfig{}); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestWatcherInitialScanEmitsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "listing.pdf")
	for _, name := range []string{"listing.pdf", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{Root: dir, InitialScan: true})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case got := <-events:
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for existing PDF")
	}
}

func TestWatcherEmitsIngestibleFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{Root: dir, Debounce: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "listing.pdf")
	if err := os.WriteFile(want, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-events:
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for dropped PDF")
	}
}

// Cancelling the watcher while a debounce timer is armed must not let the
// timer fire into the closed events channel.
func TestWatcherShutdownWithArmedDebounce(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	events, errs, err := StartWatcher(ctx, WatchConfig{Root: dir, Debounce: 200 * time.Millisecond})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "listing.pdf"), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Let the create event arrive and arm the timer, then shut down
	// before the debounce elapses.
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(300 * time.Millisecond)

	for range events {
	}
	for range errs {
	}
}
