package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// stopWatcher is a helper to properly close a watcher in tests.
func stopWatcher(t *testing.T, fw *FileWatcher) {
	if err := fw.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

// TestNewFileWatcher tests watcher initialization.
func TestNewFileWatcher(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	if fw == nil {
		t.Error("NewFileWatcher returned nil")
	}

	if err := fw.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

// TestWatchInvalidPath tests error handling for a parent directory that
// doesn't exist (fsnotify cannot watch a nonexistent directory).
func TestWatchInvalidPath(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer stopWatcher(t, fw)

	ctx := context.Background()
	_, err = fw.Watch(ctx, "/nonexistent/path/that/does/not/exist/file.toon")
	if err == nil {
		t.Error("expected error for nonexistent parent directory, got nil")
	}
}

// TestWatchStoppedWatcher tests error when watching after stop.
func TestWatchStoppedWatcher(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}

	if err := fw.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	ctx := context.Background()
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "data.toon")
	_, watchErr := fw.Watch(ctx, target)
	if watchErr == nil {
		t.Error("expected error when watching after stop, got nil")
	}
}

// TestWatchTargetFile tests detecting changes to the watched file.
func TestWatchTargetFile(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer stopWatcher(t, fw)

	tmpDir := t.TempDir()
	ctx := context.Background()
	target := filepath.Join(tmpDir, "data.toon")

	events, err := fw.Watch(ctx, target)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(target, []byte("a: 1"), 0644); err != nil {
		t.Fatalf("failed to create target file: %v", err)
	}

	select {
	case evt := <-events:
		if evt.Path != target {
			t.Errorf("expected path %q, got %q", target, evt.Path)
		}
		if evt.Op != "create" && evt.Op != "write" {
			t.Errorf("expected 'create' or 'write', got %q", evt.Op)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for event")
	}
}

// TestWatchIgnoresOtherFiles tests that sibling files in the same
// directory don't produce events.
func TestWatchIgnoresOtherFiles(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer stopWatcher(t, fw)

	tmpDir := t.TempDir()
	ctx := context.Background()
	target := filepath.Join(tmpDir, "data.toon")

	events, err := fw.Watch(ctx, target)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	sibling := filepath.Join(tmpDir, "other.toon")
	if err := os.WriteFile(sibling, []byte("b: 2"), 0644); err != nil {
		t.Fatalf("failed to create sibling file: %v", err)
	}

	select {
	case evt := <-events:
		t.Errorf("unexpected event for sibling file: %v", evt)
	case <-time.After(500 * time.Millisecond):
		// Expected: no event
	}
}

// TestWatchDebouncing tests that rapid writes are coalesced into fewer events.
func TestWatchDebouncing(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer stopWatcher(t, fw)

	tmpDir := t.TempDir()
	ctx := context.Background()
	target := filepath.Join(tmpDir, "data.toon")

	events, err := fw.Watch(ctx, target)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(target, []byte("a: "+string(rune('0'+i))), 0644); err != nil {
			t.Fatalf("failed to write target file: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	eventCount := 0
	timeout := time.After(500 * time.Millisecond)
loop:
	for {
		select {
		case <-events:
			eventCount++
		case <-timeout:
			break loop
		}
	}

	if eventCount > 3 {
		t.Errorf("expected debounced events (<=3), got %d", eventCount)
	}
}

// TestWatchContextCancellation tests that context cancellation stops watching.
func TestWatchContextCancellation(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer stopWatcher(t, fw)

	tmpDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	target := filepath.Join(tmpDir, "data.toon")

	events, err := fw.Watch(ctx, target)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	cancel()

	if err := os.WriteFile(target, []byte("a: 1"), 0644); err != nil {
		t.Fatalf("failed to create target file: %v", err)
	}

	select {
	case <-events:
		t.Error("unexpected event after context cancellation")
	case <-time.After(500 * time.Millisecond):
		// Expected: no event
	}
}

// TestWatchFileRemoval tests detecting removal of the watched file.
func TestWatchFileRemoval(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer stopWatcher(t, fw)

	tmpDir := t.TempDir()
	ctx := context.Background()
	target := filepath.Join(tmpDir, "data.toon")

	if err := os.WriteFile(target, []byte("a: 1"), 0644); err != nil {
		t.Fatalf("failed to create target file: %v", err)
	}

	events, err := fw.Watch(ctx, target)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.Remove(target); err != nil {
		t.Fatalf("failed to remove target file: %v", err)
	}

	select {
	case evt := <-events:
		if evt.Op != "remove" {
			t.Errorf("expected 'remove' operation, got %q", evt.Op)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for removal event")
	}
}

// TestStopClosesChannel tests that Stop closes the event channel.
func TestStopClosesChannel(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}

	tmpDir := t.TempDir()
	ctx := context.Background()
	target := filepath.Join(tmpDir, "data.toon")

	events, err := fw.Watch(ctx, target)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := fw.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(500 * time.Millisecond):
		t.Error("timeout waiting for channel close")
	}
}

// TestStopIdempotent tests that Stop can be called multiple times.
func TestStopIdempotent(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}

	tmpDir := t.TempDir()
	ctx := context.Background()
	target := filepath.Join(tmpDir, "data.toon")

	_, err = fw.Watch(ctx, target)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := fw.Stop(); err != nil {
		t.Fatalf("first Stop failed: %v", err)
	}
	if err := fw.Stop(); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}
}

// TestWatchRenameOnSave simulates an editor that replaces the file via a
// temp-file-then-rename save, which some editors use instead of a plain write.
func TestWatchRenameOnSave(t *testing.T) {
	fw, err := NewFileWatcher()
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer stopWatcher(t, fw)

	tmpDir := t.TempDir()
	ctx := context.Background()
	target := filepath.Join(tmpDir, "data.toon")

	if err := os.WriteFile(target, []byte("a: 1"), 0644); err != nil {
		t.Fatalf("failed to create target file: %v", err)
	}

	events, err := fw.Watch(ctx, target)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	tmpFile := filepath.Join(tmpDir, "data.toon.tmp")
	if err := os.WriteFile(tmpFile, []byte("a: 2"), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	if err := os.Rename(tmpFile, target); err != nil {
		t.Fatalf("failed to rename temp file: %v", err)
	}

	select {
	case evt := <-events:
		if evt.Path != target {
			t.Errorf("expected path %q, got %q", target, evt.Path)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for rename-on-save event")
	}
}
