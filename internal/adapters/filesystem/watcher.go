// Package filesystem provides file system implementations of the core ports.
package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/madstone-tech/toon/internal/core/usecases"
)

// Ensure FileWatcher implements usecases.FileWatcher.
var _ usecases.FileWatcher = (*FileWatcher)(nil)

// FileWatcher monitors a single file for changes and debounces rapid
// events (editors often emit several writes per save). fsnotify cannot
// watch a path that doesn't exist yet and loses track of a path some
// editors replace via rename-on-save, so the watcher watches the
// file's parent directory and filters events down to the target name.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	events  chan usecases.FileChangeEvent
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

// NewFileWatcher creates a new file system watcher.
func NewFileWatcher() (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &FileWatcher{
		watcher: w,
		events:  make(chan usecases.FileChangeEvent, 10),
		done:    make(chan struct{}),
	}, nil
}

// Watch starts monitoring targetPath for changes. Returns a read-only
// channel of FileChangeEvent; the channel closes when Stop is called.
func (fw *FileWatcher) Watch(ctx context.Context, targetPath string) (<-chan usecases.FileChangeEvent, error) {
	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return nil, fmt.Errorf("watcher already stopped")
	}
	fw.mu.Unlock()

	abs, err := filepath.Abs(targetPath)
	if err != nil {
		return nil, fmt.Errorf("invalid target path: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fw.watcher.Add(dir); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	fw.wg.Add(1)
	go func() {
		defer fw.wg.Done()
		fw.processEvents(ctx, abs)
	}()

	return fw.events, nil
}

// Stop halts file watching and closes all channels.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.stopped = true
	fw.mu.Unlock()

	close(fw.done)
	err := fw.watcher.Close()
	fw.wg.Wait()
	close(fw.events)

	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// processEvents reads from fsnotify and sends debounced events for the
// target file only.
func (fw *FileWatcher) processEvents(ctx context.Context, targetPath string) {
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C

	var pending *usecases.FileChangeEvent

	for {
		select {
		case <-fw.done:
			return
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			eventPath, err := filepath.Abs(event.Name)
			if err != nil || eventPath != targetPath {
				continue
			}
			op := fw.mapOperation(event.Op)
			pending = &usecases.FileChangeEvent{Path: targetPath, Op: op}
			debounceTimer.Reset(100 * time.Millisecond)
		case <-debounceTimer.C:
			if pending == nil {
				continue
			}
			select {
			case fw.events <- *pending:
			case <-fw.done:
				return
			case <-ctx.Done():
				return
			}
			pending = nil
		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// mapOperation converts fsnotify.Op to FileChangeEvent operation string.
func (fw *FileWatcher) mapOperation(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return "create"
	case op&fsnotify.Write == fsnotify.Write:
		return "write"
	case op&fsnotify.Remove == fsnotify.Remove:
		return "remove"
	case op&fsnotify.Rename == fsnotify.Rename:
		return "rename"
	case op&fsnotify.Chmod == fsnotify.Chmod:
		return "chmod"
	default:
		return "write"
	}
}
