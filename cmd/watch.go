package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madstone-tech/toon/internal/adapters/config"
	"github.com/madstone-tech/toon/internal/adapters/filesystem"
	"github.com/madstone-tech/toon/internal/adapters/validation"
)

// WatchCommand watches a TOON file and re-validates it on every change.
type WatchCommand struct {
	path       string
	debounceMs int
	cfg        *config.Config
}

// NewWatchCommand creates a new watch command.
func NewWatchCommand(path string, cfg *config.Config) *WatchCommand {
	return &WatchCommand{path: path, debounceMs: 500, cfg: cfg}
}

// WithDebounce sets the debounce delay in milliseconds.
func (c *WatchCommand) WithDebounce(ms int) *WatchCommand {
	c.debounceMs = ms
	return c
}

// Execute runs the watch command until interrupted.
func (c *WatchCommand) Execute(ctx context.Context) error {
	watcher, err := filesystem.NewFileWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	events, err := watcher.Watch(ctx, c.path)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	validator := validation.NewValidator(config.DecoderOptions(c.cfg)...)

	fmt.Printf("watching %s for changes (ctrl-c to stop)\n", c.path)
	c.revalidate(ctx, validator)

	debounceTimer := time.NewTimer(time.Duration(c.debounceMs) * time.Millisecond)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sigChan:
			fmt.Println("\nwatch stopped")
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			fmt.Printf("change detected: %s\n", event.Path)
			debounceTimer.Reset(time.Duration(c.debounceMs) * time.Millisecond)

		case <-debounceTimer.C:
			c.revalidate(ctx, validator)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *WatchCommand) revalidate(ctx context.Context, validator *validation.Validator) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		fmt.Printf("error reading %s: %v\n", c.path, err)
		return
	}
	errs, err := validator.ValidateText(ctx, c.path, string(data))
	if err != nil {
		fmt.Printf("error validating %s: %v\n", c.path, err)
		return
	}
	if len(errs) == 0 {
		fmt.Println("valid")
		return
	}
	for _, e := range errs {
		fmt.Printf("  [%s] %s:%d — %s\n", e.Code, e.Path, e.Line, e.Message)
	}
}
