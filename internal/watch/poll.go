package watch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// PollWatcher is the polling change detector: HasChanged reports
// whether any tracked file differs from the stored baseline, then
// updates the baseline. A read or stat failure is returned to the
// caller with the failing file's baseline left untouched; both variants
// share this policy.
type PollWatcher interface {
	HasChanged() (bool, error)
}

// FileAccessError reports a failure to stat or read a tracked file.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("accessing %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ContentWatcher tracks a single file by its full content. The first
// successful read reports a change, so a fresh watcher over an existing
// file triggers an initial render.
type ContentWatcher struct {
	path   string
	prev   []byte
	seeded bool
}

// NewContentWatcher tracks the file at path by content.
func NewContentWatcher(path string) *ContentWatcher {
	return &ContentWatcher{path: path}
}

// HasChanged reads the file and compares it to the baseline.
func (w *ContentWatcher) HasChanged() (bool, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return false, &FileAccessError{Path: w.path, Err: err}
	}

	changed := !w.seeded || !bytes.Equal(data, w.prev)

	w.prev = data
	w.seeded = true

	return changed, nil
}

// MTimeWatcher tracks one or more files by modification time. A change
// on any tracked file reports as changed. On the first poll every file
// counts as changed, since no baseline exists yet.
type MTimeWatcher struct {
	order     []string
	baselines map[string]time.Time
}

// NewMTimeWatcher tracks the given files by mtime.
func NewMTimeWatcher(paths ...string) *MTimeWatcher {
	return &MTimeWatcher{
		order:     paths,
		baselines: make(map[string]time.Time, len(paths)),
	}
}

// HasChanged stats every tracked file and ORs the per-file results.
func (w *MTimeWatcher) HasChanged() (bool, error) {
	changed := false

	for _, path := range w.order {
		info, err := os.Stat(path)
		if err != nil {
			return false, &FileAccessError{Path: path, Err: err}
		}

		prev, seen := w.baselines[path]
		if !seen || !info.ModTime().Equal(prev) {
			changed = true
		}

		w.baselines[path] = info.ModTime()
	}

	return changed, nil
}

// PollOptions configures the polling loop.
type PollOptions struct {
	// Interval between polls.
	Interval time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status lines.
	Out io.Writer
}

// Poll repeatedly checks the watcher at a fixed interval and invokes
// runFn whenever a change is detected, until ctx is cancelled. An error
// on the very first poll is fatal — no initial chart can be built.
// Errors on later polls are logged and the poll skipped, leaving the
// previous output on disk.
func Poll(ctx context.Context, opts PollOptions, watcher PollWatcher, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}

	fmt.Fprintf(opts.Out, "polling every %s\n", opts.Interval)

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	first := true

	for {
		changed, err := watcher.HasChanged()

		switch {
		case err != nil && first:
			return fmt.Errorf("initial poll: %w", err)

		case err != nil:
			opts.Logger.Debug("input unavailable, keeping previous output",
				slog.String("error", err.Error()))

		case changed:
			doRun(ctx, opts.asOptions(), runFn, "(poll)")
		}

		first = false

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (o PollOptions) asOptions() Options {
	return Options{Logger: o.Logger, Out: o.Out}
}
