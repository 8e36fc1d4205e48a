package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc is called each time the watcher triggers a re-render. It
// returns the render result for change reporting.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult holds the outcome of a single render so the watcher can
// report section/task counts and schedule changes.
type RunResult struct {
	Sections   int
	Tasks      int
	OutputPath string
	Changes    []Change
	Diff       string
}

// Options configures the watch behaviour.
type Options struct {
	// InputPath is the schedule file to watch.
	InputPath string

	// ExtraFiles are additional files to watch (e.g. the config file).
	ExtraFiles []string

	// Debounce is the quiet period before triggering a re-render.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status lines.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run starts the fsnotify watcher and blocks until the context is
// cancelled or SIGINT/SIGTERM is received. The input file's directory is
// watched rather than the file itself, since editors typically replace
// the file on save and break a direct watch.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	input, err := filepath.Abs(opts.InputPath)
	if err != nil {
		return fmt.Errorf("resolving input path %q: %w", opts.InputPath, err)
	}

	watched := map[string]bool{input: true}

	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watching %q: %w", filepath.Dir(input), err)
	}

	for _, f := range opts.ExtraFiles {
		abs, absErr := filepath.Abs(f)
		if absErr != nil {
			return fmt.Errorf("resolving extra file %q: %w", f, absErr)
		}

		watched[abs] = true

		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watching %q: %w", filepath.Dir(abs), err)
		}
	}

	// Trap SIGINT / SIGTERM for graceful shutdown.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", opts.InputPath, opts.Debounce)

	// Initial render.
	doRun(sigCtx, opts, runFn, "(initial)")

	debouncer := NewDebouncer(opts.Debounce, func(path string) {
		doRun(sigCtx, opts, runFn, path)
	})
	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event, watched) {
				continue
			}

			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single render and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	fmt.Fprintf(opts.Out, "[%s] %s → OK (%d sections, %d tasks) → %s\n",
		now, trigger, result.Sections, result.Tasks, result.OutputPath)

	if len(result.Changes) > 0 {
		fmt.Fprintf(opts.Out, "  schedule: %s\n", Summary(result.Changes))
	}

	if result.Diff != "" {
		fmt.Fprint(opts.Out, result.Diff)
	}
}

// isRelevant filters events down to writes/creates/removes/renames of
// the watched files, skipping editor temp files.
func isRelevant(event fsnotify.Event, watched map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") || strings.HasPrefix(name, "#") {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return watched[abs]
}
