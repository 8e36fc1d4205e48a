package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ihincks/gantt/internal/config"
	"github.com/ihincks/gantt/internal/logging"
	"github.com/ihincks/gantt/internal/schedule"
	"github.com/ihincks/gantt/internal/watch"
)

type watchOptions struct {
	debounce time.Duration
	poll     time.Duration
	pollMode string
	showDiff bool
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Watch a schedule file and re-render on change",
		Long: `Watch monitors the schedule file and re-renders the chart whenever
it changes, until interrupted.

By default changes are detected through filesystem notifications with a
debounce to avoid rapid re-renders. On filesystems where notifications
are unreliable (network mounts, some containers), --poll switches to a
fixed-interval poll; --poll-mode selects whether polls compare file
content or modification times.

Each re-render reports section and task counts and what changed in the
schedule. When a config file is in use it is re-read before every
render, so presentation settings can be tuned live; an unreadable
config file is silently skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args[0], opts)
		},
	}

	registerChartFlags(cmd)

	f := cmd.Flags()
	f.DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")
	f.DurationVar(&opts.poll, "poll", 0, "poll at a fixed interval instead of using filesystem notifications")
	f.StringVar(&opts.pollMode, "poll-mode", "content", "poll change detection: content, mtime")
	f.BoolVar(&opts.showDiff, "diff", false, "print a unified diff of the input on each change")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, inputPath string, opts *watchOptions) error {
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	// Track the previous schedule and raw input across renders for
	// change reporting.
	var (
		prevSchedule *schedule.Schedule
		prevRaw      string
	)

	runFn := func(fnCtx context.Context) (*watch.RunResult, error) {
		// Live-reload presentation settings; a broken or deleted
		// config file keeps the last good settings.
		cfg = reloadConfig(cmd, cfg)

		raw := readInputBestEffort(inputPath, prevRaw)

		s, err := renderOnce(logging.NewContext(fnCtx, logger), inputPath, cfg)
		if err != nil {
			return nil, err
		}

		result := &watch.RunResult{
			Sections:   len(s.Sections),
			Tasks:      s.TaskCount(),
			OutputPath: cfg.Output,
		}

		if prevSchedule != nil {
			result.Changes = watch.Diff(prevSchedule, s)
		}

		if opts.showDiff && prevRaw != "" {
			if diff, diffErr := watch.UnifiedDiff(prevRaw, raw); diffErr == nil {
				result.Diff = diff
			}
		}

		prevSchedule = s
		prevRaw = raw

		return result, nil
	}

	if opts.poll > 0 {
		watcher, err := newPollWatcher(opts.pollMode, inputPath, cfg.ConfigFile)
		if err != nil {
			return &ExitError{Code: 2, Err: err}
		}

		return watch.Poll(ctx, watch.PollOptions{
			Interval: opts.poll,
			Logger:   logger,
			Out:      cmd.ErrOrStderr(),
		}, watcher, runFn)
	}

	watchOpts := watch.Options{
		InputPath: inputPath,
		Debounce:  opts.debounce,
		Logger:    logger,
		Out:       cmd.ErrOrStderr(),
	}

	if cfg.ConfigFile != "" {
		watchOpts.ExtraFiles = []string{cfg.ConfigFile}
	}

	return watch.Run(ctx, watchOpts, runFn)
}

// newPollWatcher builds the polling change detector for --poll-mode.
// The mtime variant tracks multiple files, so the config file (when
// one is in use) triggers re-renders too; the content variant compares
// the input file only.
func newPollWatcher(mode, inputPath, configFile string) (watch.PollWatcher, error) {
	switch mode {
	case "content":
		return watch.NewContentWatcher(inputPath), nil
	case "mtime":
		paths := []string{inputPath}
		if configFile != "" {
			paths = append(paths, configFile)
		}

		return watch.NewMTimeWatcher(paths...), nil
	default:
		return nil, fmt.Errorf("unknown poll mode %q (supported: content, mtime)", mode)
	}
}

// reloadConfig re-reads the config file in use, falling back to the
// previous configuration when the file is missing or malformed.
func reloadConfig(cmd *cobra.Command, prev *config.Config) *config.Config {
	if prev.ConfigFile == "" {
		return prev
	}

	cfg, err := config.Load(cmd, prev.ConfigFile)
	if err != nil {
		return prev
	}

	return cfg
}

// readInputBestEffort reads the raw input text for diff reporting,
// keeping the previous text when the file is momentarily unreadable.
func readInputBestEffort(path, prev string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return prev
	}

	return string(data)
}
