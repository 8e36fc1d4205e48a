package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ihincks/gantt/internal/config"
	"github.com/ihincks/gantt/internal/gantt"
	"github.com/ihincks/gantt/internal/logging"
	"github.com/ihincks/gantt/internal/output"
	"github.com/ihincks/gantt/internal/schedule"
)

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a schedule file to a PNG image",
		Long: `Render parses a sectioned CSV schedule file, lays out one
horizontal bar per task (grouped and colored by section, first task at
the top), and writes the chart as a PNG image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0])
		},
	}

	registerChartFlags(cmd)

	return cmd
}

func runRender(ctx context.Context, inputPath string) error {
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	result, err := renderOnce(ctx, inputPath, cfg)
	if err != nil {
		return err
	}

	logger.Info("chart rendered",
		slog.String("input", inputPath),
		slog.String("output", cfg.Output),
		slog.Int("sections", len(result.Sections)),
		slog.Int("tasks", result.TaskCount()),
	)

	return nil
}

// renderOnce runs the full parse → layout → render → write pipeline and
// returns the parsed schedule. Shared between render and watch.
func renderOnce(ctx context.Context, inputPath string, cfg *config.Config) (*schedule.Schedule, error) {
	logger := logging.FromContext(ctx)

	s, err := schedule.ParseFile(inputPath)
	if err != nil {
		return nil, &ExitError{Code: 1, Err: err}
	}

	chart, err := gantt.Layout(s, chartOptions(cfg))
	if err != nil {
		return nil, &ExitError{Code: 1, Err: fmt.Errorf("laying out chart: %w", err)}
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, renderOptions(cfg)); err != nil {
		return nil, &ExitError{Code: 1, Err: fmt.Errorf("rendering chart: %w", err)}
	}

	w := output.NewFileWriter(cfg.Output, output.WithLogger(logger))
	if err := w.Write(buf.Bytes()); err != nil {
		return nil, &ExitError{Code: 6, Err: fmt.Errorf("writing output: %w", err)}
	}

	return s, nil
}
