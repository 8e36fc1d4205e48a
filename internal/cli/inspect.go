package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ihincks/gantt/internal/schedule"
)

type inspectOptions struct {
	format string
}

func newInspectCommand() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the parsed schedule without rendering",
		Long: `Inspect parses the schedule file and prints its sections and tasks,
which is useful for checking how the input is being interpreted before
rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json")

	return cmd
}

func runInspect(cmd *cobra.Command, inputPath string, opts *inspectOptions) error {
	s, err := schedule.ParseFile(inputPath)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	switch opts.format {
	case "text":
		return inspectText(cmd, s)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		if err := enc.Encode(s); err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("encoding schedule: %w", err)}
		}

		return nil
	default:
		return &ExitError{Code: 2, Err: fmt.Errorf("unknown format %q (supported: text, json)", opts.format)}
	}
}

func inspectText(cmd *cobra.Command, s *schedule.Schedule) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%d sections, %d tasks\n", len(s.Sections), s.TaskCount())

	tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	defer tw.Flush()

	for _, sec := range s.Sections {
		fmt.Fprintf(tw, "\n%s\t(%d tasks)\n", sec.Name, len(sec.Tasks))

		for i, task := range sec.Tasks {
			fmt.Fprintf(tw, "  %d\t%s\t%s → %s\n", i, task.Label, task.Start, task.Finish)
		}
	}

	return nil
}
