package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ihincks/gantt/internal/gantt"
	"github.com/ihincks/gantt/internal/schedule"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a schedule file for errors",
		Long: `Validate parses the schedule file and performs a full layout pass
without writing any output, reporting parse errors and layout problems
such as a task finishing before it starts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, inputPath string) error {
	s, err := schedule.ParseFile(inputPath)
	if err != nil {
		return &ExitError{Code: 3, Err: err}
	}

	if _, err := gantt.Layout(s, gantt.DefaultOptions()); err != nil {
		return &ExitError{Code: 3, Err: fmt.Errorf("laying out chart: %w", err)}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d sections, %d tasks)\n",
		inputPath, len(s.Sections), s.TaskCount())

	return nil
}
