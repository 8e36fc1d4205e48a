package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ihincks/gantt/internal/output"
	"github.com/ihincks/gantt/internal/schedule"
)

type exportOptions struct {
	format string
	output string
}

func newExportCommand() *cobra.Command {
	opts := &exportOptions{}

	registry := output.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the parsed schedule as YAML or JSON",
		Long: `Export parses the schedule file and writes it out in a structured
format, for feeding into other tools.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts, registry)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "yaml", "export format: yaml, json")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, inputPath string, opts *exportOptions, registry *output.Registry) error {
	s, err := schedule.ParseFile(inputPath)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	data, err := marshalSchedule(s, opts.format)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	factory, err := registry.Writer(opts.format)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	if err := factory(opts.output).Write(data); err != nil {
		return &ExitError{Code: 6, Err: fmt.Errorf("writing export: %w", err)}
	}

	return nil
}

func marshalSchedule(s *schedule.Schedule, format string) ([]byte, error) {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("encoding schedule: %w", err)
		}

		return data, nil
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding schedule: %w", err)
		}

		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (supported: yaml, json)", format)
	}
}
