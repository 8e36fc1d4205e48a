package schedule

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads sectioned CSV from r and produces the ordered schedule.
//
// Lines are processed top to bottom. Trimmed lines of length <= 1 and
// lines starting with '#' are ignored. A line starting with '*' opens a
// new section; the remainder, trimmed, is the section name, and the
// section is registered immediately so empty sections survive. Any
// other line splits on the first two commas into start, finish, and
// label — the label keeps any further commas.
func Parse(r io.Reader) (*Schedule, error) {
	s := &Schedule{}

	var current *Section

	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())

		switch {
		case len(line) <= 1 || strings.HasPrefix(line, "#"):
			// blank or comment

		case strings.HasPrefix(line, "*"):
			s.Sections = append(s.Sections, Section{
				Name: strings.TrimSpace(line[1:]),
			})
			current = &s.Sections[len(s.Sections)-1]

		default:
			if current == nil {
				return nil, &MissingSectionError{Line: lineNo}
			}

			task, err := parseTaskLine(line, lineNo)
			if err != nil {
				return nil, err
			}

			current.Tasks = append(current.Tasks, task)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return s, nil
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return s, nil
}

// parseTaskLine splits a task line on its first two commas. Only those
// two commas are structural: everything after them is the label.
func parseTaskLine(line string, lineNo int) (Task, error) {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) < 2 {
		return Task{}, &MalformedLineError{Line: lineNo, Text: line}
	}

	var label string
	if len(fields) == 3 {
		label = strings.TrimSpace(fields[2])
	}

	return Task{
		Start:  ParseValue(strings.TrimSpace(fields[0])),
		Finish: ParseValue(strings.TrimSpace(fields[1])),
		Label:  label,
	}, nil
}
