package schedule

import "fmt"

// MalformedLineError reports a task line with fewer than two
// comma-separated fields.
type MalformedLineError struct {
	Line int
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: malformed task line %q: expected start,finish[,label]", e.Line, e.Text)
}

// MissingSectionError reports a task line that appears before any
// '*section' header, so there is no section to attach it to.
type MissingSectionError struct {
	Line int
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("line %d: task line before any *section header", e.Line)
}
