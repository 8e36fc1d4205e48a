package watch

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ihincks/gantt/internal/schedule"
)

// Change describes a single schedule difference between two consecutive
// renders.
type Change struct {
	// Kind is one of "section-added", "section-removed", "task-added",
	// or "task-removed".
	Kind string
	// Section names the affected section.
	Section string
	// Detail carries extra information, e.g. the task count delta.
	Detail string
}

// Diff compares two schedules and reports added/removed sections and
// per-section task-count changes.
func Diff(prev, curr *schedule.Schedule) []Change {
	var changes []Change

	prevCounts := taskCounts(prev)
	currCounts := taskCounts(curr)

	for _, sec := range prev.Sections {
		if _, ok := currCounts[sec.Name]; !ok {
			changes = append(changes, Change{Kind: "section-removed", Section: sec.Name})
		}
	}

	for _, sec := range curr.Sections {
		prevN, existed := prevCounts[sec.Name]
		if !existed {
			changes = append(changes, Change{
				Kind:    "section-added",
				Section: sec.Name,
				Detail:  fmt.Sprintf("%d task(s)", len(sec.Tasks)),
			})

			continue
		}

		switch n := len(sec.Tasks); {
		case n > prevN:
			changes = append(changes, Change{
				Kind:    "task-added",
				Section: sec.Name,
				Detail:  fmt.Sprintf("+%d", n-prevN),
			})
		case n < prevN:
			changes = append(changes, Change{
				Kind:    "task-removed",
				Section: sec.Name,
				Detail:  fmt.Sprintf("-%d", prevN-n),
			})
		}
	}

	return changes
}

// Summary returns a human-readable one-line summary of changes.
func Summary(changes []Change) string {
	var sectionsAdded, sectionsRemoved, tasksChanged int

	for _, c := range changes {
		switch c.Kind {
		case "section-added":
			sectionsAdded++
		case "section-removed":
			sectionsRemoved++
		case "task-added", "task-removed":
			tasksChanged++
		}
	}

	if sectionsAdded == 0 && sectionsRemoved == 0 && tasksChanged == 0 {
		return "no schedule changes"
	}

	parts := make([]string, 0, 3)

	if sectionsAdded > 0 {
		parts = append(parts, fmt.Sprintf("+%d section(s)", sectionsAdded))
	}

	if sectionsRemoved > 0 {
		parts = append(parts, fmt.Sprintf("-%d section(s)", sectionsRemoved))
	}

	if tasksChanged > 0 {
		parts = append(parts, fmt.Sprintf("~%d section(s) with task changes", tasksChanged))
	}

	return strings.Join(parts, ", ")
}

// UnifiedDiff renders a unified diff between the previous and current
// input text, for the watch command's --diff flag.
func UnifiedDiff(prev, curr string) (string, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(prev),
		B:        difflib.SplitLines(curr),
		FromFile: "previous",
		ToFile:   "current",
		Context:  2,
	})
	if err != nil {
		return "", fmt.Errorf("computing diff: %w", err)
	}

	return text, nil
}

func taskCounts(s *schedule.Schedule) map[string]int {
	counts := make(map[string]int, len(s.Sections))
	for _, sec := range s.Sections {
		counts[sec.Name] = len(sec.Tasks)
	}

	return counts
}
