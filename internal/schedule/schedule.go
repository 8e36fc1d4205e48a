// Package schedule defines the sectioned-CSV input format and its parser.
//
// A schedule file groups tasks into named sections:
//
//	*Phase 1
//	0, 3, Design the thing
//	3, 6, Build the thing
//
//	*Phase 2
//	2, 9, Integrate
//
// Lines starting with '*' open a section, lines starting with '#' and
// blank lines are ignored, and every other line is a task of the form
// start,finish,label. Section order and task order are significant and
// determine top-to-bottom plotting order.
package schedule

// Task is a single bar: a start and finish endpoint plus a label.
type Task struct {
	Start  Value  `yaml:"start" json:"start"`
	Finish Value  `yaml:"finish" json:"finish"`
	Label  string `yaml:"label" json:"label"`
}

// Section is a named, ordered group of tasks. All tasks in a section
// share a color in the rendered chart.
type Section struct {
	Name  string `yaml:"name" json:"name"`
	Tasks []Task `yaml:"tasks" json:"tasks"`
}

// Schedule is the parsed input: an ordered list of sections.
type Schedule struct {
	Sections []Section `yaml:"sections" json:"sections"`
}

// TaskCount returns the total number of tasks across all sections.
func (s *Schedule) TaskCount() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Tasks)
	}

	return n
}

// Section returns the section with the given name, or nil.
func (s *Schedule) Section(name string) *Section {
	for i := range s.Sections {
		if s.Sections[i].Name == name {
			return &s.Sections[i]
		}
	}

	return nil
}
