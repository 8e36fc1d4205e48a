// Package gantt lays out a parsed schedule as a flat list of horizontal
// bars and renders them to a raster image.
package gantt

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ihincks/gantt/internal/schedule"
)

// Bar is a single horizontal bar bound to a row. Rows increase downward
// in input order; the renderer draws row 0 at the top, so the first task
// of the first section appears topmost.
type Bar struct {
	Row     int
	Start   float64
	Finish  float64
	Label   string
	Section string
	Color   drawing.Color
}

// LegendEntry maps a section to its representative swatch color.
type LegendEntry struct {
	Section string
	Color   drawing.Color
}

// Chart is the derived bar-chart model. It is rebuilt from scratch on
// every render; nothing in it is mutated incrementally.
type Chart struct {
	Bars   []Bar
	Labels []string
	Legend []LegendEntry
	Scale  *Scale

	opts Options
}

// Layout flattens the schedule depth-first — section order, then task
// order within a section — assigning a strictly increasing row to each
// task and a palette color to each section. Sections consume a palette
// slot even when empty, but only sections that drew at least one bar get
// a legend entry.
func Layout(s *schedule.Schedule, opts Options) (*Chart, error) {
	c := &Chart{
		Scale: buildScale(s),
		opts:  opts,
	}

	row := 0

	for i, sec := range s.Sections {
		color := PaletteColor(i)

		for _, task := range sec.Tasks {
			start := c.Scale.Position(task.Start)
			finish := c.Scale.Position(task.Finish)

			if finish < start {
				return nil, fmt.Errorf("section %q: task %q: finish %s precedes start %s",
					sec.Name, task.Label, task.Finish, task.Start)
			}

			c.Bars = append(c.Bars, Bar{
				Row:     row,
				Start:   start,
				Finish:  finish,
				Label:   task.Label,
				Section: sec.Name,
				Color:   color,
			})
			c.Labels = append(c.Labels, task.Label)
			row++
		}

		if len(sec.Tasks) > 0 {
			c.Legend = append(c.Legend, LegendEntry{Section: sec.Name, Color: color})
		}
	}

	return c, nil
}

// LayoutFile parses the schedule file at path and lays it out.
func LayoutFile(path string, opts Options) (*Chart, error) {
	s, err := schedule.ParseFile(path)
	if err != nil {
		return nil, err
	}

	return Layout(s, opts)
}

// Rows returns the number of bar rows.
func (c *Chart) Rows() int {
	return len(c.Bars)
}
