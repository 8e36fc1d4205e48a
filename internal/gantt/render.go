package gantt

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Bar fill opacity, matching the classic translucent gantt look.
const barAlpha = 178

// plotArea is the pixel rectangle the bars are drawn into.
type plotArea struct {
	left, right, top, bottom int
}

func (p plotArea) width() int  { return p.right - p.left }
func (p plotArea) height() int { return p.bottom - p.top }

// Render draws the chart to w as a PNG. All drawing goes through the
// renderer handle returned by chart.PNG; there is no ambient canvas.
func (c *Chart) Render(w io.Writer, ro RenderOptions) error {
	width, height := ro.size()

	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("creating PNG renderer: %w", err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("loading default font: %w", err)
	}

	r.SetFont(font)

	// Background.
	r.SetFillColor(chart.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	area := c.computeArea(r, width, height)
	ticks := c.Scale.Ticks(c.opts.XTickInterval)

	c.drawGrid(r, area, ticks)
	c.drawBars(r, area)
	c.drawYLabels(r, area)
	c.drawXAxis(r, area, ticks)
	c.drawLegend(r, area)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}

	return nil
}

// computeArea sizes the plot rectangle around the tick labels. The left
// margin grows with the widest task label; the bottom reserves space for
// the x tick labels and the optional axis label. No frame is drawn
// around the plot.
func (c *Chart) computeArea(r chart.Renderer, width, height int) plotArea {
	r.SetFontSize(c.opts.YTickFontSize)

	maxLabel := 0
	for _, label := range c.Labels {
		if w := r.MeasureText(label).Width(); w > maxLabel {
			maxLabel = w
		}
	}

	bottom := height - int(c.opts.XTickFontSize) - 14
	if c.opts.XLabel != "" {
		bottom -= int(c.opts.XLabelFontSize) + 8
	}

	return plotArea{
		left:   maxLabel + 16,
		right:  width - 20,
		top:    16,
		bottom: bottom,
	}
}

// xpix converts an axis position to a pixel column.
func (c *Chart) xpix(area plotArea, v float64) int {
	span := c.Scale.Max - c.Scale.Min
	if span == 0 {
		span = 1
	}

	return area.left + int(math.Round((v-c.Scale.Min)/span*float64(area.width())))
}

// drawGrid draws dashed vertical grid lines at each major tick. Grid
// lines run on the x axis only.
func (c *Chart) drawGrid(r chart.Renderer, area plotArea, ticks []Tick) {
	r.SetStrokeColor(chart.ColorLightGray)
	r.SetStrokeWidth(1)
	r.SetStrokeDashArray([]float64{4, 4})

	for _, tick := range ticks {
		x := c.xpix(area, tick.Value)
		r.MoveTo(x, area.top)
		r.LineTo(x, area.bottom)
		r.Stroke()
	}

	r.SetStrokeDashArray(nil)
}

// drawBars draws each bar at half a row height, centered in its row.
// Zero-width bars render as a vertical line.
func (c *Chart) drawBars(r chart.Renderer, area plotArea) {
	if len(c.Bars) == 0 {
		return
	}

	rowH := float64(area.height()) / float64(len(c.Bars))
	barH := rowH * 0.5

	for _, bar := range c.Bars {
		center := float64(area.top) + (float64(bar.Row)+0.5)*rowH
		y0 := int(math.Round(center - barH/2))
		y1 := int(math.Round(center + barH/2))

		x0 := c.xpix(area, bar.Start)
		x1 := c.xpix(area, bar.Finish)

		fill := bar.Color.WithAlpha(barAlpha)

		if x1 == x0 {
			r.SetStrokeColor(fill)
			r.SetStrokeWidth(2)
			r.MoveTo(x0, y0)
			r.LineTo(x0, y1)
			r.Stroke()

			continue
		}

		r.SetFillColor(fill)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y0)
		r.LineTo(x1, y1)
		r.LineTo(x0, y1)
		r.Close()
		r.Fill()
	}
}

// drawYLabels writes each task label right-aligned against the plot,
// vertically centered on its row.
func (c *Chart) drawYLabels(r chart.Renderer, area plotArea) {
	if len(c.Labels) == 0 {
		return
	}

	r.SetFontColor(chart.ColorBlack)
	r.SetFontSize(c.opts.YTickFontSize)

	rowH := float64(area.height()) / float64(len(c.Labels))

	for row, label := range c.Labels {
		tw := r.MeasureText(label).Width()
		y := float64(area.top) + (float64(row)+0.5)*rowH + c.opts.YTickFontSize/3

		r.Text(label, area.left-8-tw, int(math.Round(y)))
	}
}

// drawXAxis writes the tick labels and the optional axis label.
func (c *Chart) drawXAxis(r chart.Renderer, area plotArea, ticks []Tick) {
	r.SetFontColor(chart.ColorBlack)
	r.SetFontSize(c.opts.XTickFontSize)

	tickY := area.bottom + int(c.opts.XTickFontSize) + 6

	for _, tick := range ticks {
		tw := r.MeasureText(tick.Label).Width()
		r.Text(tick.Label, c.xpix(area, tick.Value)-tw/2, tickY)
	}

	if c.opts.XLabel == "" {
		return
	}

	r.SetFontSize(c.opts.XLabelFontSize)

	tw := r.MeasureText(c.opts.XLabel).Width()
	x := area.left + area.width()/2 - tw/2
	y := tickY + int(c.opts.XLabelFontSize) + 8

	r.Text(c.opts.XLabel, x, y)
}

// drawLegend draws one swatch per section in the top-right corner of
// the plot area.
func (c *Chart) drawLegend(r chart.Renderer, area plotArea) {
	if len(c.Legend) == 0 {
		return
	}

	const (
		swatch = 12
		pad    = 8
	)

	r.SetFontSize(c.opts.LegendFontSize)

	maxText := 0
	for _, entry := range c.Legend {
		if w := r.MeasureText(entry.Section).Width(); w > maxText {
			maxText = w
		}
	}

	lineH := int(c.opts.LegendFontSize) + 8
	boxW := swatch + pad + maxText + 2*pad
	boxH := len(c.Legend)*lineH + pad

	x0 := area.right - boxW
	y0 := area.top + pad

	// Legend background with a light border.
	r.SetFillColor(chart.ColorWhite.WithAlpha(230))
	r.SetStrokeColor(chart.ColorLightGray)
	r.SetStrokeWidth(1)
	r.MoveTo(x0, y0)
	r.LineTo(x0+boxW, y0)
	r.LineTo(x0+boxW, y0+boxH)
	r.LineTo(x0, y0+boxH)
	r.Close()
	r.FillStroke()

	r.SetFontColor(chart.ColorBlack)

	for i, entry := range c.Legend {
		top := y0 + pad/2 + i*lineH

		r.SetFillColor(entry.Color.WithAlpha(barAlpha))
		r.MoveTo(x0+pad, top)
		r.LineTo(x0+pad+swatch, top)
		r.LineTo(x0+pad+swatch, top+swatch)
		r.LineTo(x0+pad, top+swatch)
		r.Close()
		r.Fill()

		r.Text(entry.Section, x0+pad+swatch+pad, top+swatch)
	}
}
