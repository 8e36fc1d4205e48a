package gantt

// Default presentation values.
const (
	DefaultFontSize = 14.0
	DefaultWidth    = 1000
	DefaultHeight   = 400
)

// Options controls chart presentation. Every field has a default and is
// independently overridable.
type Options struct {
	// YTickFontSize is the font size of the task labels on the y axis.
	YTickFontSize float64

	// XTickFontSize is the font size of the x-axis tick labels.
	XTickFontSize float64

	// XLabelFontSize is the font size of the x-axis label.
	XLabelFontSize float64

	// LegendFontSize is the font size of the legend entries.
	LegendFontSize float64

	// XTickInterval is the spacing between x-axis major ticks.
	// Zero selects an interval automatically. Ignored for
	// categorical axes, which place one tick per token.
	XTickInterval float64

	// XLabel is the x-axis label text. Empty means no label.
	XLabel string
}

// DefaultOptions returns the default presentation options.
func DefaultOptions() Options {
	return Options{
		YTickFontSize:  DefaultFontSize,
		XTickFontSize:  DefaultFontSize,
		XLabelFontSize: DefaultFontSize,
		LegendFontSize: DefaultFontSize,
	}
}

// RenderOptions controls the output raster.
type RenderOptions struct {
	// Width and Height of the output image in pixels. Zero values
	// fall back to DefaultWidth / DefaultHeight.
	Width  int
	Height int
}

func (ro RenderOptions) size() (int, int) {
	w, h := ro.Width, ro.Height

	if w <= 0 {
		w = DefaultWidth
	}

	if h <= 0 {
		h = DefaultHeight
	}

	return w, h
}
