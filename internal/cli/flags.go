package cli

import (
	"github.com/spf13/cobra"

	"github.com/ihincks/gantt/internal/config"
	"github.com/ihincks/gantt/internal/gantt"
)

// registerChartFlags adds the shared presentation and output flags used
// by render and watch. The bound variables only carry the flag
// defaults; effective values come from the merged Config so the config
// file and environment are honored.
func registerChartFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	// Output flags.
	f.StringP("output", "o", "gantt.png", "output image path")
	f.Int("width", gantt.DefaultWidth, "output image width in pixels")
	f.Int("height", gantt.DefaultHeight, "output image height in pixels")

	// Presentation flags.
	f.Float64("ytick-font-size", gantt.DefaultFontSize, "font size of the task labels")
	f.Float64("xtick-font-size", gantt.DefaultFontSize, "font size of the x-axis tick labels")
	f.Float64("xlabel-font-size", gantt.DefaultFontSize, "font size of the x-axis label")
	f.Float64("legend-font-size", gantt.DefaultFontSize, "font size of the legend entries")
	f.Float64("xtick-interval", 0, "x-axis major tick spacing (0 = automatic)")
	f.String("xlabel", "", "x-axis label text")
}

// chartOptions extracts the layout options from the merged config.
func chartOptions(cfg *config.Config) gantt.Options {
	return gantt.Options{
		YTickFontSize:  cfg.YTickFontSize,
		XTickFontSize:  cfg.XTickFontSize,
		XLabelFontSize: cfg.XLabelFontSize,
		LegendFontSize: cfg.LegendFontSize,
		XTickInterval:  cfg.XTickInterval,
		XLabel:         cfg.XLabel,
	}
}

// renderOptions extracts the raster options from the merged config.
func renderOptions(cfg *config.Config) gantt.RenderOptions {
	return gantt.RenderOptions{
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}
