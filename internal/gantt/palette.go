package gantt

import "github.com/wcharczuk/go-chart/v2/drawing"

// DefaultPalette is the fixed, repeating section color cycle.
var DefaultPalette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// PaletteColor returns the color for the index-th section, cycling when
// sections outnumber palette entries.
func PaletteColor(index int) drawing.Color {
	return DefaultPalette[index%len(DefaultPalette)]
}
