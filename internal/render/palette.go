package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const DefaultPalette = "office"

var palettes = map[string][]string{
	"office":    {"#4472c4", "#ed7d31", "#a5a5a5", "#ffc000", "#5b9bd5", "#70ad47"},
	"colorful":  {"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4", "#42d4f4"},
	"warm":      {"#c0392b", "#e67e22", "#f1c40f", "#d35400", "#e74c3c", "#f39c12"},
	"cool":      {"#1abc9c", "#3498db", "#9b59b6", "#16a085", "#2980b9", "#8e44ad"},
	"grayscale": {"#252525", "#525252", "#737373", "#969696", "#bdbdbd", "#d9d9d9"},
}

// PaletteNames lists the built in palettes in a stable order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// PaletteValues returns the hex colors of a built in palette.
func PaletteValues(name string) ([]string, bool) {
	v, ok := palettes[name]
	return slices.Clone(v), ok
}

// SetPalette selects a palette by name. custom, when not empty, overrides the
// named colors.
func (r *Renderer) SetPalette(name string, custom []string) error {
	values := custom
	if len(values) == 0 {
		var ok bool
		if values, ok = palettes[name]; !ok {
			return fmt.Errorf("unknown palette %q", name)
		}
	}
	colors := make([]drawing.Color, 0, len(values))
	for _, v := range values {
		if !strings.HasPrefix(v, "#") || (len(v) != 4 && len(v) != 7) {
			return fmt.Errorf("invalid color %q", v)
		}
		colors = append(colors, drawing.ColorFromHex(strings.TrimPrefix(v, "#")))
	}
	r.paletteName = name
	r.palette = colors
	r.paletteHex = slices.Clone(values)
	return nil
}

// PaletteHex returns the active palette as "#rrggbb" strings.
func (r *Renderer) PaletteHex() []string { return slices.Clone(r.paletteHex) }
