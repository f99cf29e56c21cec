package raster

import "strings"

// Palette is a background and stroke colour pair.
type Palette struct {
	Background string
	Stroke     string
}

// Palettes are the colour pairs the window cycles through.
var Palettes = []Palette{
	{"#000000", "#ffffff"},
	{"#ffffff", "#000000"},
	{"#0b1021", "#7fdbff"},
	{"#1a1410", "#f4c27a"},
	{"#f2efe6", "#c0392b"},
}

// NextPalette returns the palette after the one matching s. Styles that match
// none start the cycle from the first entry.
func NextPalette(s Style) Palette {
	for i, p := range Palettes {
		if strings.EqualFold(p.Background, s.Background) && strings.EqualFold(p.Stroke, s.Stroke) {
			return Palettes[(i+1)%len(Palettes)]
		}
	}
	return Palettes[0]
}
