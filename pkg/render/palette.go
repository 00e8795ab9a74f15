package render

import (
	"image/color"
	"sort"
)

// Fixed ordered palettes. Node types and relationship types draw from
// separate palettes so the two legends never collide. Colors are assigned by
// descending frequency rank and cycle via modulo when a dataset has more
// distinct types than the palette has entries.
var (
	nodePalette = []color.RGBA{
		{0x4e, 0x79, 0xa7, 0xff}, // blue
		{0xf2, 0x8e, 0x2b, 0xff}, // orange
		{0x59, 0xa1, 0x4f, 0xff}, // green
		{0xe1, 0x57, 0x59, 0xff}, // red
		{0xaf, 0x7a, 0xa1, 0xff}, // purple
		{0xed, 0xc9, 0x48, 0xff}, // yellow
		{0x76, 0xb7, 0xb2, 0xff}, // teal
		{0xff, 0x9d, 0xa7, 0xff}, // pink
		{0x9c, 0x75, 0x5f, 0xff}, // brown
		{0xba, 0xb0, 0xac, 0xff}, // gray
	}

	relationshipPalette = []color.RGBA{
		{0x8c, 0xd1, 0x7d, 0xff},
		{0x86, 0xbc, 0xb6, 0xff},
		{0xf1, 0xce, 0x63, 0xff},
		{0xd3, 0x72, 0x95, 0xff},
		{0xa0, 0xcb, 0xe8, 0xff},
		{0xfa, 0xbf, 0xd2, 0xff},
		{0xb6, 0x99, 0x2d, 0xff},
		{0x49, 0x95, 0x94, 0xff},
	}
)

// ColorMap maps a type tag to its assigned color.
type ColorMap map[string]color.RGBA

// AssignColors builds deterministic color maps from the two frequency
// tables. Types are ranked by descending count with name as the tie-break,
// so the same dataset always yields the same mapping regardless of record
// or map iteration order.
func AssignColors(nodeTypes, relationshipTypes map[string]int) (ColorMap, ColorMap) {
	return assignFromPalette(nodeTypes, nodePalette),
		assignFromPalette(relationshipTypes, relationshipPalette)
}

func assignFromPalette(freq map[string]int, palette []color.RGBA) ColorMap {
	names := make([]string, 0, len(freq))
	for name := range freq {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if freq[names[i]] != freq[names[j]] {
			return freq[names[i]] > freq[names[j]]
		}
		return names[i] < names[j]
	})

	colors := make(ColorMap, len(names))
	for rank, name := range names {
		colors[name] = palette[rank%len(palette)]
	}
	return colors
}
