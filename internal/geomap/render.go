package geomap

import (
	"math"
	"strings"
)

// Placement is where a marker lands in a width x height cell viewport
type Placement struct {
	Marker  *Marker
	Col     int
	Row     int
	Visible bool
}

// Place projects every layer into a viewport centred on the map center
func (m *Map) Place(width, height int) []Placement {
	cx, cy := Project(m.center, m.zoom)

	placements := make([]Placement, 0, len(m.layers))
	for _, mk := range m.layers {
		x, y := Project(mk.pos, m.zoom)
		col := width/2 + int(math.Floor((x-cx)/CellWidthPx))
		row := height/2 + int(math.Floor((y-cy)/CellHeightPx))
		placements = append(placements, Placement{
			Marker:  mk,
			Col:     col,
			Row:     row,
			Visible: col >= 0 && col < width && row >= 0 && row < height,
		})
	}
	return placements
}

// Render draws the viewport. glyph decides how each visible marker looks;
// later layers are drawn on top of earlier ones.
func (m *Map) Render(width, height int, glyph func(*Marker) string) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	grid := make([][]string, height)
	for r := range grid {
		grid[r] = make([]string, width)
		for c := range grid[r] {
			switch {
			case r%4 == 0 && c%8 == 0:
				grid[r][c] = "·"
			default:
				grid[r][c] = " "
			}
		}
	}
	grid[height/2][width/2] = "+"

	for _, p := range m.Place(width, height) {
		if !p.Visible {
			continue
		}
		grid[p.Row][p.Col] = glyph(p.Marker)
	}

	lines := make([]string, height)
	for r, row := range grid {
		lines[r] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
