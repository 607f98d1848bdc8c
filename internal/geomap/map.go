// Package geomap is a small slippy-map model for the terminal: a view
// (center + zoom), a tile layer and a set of marker layers placed with the
// Web Mercator projection.
package geomap

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/project"
)

const (
	TileSize = 256

	MinZoom = 0
	MaxZoom = 19

	// Largest latitude Web Mercator can show
	MaxLatitude = 85.0511287798

	// Approximate pixel size of one terminal cell
	CellWidthPx  = 8
	CellHeightPx = 16
)

// LatLng is a geographic coordinate in degrees
type LatLng struct {
	Lat float64
	Lng float64
}

// TileLayer describes where tiles come from. Template uses the usual
// {s}, {z}, {x} and {y} placeholders.
type TileLayer struct {
	Template    string
	Attribution string
}

// URL expands the template for a tile
func (t TileLayer) URL(z, x, y int) string {
	r := strings.NewReplacer(
		"{s}", "a",
		"{z}", strconv.Itoa(z),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	)
	return r.Replace(t.Template)
}

// Map holds the view state and every layer currently on the map
type Map struct {
	center LatLng
	zoom   int
	home   LatLng
	homeZ  int
	tiles  *TileLayer
	layers []*Marker
}

// New creates a map looking at center. The initial view is remembered for
// ResetView.
func New(center LatLng, zoom int) *Map {
	zoom = clampZoom(zoom)
	return &Map{
		center: center,
		zoom:   zoom,
		home:   center,
		homeZ:  zoom,
	}
}

// SetView moves the map
func (m *Map) SetView(center LatLng, zoom int) {
	m.center = center
	m.zoom = clampZoom(zoom)
}

// ResetView returns to the view the map was created with
func (m *Map) ResetView() {
	m.SetView(m.home, m.homeZ)
}

func (m *Map) Center() LatLng { return m.center }
func (m *Map) Zoom() int      { return m.zoom }

func (m *Map) ZoomIn()  { m.zoom = clampZoom(m.zoom + 1) }
func (m *Map) ZoomOut() { m.zoom = clampZoom(m.zoom - 1) }

// AddTileLayer sets the base layer
func (m *Map) AddTileLayer(t TileLayer) {
	m.tiles = &t
}

// Attribution of the base layer, empty without one
func (m *Map) Attribution() string {
	if m.tiles == nil {
		return ""
	}
	return m.tiles.Attribution
}

// CenterTileURL is the address of the tile under the map center
func (m *Map) CenterTileURL() string {
	if m.tiles == nil {
		return ""
	}
	x, y := TileAt(m.center, m.zoom)
	return m.tiles.URL(m.zoom, x, y)
}

// AddLayer puts a marker on the map. Adding a marker twice is a no-op.
func (m *Map) AddLayer(mk *Marker) {
	if mk == nil || m.HasLayer(mk) {
		return
	}
	m.layers = append(m.layers, mk)
}

// RemoveLayer takes a marker off the map
func (m *Map) RemoveLayer(mk *Marker) {
	for i, l := range m.layers {
		if l == mk {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return
		}
	}
}

func (m *Map) HasLayer(mk *Marker) bool {
	for _, l := range m.layers {
		if l == mk {
			return true
		}
	}
	return false
}

func (m *Map) LayerCount() int { return len(m.layers) }

// halfWorld is half the Web Mercator world width in meters
const halfWorld = math.Pi * orb.EarthRadius

// Project converts a coordinate to world pixel coordinates at zoom
func Project(ll LatLng, zoom int) (x, y float64) {
	lat := math.Max(-MaxLatitude, math.Min(MaxLatitude, ll.Lat))
	merc := project.WGS84.ToMercator(orb.Point{ll.Lng, lat})

	scale := float64(TileSize) * math.Exp2(float64(zoom))
	x = (merc.X() + halfWorld) / (2 * halfWorld) * scale
	y = (halfWorld - merc.Y()) / (2 * halfWorld) * scale
	return x, y
}

// Unproject is the inverse of Project
func Unproject(x, y float64, zoom int) LatLng {
	scale := float64(TileSize) * math.Exp2(float64(zoom))
	merc := orb.Point{
		x/scale*2*halfWorld - halfWorld,
		halfWorld - y/scale*2*halfWorld,
	}
	p := project.Mercator.ToWGS84(merc)
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// TileAt returns the tile column and row containing ll
func TileAt(ll LatLng, zoom int) (x, y int) {
	lat := math.Max(-MaxLatitude, math.Min(MaxLatitude, ll.Lat))
	lng := math.Max(-180, math.Min(180, ll.Lng))

	t := maptile.At(orb.Point{lng, lat}, maptile.Zoom(clampZoom(zoom)))
	max := int(math.Exp2(float64(zoom))) - 1
	return clampInt(int(t.X), 0, max), clampInt(int(t.Y), 0, max)
}

func clampZoom(z int) int {
	return clampInt(z, MinZoom, MaxZoom)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
