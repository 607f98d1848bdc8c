package geomap

import (
	"math"
	"strings"
	"testing"
)

var delhi = LatLng{Lat: 28.6139, Lng: 77.2090}

func TestProjectOrigin(t *testing.T) {
	x, y := Project(LatLng{}, 0)
	if math.Abs(x-128) > 1e-9 || math.Abs(y-128) > 1e-9 {
		t.Errorf("Project(0,0) at zoom 0 = %v,%v; want 128,128", x, y)
	}
}

func TestUnprojectRoundTrip(t *testing.T) {
	x, y := Project(delhi, 12)
	got := Unproject(x, y, 12)
	if math.Abs(got.Lat-delhi.Lat) > 1e-9 || math.Abs(got.Lng-delhi.Lng) > 1e-9 {
		t.Errorf("Unproject(Project(%v)) = %v", delhi, got)
	}
}

func TestTileAt(t *testing.T) {
	x, y := TileAt(delhi, 10)
	if x != 731 || y != 426 {
		t.Errorf("TileAt(delhi, 10) = %d,%d; want 731,426", x, y)
	}

	// Clamped at the poles
	_, y = TileAt(LatLng{Lat: 89.9, Lng: 0}, 3)
	if y != 0 {
		t.Errorf("TileAt near north pole y = %d, want 0", y)
	}
}

func TestTileAtMatchesProject(t *testing.T) {
	points := []LatLng{
		delhi,
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 51.5074, Lng: -0.1278},
		{Lat: 40.7128, Lng: -74.0060},
	}
	for _, ll := range points {
		for _, z := range []int{0, 5, 12, 17} {
			px, py := Project(ll, z)
			x, y := TileAt(ll, z)
			if x != int(px/TileSize) || y != int(py/TileSize) {
				t.Errorf("TileAt(%v, %d) = %d,%d; Project gives %d,%d", ll, z, x, y, int(px/TileSize), int(py/TileSize))
			}
		}
	}

	// East edge stays inside the grid
	if x, _ := TileAt(LatLng{Lat: 0, Lng: 180}, 4); x != 15 {
		t.Errorf("TileAt(lng 180, 4) x = %d, want 15", x)
	}
}

func TestCenterTileURL(t *testing.T) {
	m := New(delhi, 10)
	if got := m.CenterTileURL(); got != "" {
		t.Errorf("CenterTileURL without tiles = %q, want empty", got)
	}

	m.AddTileLayer(TileLayer{
		Template:    "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
	})
	want := "https://a.tile.openstreetmap.org/10/731/426.png"
	if got := m.CenterTileURL(); got != want {
		t.Errorf("CenterTileURL() = %q, want %q", got, want)
	}
	if m.Attribution() != "© OpenStreetMap contributors" {
		t.Errorf("Attribution() = %q", m.Attribution())
	}
}

func TestLayers(t *testing.T) {
	m := New(delhi, 10)
	a := NewMarker(delhi).BindPopup("a").AddTo(m)
	b := NewMarker(LatLng{Lat: 28.7, Lng: 77.3}).AddTo(m)
	m.AddLayer(a)

	if m.LayerCount() != 2 {
		t.Fatalf("LayerCount() = %d, want 2", m.LayerCount())
	}

	m.RemoveLayer(a)
	if m.HasLayer(a) {
		t.Error("a still on map after RemoveLayer")
	}
	if !m.HasLayer(b) {
		t.Error("b removed by mistake")
	}
	if a.Popup() != "a" {
		t.Errorf("Popup() = %q, want %q", a.Popup(), "a")
	}
}

func TestZoomClamp(t *testing.T) {
	m := New(delhi, 25)
	if m.Zoom() != MaxZoom {
		t.Errorf("Zoom() = %d, want %d", m.Zoom(), MaxZoom)
	}
	m.SetView(delhi, 0)
	m.ZoomOut()
	if m.Zoom() != MinZoom {
		t.Errorf("Zoom() = %d, want %d", m.Zoom(), MinZoom)
	}
	m.ResetView()
	if m.Zoom() != MaxZoom {
		t.Errorf("ResetView zoom = %d, want %d", m.Zoom(), MaxZoom)
	}
}

func TestPlace(t *testing.T) {
	m := New(delhi, 10)
	center := NewMarker(delhi).AddTo(m)
	near := NewMarker(LatLng{Lat: delhi.Lat + 0.05, Lng: delhi.Lng + 0.05}).AddTo(m)
	far := NewMarker(LatLng{Lat: 51.5, Lng: -0.12}).AddTo(m)

	got := map[*Marker]Placement{}
	for _, p := range m.Place(40, 20) {
		got[p.Marker] = p
	}

	if p := got[center]; p.Col != 20 || p.Row != 10 || !p.Visible {
		t.Errorf("center placement = %+v, want col 20 row 10 visible", p)
	}
	// ~36px east and ~41px north at zoom 10
	if p := got[near]; p.Col != 24 || p.Row != 7 || !p.Visible {
		t.Errorf("near placement = %+v, want col 24 row 7 visible", p)
	}
	if got[far].Visible {
		t.Error("London should be off-screen from Delhi at zoom 10")
	}
}

func TestRender(t *testing.T) {
	m := New(delhi, 10)
	NewMarker(LatLng{Lat: delhi.Lat + 0.05, Lng: delhi.Lng + 0.05}).AddTo(m)

	out := m.Render(40, 20, func(*Marker) string { return "X" })
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("rendered %d lines, want 20", len(lines))
	}
	if r := []rune(lines[7]); r[24] != 'X' {
		t.Errorf("marker not drawn at row 7 col 24: %q", lines[7])
	}
	if r := []rune(lines[10]); r[20] != '+' {
		t.Errorf("center cross missing: %q", lines[10])
	}
}
