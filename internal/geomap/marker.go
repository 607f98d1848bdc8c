package geomap

// Marker is a pin with an optional popup
type Marker struct {
	pos   LatLng
	popup string
}

func NewMarker(pos LatLng) *Marker {
	return &Marker{pos: pos}
}

// BindPopup attaches popup text and returns the marker for chaining
func (mk *Marker) BindPopup(text string) *Marker {
	mk.popup = text
	return mk
}

// AddTo adds the marker to m and returns it for chaining
func (mk *Marker) AddTo(m *Map) *Marker {
	m.AddLayer(mk)
	return mk
}

func (mk *Marker) LatLng() LatLng { return mk.pos }
func (mk *Marker) Popup() string  { return mk.popup }
