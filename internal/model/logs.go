// internal/model/logs.go
package model

// Positional indexes of a LogEntry as served by /logs.
const (
	FieldID = iota
	FieldTimestamp
	FieldLatitude
	FieldLongitude
	FieldSeverity
	FieldDescription

	LogEntryFields
)

// LogEntry is one detection record. The backend sends it as a bare JSON
// array, so fields are only reachable by position.
type LogEntry []any

// Field returns the raw value at index i, or Undefined when the entry is short.
func (e LogEntry) Field(i int) any {
	if i < 0 || i >= len(e) {
		return Undefined
	}
	return e[i]
}

// Cell renders field i the same way the table shows it.
func (e LogEntry) Cell(i int) string {
	return FormatValue(e.Field(i))
}

// HasCoordinates reports whether both latitude and longitude are truthy.
// A coordinate of exactly 0 counts as missing.
func (e LogEntry) HasCoordinates() bool {
	return Truthy(e.Field(FieldLatitude)) && Truthy(e.Field(FieldLongitude))
}

// Coordinates returns latitude and longitude as numbers. ok is false when
// HasCoordinates is false or either value is not numeric.
func (e LogEntry) Coordinates() (lat, lng float64, ok bool) {
	if !e.HasCoordinates() {
		return 0, 0, false
	}
	lat, latOK := ToNumber(e.Field(FieldLatitude))
	lng, lngOK := ToNumber(e.Field(FieldLongitude))
	if !latOK || !lngOK {
		return 0, 0, false
	}
	return lat, lng, true
}
