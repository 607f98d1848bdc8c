package model

// PopupText lists time, severity and description of an entry for its map
// marker.
func PopupText(e LogEntry) string {
	return "Time: " + e.Cell(FieldTimestamp) +
		"\nSeverity: " + e.Cell(FieldSeverity) +
		"\nDescription: " + e.Cell(FieldDescription)
}
