// internal/model/stats.go
package model

import (
	"encoding/json"
	"time"
)

// Stats is the /stats payload. AccidentCount is kept as decoded, so 7.0
// and null reach the counter as sent.
type Stats struct {
	AccidentCount any `json:"accident_count"`

	// Set locally when the response arrives
	Timestamp time.Time `json:"-"`
}

// UnmarshalJSON marks a missing accident_count as Undefined
func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, ok := raw["accident_count"]
	if !ok {
		v = Undefined
	}
	s.AccidentCount = v
	return nil
}

// CounterText is the live counter line
func (s Stats) CounterText() string {
	return "Accidents Today: " + FormatValue(s.AccidentCount)
}

// Count is the counter as a number for charts and history. ok is false
// when the backend sent something that is not a finite number.
func (s Stats) Count() (float64, bool) {
	return ToNumber(s.AccidentCount)
}
