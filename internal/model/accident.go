package model

import (
	"encoding/json"
	"fmt"
)

// AccidentStatus is the /accident_status payload
type AccidentStatus struct {
	Accident bool `json:"accident"`
	Severity any  `json:"severity"`
}

// AlertText is the overlay message for a detected accident
func AlertText(severity any) string {
	return fmt.Sprintf("ACCIDENT DETECTED! Severity: %s", FormatValue(severity))
}

// UploadResult is the /upload_video payload. Exactly one field is
// normally set. Error holds whatever the backend sent, Undefined when the
// key is missing.
type UploadResult struct {
	Filename string
	Error    any
}

// UnmarshalJSON accepts any JSON value for both fields. A falsy filename
// counts as no filename.
func (r *UploadResult) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Filename = ""
	if v, ok := raw["filename"]; ok && Truthy(v) {
		r.Filename = FormatValue(v)
	}

	r.Error = Undefined
	if v, ok := raw["error"]; ok {
		r.Error = v
	}
	return nil
}

// FailureText is the dialog shown when the backend returns no filename
func (r UploadResult) FailureText() string {
	return "Upload failed: " + FormatValue(r.Error)
}
