package lead

import (
	"bytes"
	"encoding/json"
	"time"
)

// StringList decodes a JSON value that may be a single string, an array of
// strings, or null. Prospect-facing clients send style preferences in
// either shape.
type StringList []string

// UnmarshalJSON implements lenient string-or-list decoding.
func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = nil
		return nil
	}

	if trimmed[0] == '[' {
		var values []string
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return err
		}
		*s = values
		return nil
	}

	var single string
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	*s = StringList{single}
	return nil
}

// Payload is the submission body accepted by the intake endpoint. Fit and
// Budget are kept raw so the record preserves whatever shape the caller
// sent (string, list, or absent).
type Payload struct {
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Style  StringList      `json:"style"`
	Fit    json.RawMessage `json:"fit"`
	Budget json.RawMessage `json:"budget"`
	Notes  string          `json:"notes"`
}

// Record is the persisted, immutable form of one completed intake session.
type Record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Style     []string        `json:"style"`
	Fit       json.RawMessage `json:"fit,omitempty"`
	Budget    json.RawMessage `json:"budget,omitempty"`
	Notes     string          `json:"notes"`
	Score     int             `json:"score"`
	CreatedAt time.Time       `json:"createdAt"`
}

// FirstOf returns the first string entry of a raw string-or-list value, or
// "" when the value is absent or not string-shaped.
func FirstOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var values StringList
	if err := json.Unmarshal(raw, &values); err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}
