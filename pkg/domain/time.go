package domain

import (
	"fmt"
	"strings"
	"time"
)

// isoLayouts are the timestamp forms the backend emits. Python's
// datetime.utcnow().isoformat() carries no timezone designator, so a plain
// RFC3339 decode rejects it; zone-less values are interpreted as UTC.
var isoLayouts = []string{ //nolint: gochecknoglobals
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Time is a time.Time that decodes both RFC3339 and the backend's zone-less
// ISO-8601 timestamps. It marshals as RFC3339Nano in UTC, or null when zero.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time { return Time{Time: t} }

// UnmarshalJSON implements json.Unmarshaler. Empty strings and null decode to
// the zero Time.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}

		return nil
	}

	for _, layout := range isoLayouts {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t.Time = parsed.UTC()

		return nil
	}

	return fmt.Errorf("could not parse timestamp %q", s)
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
