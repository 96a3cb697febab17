package domain

import (
	"fmt"
	"strings"
	"time"
)

// timeFormats lists the timestamp renderings observed from the API,
// most common first. The backend emits RFC 1123 dates; older revisions
// emitted ISO 8601.
var timeFormats = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Time is a timestamp that tolerates the API's date renderings.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeFormats {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("domain: unrecognized timestamp %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
