package nightwatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ReadFile parses a results file from disk.
func ReadFile(path string) (*Result, error) {
	f, err := os.Open(path) // #nosec G304 - path is supplied by the caller
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a results object from an io.Reader.
func Read(r io.Reader) (*Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode nightwatch results: %w", err)
	}
	return &res, nil
}

// ReadBytes is a convenience for parsing from a byte slice.
func ReadBytes(data []byte) (*Result, error) {
	return Read(bytes.NewReader(data))
}

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"Mon Jan 02 2006 15:04:05 GMT-0700", // Date.prototype.toString without the zone name
	"2006-01-02 15:04:05",
}

// ParseTimestamp converts a runner timestamp to epoch milliseconds.
func ParseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// "Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)"
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized timestamp %q", s)
}
