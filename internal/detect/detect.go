// Package detect sniffs input to determine its format.
package detect

import (
	"bytes"
	"encoding/json"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown    Format = iota
	Nightwatch        // Nightwatch results object
	GoTestJSON        // go test -json NDJSON stream
	CTRF              // CTRF report document
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case Nightwatch:
		return "nightwatch"
	case GoTestJSON:
		return "go test -json"
	case CTRF:
		return "ctrf"
	default:
		return "unknown"
	}
}

// Sniff examines input to determine its format. Whole-document formats
// (Nightwatch, CTRF) need the complete input; go test -json only needs the
// first line.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 || data[0] != '{' {
		return Unknown
	}

	// Whole documents first; NDJSON fails to unmarshal as a single value.
	var probe struct {
		Modules json.RawMessage `json:"modules"`
		Results *struct {
			Tool json.RawMessage `json:"tool"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &probe); err == nil {
		switch {
		case probe.Results != nil && len(probe.Results.Tool) > 0:
			return CTRF
		case len(probe.Modules) > 0 && probe.Modules[0] == '{':
			return Nightwatch
		}
	}

	if isGoTestJSON(data) {
		return GoTestJSON
	}
	return Unknown
}

func isGoTestJSON(data []byte) bool {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}

	var event struct {
		Action  string `json:"Action"`
		Package string `json:"Package"`
	}
	if err := json.Unmarshal(firstLine, &event); err != nil {
		return false
	}

	validActions := map[string]bool{
		"start": true, "run": true, "pause": true, "cont": true,
		"pass": true, "bench": true, "fail": true, "output": true, "skip": true,
	}
	return validActions[event.Action]
}
