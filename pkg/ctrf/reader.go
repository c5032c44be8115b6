package ctrf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadFile parses a CTRF report from disk.
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path) // #nosec G304 - path is supplied by the caller
	if err != nil {
		return nil, fmt.Errorf("open ctrf file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a CTRF report from an io.Reader.
func Read(r io.Reader) (*Report, error) {
	var doc Report
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode ctrf: %w", err)
	}

	if doc.Results.Tool.Name == "" {
		return nil, fmt.Errorf("missing results.tool.name")
	}

	return &doc, nil
}

// ReadBytes is a convenience for parsing from a byte slice.
func ReadBytes(data []byte) (*Report, error) {
	return Read(bytes.NewReader(data))
}

// FailedTests returns the failed tests of r in report order.
func FailedTests(r *Report) []Test {
	var failed []Test
	for _, t := range r.Results.Tests {
		if t.Status == StatusFailed {
			failed = append(failed, t)
		}
	}
	return failed
}
