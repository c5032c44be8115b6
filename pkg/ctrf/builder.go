package ctrf

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Builder constructs CTRF documents.
type Builder struct {
	doc *Report
}

// NewBuilder creates a CTRF builder for the given runner.
func NewBuilder(toolName string) *Builder {
	return &Builder{
		doc: &Report{
			Results: Results{
				Tool:  Tool{Name: toolName},
				Tests: []Test{},
			},
		},
	}
}

// AddTest appends one test outcome. Unknown states are recorded as other.
func (b *Builder) AddTest(name string, status Status, durationMs int64) *Builder {
	if !status.Valid() {
		status = StatusOther
	}
	if durationMs < 0 {
		durationMs = 0
	}
	b.doc.Results.Tests = append(b.doc.Results.Tests, Test{
		Name:     name,
		Status:   status,
		Duration: durationMs,
	})
	return b
}

// AddTests appends tests in order.
func (b *Builder) AddTests(tests []Test) *Builder {
	for _, t := range tests {
		b.AddTest(t.Name, t.Status, t.Duration)
	}
	return b
}

// SetTimes records the summary window in epoch milliseconds.
func (b *Builder) SetTimes(start, stop int64) *Builder {
	b.doc.Results.Summary.Start = start
	b.doc.Results.Summary.Stop = stop
	return b
}

// SetEnvironment attaches env unless it has no fields set.
func (b *Builder) SetEnvironment(env Environment) *Builder {
	if env.IsEmpty() {
		b.doc.Results.Environment = nil
		return b
	}
	b.doc.Results.Environment = &env
	return b
}

// Report returns the constructed document with its counts brought up to date.
func (b *Builder) Report() *Report {
	counts := Summarize(b.doc.Results.Tests)
	counts.Start = b.doc.Results.Summary.Start
	counts.Stop = b.doc.Results.Summary.Stop
	b.doc.Results.Summary = counts
	return b.doc
}

// WriteTo writes the document as indented JSON to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := Marshal(b.Report())
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteFile writes the document to path, replacing any existing file.
func (b *Builder) WriteFile(path string) error {
	data, err := Marshal(b.Report())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - report is meant to be shared
		return fmt.Errorf("write ctrf report: %w", err)
	}
	return nil
}

// Marshal encodes r with two-space indentation and a trailing newline.
func Marshal(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode ctrf report: %w", err)
	}
	return append(data, '\n'), nil
}
