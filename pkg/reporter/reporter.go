// Package reporter turns a finished Nightwatch run into a CTRF report file.
package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/dkoosis/ctrf/pkg/config"
	"github.com/dkoosis/ctrf/pkg/ctrf"
	"github.com/dkoosis/ctrf/pkg/mapper"
	"github.com/dkoosis/ctrf/pkg/nightwatch"
)

// Name prefixes the success message.
const Name = "nightwatch-ctrf-json-reporter"

// Reporter writes CTRF reports. It holds configuration only and may be reused
// across runs.
type Reporter struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithOutput sets the writers for the success message and for diagnostics.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Reporter) {
		if stdout != nil {
			r.stdout = stdout
		}
		if stderr != nil {
			r.stderr = stderr
		}
	}
}

// New creates a Reporter. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) *Reporter {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Reporter{
		cfg:    *cfg,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns where reports are written.
func (r *Reporter) Path() string {
	return r.cfg.Path()
}

// Write is the run-completion hook. It builds the report for results, writes
// it, and calls done once the write has been attempted. Filesystem failures
// are reported on the diagnostic writer and otherwise swallowed so the host
// runner is never blocked by reporting.
func (r *Reporter) Write(results *nightwatch.Result, done func()) {
	if done != nil {
		defer done()
	}
	path, err := r.writeReport(r.Build(results))
	if err != nil {
		fmt.Fprintf(r.stderr, "ctrf: error writing ctrf json report: %v\n", err)
		return
	}
	fmt.Fprintf(r.stdout, "%s: successfully written ctrf json to %s\n", Name, path)
}

// Generate builds and writes the report, returning it with the path written
// and any filesystem error.
func (r *Reporter) Generate(results *nightwatch.Result) (*ctrf.Report, string, error) {
	report := r.Build(results)
	path, err := r.writeReport(report)
	return report, path, err
}

// Build converts results into a CTRF report without touching the filesystem.
//
// The summary window takes its stop from the run's start timestamp and its
// start from the run's end timestamp. This matches the reports already
// produced by the Nightwatch reporter and is kept until the intended
// orientation is confirmed.
func (r *Reporter) Build(results *nightwatch.Result) *ctrf.Report {
	stop := r.timestamp("startTimestamp", results.StartTimestamp)
	start := r.timestamp("endTimestamp", results.EndTimestamp)

	return ctrf.NewBuilder(r.cfg.Tool()).
		AddTests(mapper.FromNightwatch(results)).
		SetTimes(start, stop).
		SetEnvironment(r.cfg.Environment).
		Report()
}

// timestamp parses a run timestamp, falling back to 0 with a warning.
func (r *Reporter) timestamp(field, value string) int64 {
	ms, err := nightwatch.ParseTimestamp(value)
	if err != nil {
		fmt.Fprintf(r.stderr, "ctrf: warning: %s: %v\n", field, err)
		return 0
	}
	return ms
}

func (r *Reporter) writeReport(report *ctrf.Report) (string, error) {
	dir := r.cfg.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}

	path := r.cfg.Path()
	data, err := ctrf.Marshal(report)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - report is meant to be shared
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
