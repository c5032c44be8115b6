package testjson

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ParseStream parses go test -json NDJSON from a reader, line by line.
// Returns the parsed run, the number of malformed lines skipped, and any error.
func ParseStream(r io.Reader) (*Run, int, error) {
	agg := newAggregator()
	scanner := bufio.NewScanner(r)
	// Allow large lines for verbose test output
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var malformed int
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var event TestEvent
		if err := json.Unmarshal(line, &event); err != nil {
			malformed++
			continue
		}
		agg.processEvent(event)
	}
	if err := scanner.Err(); err != nil {
		return nil, malformed, fmt.Errorf("scanning test output: %w", err)
	}
	return agg.run(), malformed, nil
}

// ParseBytes is a convenience for parsing from a byte slice.
func ParseBytes(data []byte) (*Run, int, error) {
	return ParseStream(bytes.NewReader(data))
}

type aggregator struct {
	packages   map[string]*pkgState
	order      []string
	start, end time.Time
}

type pkgState struct {
	name       string
	passed     int
	failed     int
	skipped    int
	duration   time.Duration
	allTests   map[string]*testState
	testOrder  []string
	buildError string
	outputBuf  []string // package-level output
}

type testState struct {
	name     string
	status   string // "PASS", "FAIL", "SKIP"
	duration time.Duration
}

func newAggregator() *aggregator {
	return &aggregator{
		packages: make(map[string]*pkgState),
	}
}

func (a *aggregator) getOrCreate(name string) *pkgState {
	if pkg, ok := a.packages[name]; ok {
		return pkg
	}
	pkg := &pkgState{
		name:     name,
		allTests: make(map[string]*testState),
	}
	a.packages[name] = pkg
	a.order = append(a.order, name)
	return pkg
}

func (a *aggregator) processEvent(e TestEvent) {
	if !e.Time.IsZero() {
		if a.start.IsZero() || e.Time.Before(a.start) {
			a.start = e.Time
		}
		if e.Time.After(a.end) {
			a.end = e.Time
		}
	}
	if e.Package == "" {
		return
	}
	pkg := a.getOrCreate(e.Package)
	elapsed := time.Duration(e.Elapsed * float64(time.Second))

	switch e.Action {
	case ActionPass:
		if e.Test == "" {
			pkg.duration = elapsed
			return
		}
		pkg.record(e.Test, "PASS", elapsed)

	case ActionFail:
		if e.Test == "" {
			pkg.duration = elapsed
			// Failed with no tests run: the package did not build.
			if pkg.passed == 0 && pkg.failed == 0 && pkg.skipped == 0 {
				pkg.buildError = strings.Join(pkg.outputBuf, "\n")
				if pkg.buildError == "" {
					pkg.buildError = "package failed"
				}
			}
			return
		}
		pkg.record(e.Test, "FAIL", elapsed)

	case ActionSkip:
		if e.Test != "" {
			pkg.record(e.Test, "SKIP", elapsed)
		}

	case "output":
		if e.Test != "" {
			return
		}
		if output := strings.TrimRight(e.Output, "\n"); output != "" {
			pkg.outputBuf = append(pkg.outputBuf, output)
		}
	}
}

// record sets the final outcome of a test. A repeated outcome for the same
// test replaces the earlier one.
func (pkg *pkgState) record(name, status string, d time.Duration) {
	ts, ok := pkg.allTests[name]
	if !ok {
		ts = &testState{name: name}
		pkg.allTests[name] = ts
		pkg.testOrder = append(pkg.testOrder, name)
	}
	switch ts.status {
	case "PASS":
		pkg.passed--
	case "FAIL":
		pkg.failed--
	case "SKIP":
		pkg.skipped--
	}
	switch status {
	case "PASS":
		pkg.passed++
	case "FAIL":
		pkg.failed++
	case "SKIP":
		pkg.skipped++
	}
	ts.status = status
	ts.duration = d
}

func (a *aggregator) run() *Run {
	results := make([]TestPackageResult, 0, len(a.order))
	for _, name := range a.order {
		pkg := a.packages[name]
		r := TestPackageResult{
			Name:       pkg.name,
			Passed:     pkg.passed,
			Failed:     pkg.failed,
			Skipped:    pkg.skipped,
			Duration:   pkg.duration,
			BuildError: pkg.buildError,
		}
		for _, testName := range pkg.testOrder {
			ts := pkg.allTests[testName]
			r.AllTests = append(r.AllTests, TestResult{
				Name:     ts.name,
				Status:   ts.status,
				Duration: ts.duration,
			})
		}
		results = append(results, r)
	}
	return &Run{Packages: results, Start: a.start, End: a.end}
}
