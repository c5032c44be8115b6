package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/ctrf/pkg/ctrf"
)

const nightwatchResults = `{
  "passed": 1, "failed": 1, "errors": 0, "skipped": 1, "tests": 2,
  "startTimestamp": "2024-01-01T10:00:00Z",
  "endTimestamp": "2024-01-01T10:00:05Z",
  "modules": {
    "login": {
      "skippedAtRuntime": [],
      "completed": {
        "case1": {"status": "pass", "timeMs": 120},
        "case2": {"status": "fail", "timeMs": 45}
      }
    },
    "setup": {
      "skippedAtRuntime": ["smoke"],
      "completed": {}
    }
  }
}`

// --- JTBD E2E Tests ---
// These exercise the full pipeline: input → detect → parse → map → write → render

func TestJTBD_ConvertNightwatchResults(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-output-dir", dir, "-format", "plain", "-app-name", "MyApp"},
		strings.NewReader(nightwatchResults), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stderr.String(), "successfully written ctrf json to "+filepath.Join(dir, "ctrf-report.json"))
	assert.Equal(t, "CTRF: FAIL nightwatch.js | 4 tests: 1 passed, 1 failed, 2 skipped\nFAIL case2 (45ms)\n", stdout.String())

	r, err := ctrf.ReadFile(filepath.Join(dir, "ctrf-report.json"))
	require.NoError(t, err)
	assert.Equal(t, []ctrf.Test{
		{Name: "case1", Status: ctrf.StatusPassed, Duration: 120},
		{Name: "case2", Status: ctrf.StatusFailed, Duration: 45},
		{Name: "setup", Status: ctrf.StatusSkipped},
		{Name: "smoke", Status: ctrf.StatusSkipped},
	}, r.Results.Tests)
	require.NotNil(t, r.Results.Environment)
	assert.Equal(t, ctrf.Environment{AppName: "MyApp"}, *r.Results.Environment)
	assert.Equal(t, int64(1704103205000), r.Results.Summary.Start)
	assert.Equal(t, int64(1704103200000), r.Results.Summary.Stop)
}

func TestJTBD_ConvertGoTestJSON(t *testing.T) {
	dir := t.TempDir()
	testJSON := strings.Join([]string{
		`{"Time":"2024-01-01T00:00:00Z","Action":"start","Package":"example.com/pkg/handler"}`,
		`{"Time":"2024-01-01T00:00:00Z","Action":"run","Package":"example.com/pkg/handler","Test":"TestCreateUser_Valid"}`,
		`{"Time":"2024-01-01T00:00:00Z","Action":"pass","Package":"example.com/pkg/handler","Test":"TestCreateUser_Valid","Elapsed":0.1}`,
		`{"Time":"2024-01-01T00:00:00Z","Action":"run","Package":"example.com/pkg/handler","Test":"TestCreateUser_InvalidEmail"}`,
		`{"Time":"2024-01-01T00:00:01Z","Action":"fail","Package":"example.com/pkg/handler","Test":"TestCreateUser_InvalidEmail","Elapsed":0.3}`,
		`{"Time":"2024-01-01T00:00:01Z","Action":"fail","Package":"example.com/pkg/handler","Elapsed":1.2}`,
	}, "\n") + "\n"

	var stdout, stderr bytes.Buffer
	code := run([]string{"-output-dir", dir, "-output-file", "go", "-format", "none"},
		strings.NewReader(testJSON), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())

	r, err := ctrf.ReadFile(filepath.Join(dir, "go.json"))
	require.NoError(t, err)
	assert.Equal(t, "go test", r.Results.Tool.Name)
	assert.Equal(t, ctrf.Summary{Tests: 2, Passed: 1, Failed: 1, Start: 1704067201000, Stop: 1704067200000}, r.Results.Summary)
	assert.Equal(t, "TestCreateUser_InvalidEmail", r.Results.Tests[1].Name)
	assert.Equal(t, int64(300), r.Results.Tests[1].Duration)
}

func TestRun_InputFromFileWithExplicitTool(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(in, []byte(nightwatchResults), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-output-dir", dir, "-tool", "custom", "-format", "none", in}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	r, err := ctrf.ReadFile(filepath.Join(dir, "ctrf-report.json"))
	require.NoError(t, err)
	assert.Equal(t, "custom", r.Results.Tool.Name)
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "ctrf.yaml")
	yml := "output_dir: " + filepath.Join(dir, "reports") + "\noutput_file: suite\nenvironment:\n  build_name: nightly\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yml), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "-format", "none"}, strings.NewReader(nightwatchResults), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	r, err := ctrf.ReadFile(filepath.Join(dir, "reports", "suite.json"))
	require.NoError(t, err)
	require.NotNil(t, r.Results.Environment)
	assert.Equal(t, "nightly", r.Results.Environment.BuildName)
}

func TestRun_WriteFailureExitsOne(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-output-dir", filepath.Join(blocker, "sub")}, strings.NewReader(nightwatchResults), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "ctrf: error writing ctrf json report:")
}

func TestRun_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		want  string
	}{
		{"empty input", nil, "", "no input"},
		{"unknown format", nil, "hello", "unrecognized input format"},
		{"ctrf input", nil, `{"results":{"tool":{"name":"x"}}}`, "already a CTRF report"},
		{"bad modules", nil, `{"modules":{"m":{"completed":5}}}`, "parsing nightwatch results"},
		{"missing file", []string{"/nonexistent/results.json"}, "", "reading input"},
		{"bad format flag", []string{"-format", "html"}, nightwatchResults, "unknown format"},
		{"missing config", []string{"-config", "/nonexistent/.ctrf.yaml"}, nightwatchResults, "loading config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(tt.input), &stdout, &stderr)
			assert.Equal(t, 2, code)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-version"}, nil, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout.String(), "ctrf dev"))
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-nope"}, nil, &stdout, &stderr))
}

func TestShow(t *testing.T) {
	report := `{"results":{"tool":{"name":"nightwatch.js"},
		"summary":{"tests":2,"passed":1,"failed":1,"pending":0,"skipped":0,"other":0,"start":0,"stop":0},
		"tests":[{"name":"a","status":"passed","duration":3},{"name":"b","status":"failed","duration":4}]}}`

	var stdout, stderr bytes.Buffer
	code := run([]string{"show", "-format", "plain"}, strings.NewReader(report), &stdout, &stderr)

	assert.Equal(t, 1, code, "failures present")
	assert.Equal(t, "CTRF: FAIL nightwatch.js | 2 tests: 1 passed, 1 failed\nFAIL b (4ms)\n", stdout.String())
}

func TestShow_TerminalPassing(t *testing.T) {
	report := `{"results":{"tool":{"name":"go test"},"summary":{"tests":1,"passed":1},
		"tests":[{"name":"a","status":"passed","duration":3}]}}`

	var stdout, stderr bytes.Buffer
	code := run([]string{"show", "-format", "terminal", "-theme", "mono"}, strings.NewReader(report), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "PASS")
	assert.Contains(t, stdout.String(), "+ Passed: 1")
}

func TestShow_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"show"}, strings.NewReader(`{"results":{}}`), &stdout, &stderr))
	assert.Contains(t, stderr.String(), "missing results.tool.name")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"show", "-format", "none"}, strings.NewReader("{}"), &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unknown format")
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "plain", resolveFormat("auto", &buf))
	assert.Equal(t, "terminal", resolveFormat("terminal", &buf))
	assert.Nil(t, selectRenderer("none", "default", &buf))
}
