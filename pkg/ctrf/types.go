// Package ctrf provides the Common Test Report Format document model, a
// builder for it and a reader.
package ctrf

// Report is a CTRF document.
// See: https://ctrf.io/docs/schema/overview
type Report struct {
	Results Results `json:"results"`
}

// Results holds everything a CTRF consumer reads. Field order here is the
// key order of the serialized document.
type Results struct {
	Tool        Tool         `json:"tool"`
	Summary     Summary      `json:"summary"`
	Tests       []Test       `json:"tests"`
	Environment *Environment `json:"environment,omitempty"`
}

// Tool identifies the runner that produced the results.
type Tool struct {
	Name string `json:"name"`
}

// Summary aggregates test counts and the run window (epoch milliseconds).
type Summary struct {
	Tests   int   `json:"tests"`
	Passed  int   `json:"passed"`
	Failed  int   `json:"failed"`
	Pending int   `json:"pending"`
	Skipped int   `json:"skipped"`
	Other   int   `json:"other"`
	Start   int64 `json:"start"`
	Stop    int64 `json:"stop"`
}

// Count returns the summary count for s.
func (s Summary) Count(st Status) int {
	switch st {
	case StatusPassed:
		return s.Passed
	case StatusFailed:
		return s.Failed
	case StatusPending:
		return s.Pending
	case StatusSkipped:
		return s.Skipped
	case StatusOther:
		return s.Other
	default:
		return 0
	}
}

// Test is one test outcome.
type Test struct {
	Name     string `json:"name"`
	Status   Status `json:"status"`
	Duration int64  `json:"duration"` // milliseconds
}

// Environment describes the system under test. Unset fields are omitted.
type Environment struct {
	AppName     string `json:"appName,omitempty" yaml:"app_name,omitempty"`
	AppVersion  string `json:"appVersion,omitempty" yaml:"app_version,omitempty"`
	OSPlatform  string `json:"osPlatform,omitempty" yaml:"os_platform,omitempty"`
	OSRelease   string `json:"osRelease,omitempty" yaml:"os_release,omitempty"`
	OSVersion   string `json:"osVersion,omitempty" yaml:"os_version,omitempty"`
	BuildName   string `json:"buildName,omitempty" yaml:"build_name,omitempty"`
	BuildNumber string `json:"buildNumber,omitempty" yaml:"build_number,omitempty"`
}

// IsEmpty reports whether no field is set.
func (e Environment) IsEmpty() bool {
	return e == Environment{}
}
