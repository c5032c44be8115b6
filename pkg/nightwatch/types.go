// Package nightwatch models the results object a Nightwatch.js run hands to
// its reporters.
package nightwatch

// Result is the run-level results object.
type Result struct {
	Passed         int      `json:"passed"`
	Failed         int      `json:"failed"`
	Errors         int      `json:"errors"`
	Skipped        int      `json:"skipped"`
	Tests          int      `json:"tests"`
	Assertions     int      `json:"assertions"`
	ErrMessages    []string `json:"errmessages,omitempty"`
	ElapsedTime    string   `json:"elapsedTime,omitempty"`
	StartTimestamp string   `json:"startTimestamp"`
	EndTimestamp   string   `json:"endTimestamp"`
	Modules        Modules  `json:"modules"`
}

// Module is one test file's execution detail.
type Module struct {
	ReportPrefix     string         `json:"reportPrefix,omitempty"`
	AssertionsCount  int            `json:"assertionsCount"`
	SkippedAtRuntime []string       `json:"skippedAtRuntime"`
	SkippedByUser    []string       `json:"skippedByUser,omitempty"`
	Skipped          []string       `json:"skipped,omitempty"`
	Time             string         `json:"time,omitempty"`
	TimeMs           int64          `json:"timeMs"`
	Completed        CompletedCases `json:"completed"`
}

// CompletedCase is a test case the runner finished executing.
type CompletedCase struct {
	Time           string `json:"time,omitempty"`
	Status         string `json:"status"` // "pass", "fail", "skipped", "pending", ...
	Passed         int    `json:"passed"`
	Errors         int    `json:"errors"`
	Failed         int    `json:"failed"`
	Skipped        int    `json:"skipped"`
	Tests          int    `json:"tests"`
	StartTimestamp string `json:"startTimestamp,omitempty"`
	EndTimestamp   string `json:"endTimestamp,omitempty"`
	TimeMs         int64  `json:"timeMs"`
	StackTrace     string `json:"stackTrace,omitempty"`
}

// NamedModule pairs a module with the key it was reported under.
type NamedModule struct {
	Name   string
	Module Module
}

// Modules is the module map of a run, kept in reporting order.
type Modules []NamedModule

// Get returns the module registered under name.
func (m Modules) Get(name string) (Module, bool) {
	for _, nm := range m {
		if nm.Name == name {
			return nm.Module, true
		}
	}
	return Module{}, false
}

// Names returns module names in order.
func (m Modules) Names() []string {
	names := make([]string, 0, len(m))
	for _, nm := range m {
		names = append(names, nm.Name)
	}
	return names
}

// NamedCase pairs a completed case with its test name.
type NamedCase struct {
	Name string
	Case CompletedCase
}

// CompletedCases is the completed-case map of a module, kept in completion order.
type CompletedCases []NamedCase

// Get returns the case recorded under name.
func (c CompletedCases) Get(name string) (CompletedCase, bool) {
	for _, nc := range c {
		if nc.Name == name {
			return nc.Case, true
		}
	}
	return CompletedCase{}, false
}
