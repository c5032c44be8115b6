package mapper

import (
	"time"

	"github.com/dkoosis/ctrf/pkg/nightwatch"
	"github.com/dkoosis/ctrf/pkg/testjson"
)

// FromTestJSON reshapes a go test run into the Nightwatch results layout so it
// can go through the same report pipeline. Packages become modules and tests
// become completed cases. A package that failed to build is reported as one
// failed case named after the package.
func FromTestJSON(run *testjson.Run) *nightwatch.Result {
	res := &nightwatch.Result{
		StartTimestamp: formatTime(run.Start),
		EndTimestamp:   formatTime(run.End),
	}

	for _, pkg := range run.Packages {
		mod := nightwatch.Module{
			TimeMs:           pkg.Duration.Milliseconds(),
			SkippedAtRuntime: []string{},
		}

		if pkg.BuildError != "" && len(pkg.AllTests) == 0 {
			mod.Completed = nightwatch.CompletedCases{{
				Name: pkg.Name,
				Case: nightwatch.CompletedCase{
					Status:     "fail",
					Failed:     1,
					Tests:      1,
					TimeMs:     pkg.Duration.Milliseconds(),
					StackTrace: pkg.BuildError,
				},
			}}
			res.Failed++
			res.Tests++
		}

		for _, tr := range pkg.AllTests {
			tc := nightwatch.CompletedCase{
				Status: goTestStatus(tr.Status),
				Tests:  1,
				TimeMs: tr.Duration.Milliseconds(),
			}
			switch tc.Status {
			case "pass":
				tc.Passed = 1
				res.Passed++
			case "fail":
				tc.Failed = 1
				res.Failed++
			case "skipped":
				tc.Skipped = 1
				res.Skipped++
			}
			res.Tests++
			mod.Completed = append(mod.Completed, nightwatch.NamedCase{Name: tr.Name, Case: tc})
		}

		res.Modules = append(res.Modules, nightwatch.NamedModule{Name: pkg.Name, Module: mod})
	}
	return res
}

func goTestStatus(s string) string {
	switch s {
	case "PASS":
		return "pass"
	case "FAIL":
		return "fail"
	case "SKIP":
		return "skipped"
	default:
		return s
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
