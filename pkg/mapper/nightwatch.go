// Package mapper converts runner results into CTRF tests.
package mapper

import (
	"github.com/dkoosis/ctrf/pkg/ctrf"
	"github.com/dkoosis/ctrf/pkg/nightwatch"
)

// MapStatus maps a Nightwatch case status onto the CTRF vocabulary.
// Anything unrecognized is other.
func MapStatus(raw string) ctrf.Status {
	switch raw {
	case "pass":
		return ctrf.StatusPassed
	case "fail":
		return ctrf.StatusFailed
	case "skipped":
		return ctrf.StatusSkipped
	case "pending":
		return ctrf.StatusPending
	default:
		return ctrf.StatusOther
	}
}

// FromNightwatch flattens every module of res into CTRF tests, in module order.
func FromNightwatch(res *nightwatch.Result) []ctrf.Test {
	tests := []ctrf.Test{}
	for _, m := range res.Modules {
		tests = append(tests, FromModule(m.Name, m.Module)...)
	}
	return tests
}

// FromModule returns the tests of one module: its completed cases, or a
// single skipped entry named after the module when nothing completed,
// followed by the cases skipped at runtime.
func FromModule(name string, mod nightwatch.Module) []ctrf.Test {
	tests := make([]ctrf.Test, 0, len(mod.Completed)+len(mod.SkippedAtRuntime)+1)

	if len(mod.Completed) == 0 {
		tests = append(tests, ctrf.Test{Name: name, Status: ctrf.StatusSkipped})
	} else {
		for _, c := range mod.Completed {
			tests = append(tests, ctrf.Test{
				Name:     c.Name,
				Status:   MapStatus(c.Case.Status),
				Duration: c.Case.TimeMs,
			})
		}
	}

	for _, skipped := range mod.SkippedAtRuntime {
		tests = append(tests, ctrf.Test{Name: skipped, Status: ctrf.StatusSkipped})
	}
	return tests
}
