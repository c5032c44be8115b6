package ctrf

// Status is a normalized CTRF test state.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusPending Status = "pending"
	StatusOther   Status = "other"
)

// Statuses returns every status in summary order.
func Statuses() []Status {
	return []Status{StatusPassed, StatusFailed, StatusPending, StatusSkipped, StatusOther}
}

// Valid reports whether s is one of the CTRF states.
func (s Status) Valid() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusSkipped, StatusPending, StatusOther:
		return true
	}
	return false
}

// Summarize counts tests by status. Start and Stop are left zero.
func Summarize(tests []Test) Summary {
	s := Summary{Tests: len(tests)}
	for _, t := range tests {
		switch t.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusPending:
			s.Pending++
		case StatusSkipped:
			s.Skipped++
		case StatusOther:
			s.Other++
		}
	}
	return s
}
