package batch

import (
	"time"

	"github.com/segmentio/ksuid"
)

// Outcome is the result of one unit of work.
type Outcome struct {
	Path    string
	Output  string // empty on failure
	Err     error
	Elapsed time.Duration
}

// OK reports whether the unit succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Report holds the outcomes of one run, in dispatch order.
type Report struct {
	RunID    ksuid.KSUID
	Total    int
	Outcomes []Outcome
	Elapsed  time.Duration
}

// Succeeded returns the number of units that wrote an output file.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed returns the failed outcomes in dispatch order.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// FailedCount returns len(Failed()) without allocating.
func (r *Report) FailedCount() int {
	return r.Total - r.Succeeded()
}
