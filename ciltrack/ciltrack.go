// Package ciltrack is the result tracker: an append-only, ordered log of
// (scenario name, outcome) pairs owned by an explicit run context.
//
// The run context replaces the process-wide log of older harnesses; it is
// created by the driver, passed by reference to the suite runner, and never
// shared between runs. Insertion order is execution order and is part of the
// reporting contract. Scenario names must be unique within a run; recording
// a duplicate name fails fast rather than producing an ambiguous report.
package ciltrack

import (
	"encoding/json"
	"time"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/google/uuid"

	"github.com/lattice-substrate/cil-verify/cilerr"
)

// Outcome is one recorded test case. Immutable once recorded.
type Outcome struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Defect string `json:"defect,omitempty"`
}

// Summary aggregates the recorded outcomes.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// AllPassed reports whether every recorded outcome passed. An empty run
// counts as passed.
func (s Summary) AllPassed() bool { return s.Failed == 0 }

// Run is one harness execution's result log.
type Run struct {
	id      uuid.UUID
	started time.Time
	cases   []Outcome
	index   map[string]struct{}
}

// NewRun creates a run context with a fresh run ID and the wall clock.
func NewRun() *Run {
	return NewRunAt(uuid.New(), time.Now())
}

// NewRunAt creates a run context with explicit identity and start time, for
// deterministic report bytes in tests.
func NewRunAt(id uuid.UUID, started time.Time) *Run {
	return &Run{
		id:      id,
		started: started,
		index:   make(map[string]struct{}),
	}
}

// ID returns the run identity.
func (r *Run) ID() uuid.UUID { return r.id }

// Record appends one outcome. Duplicate names within a run are rejected with
// class DUPLICATE_SCENARIO; the log is left unchanged in that case.
func (r *Run) Record(name string, passed bool) error {
	return r.append(Outcome{Name: name, Passed: passed})
}

// RecordDefect appends a failed outcome tagged with the harness defect that
// prevented the scenario from being evaluated.
func (r *Run) RecordDefect(name string, defect error) error {
	o := Outcome{Name: name, Passed: false}
	if defect != nil {
		o.Defect = defect.Error()
	}
	return r.append(o)
}

func (r *Run) append(o Outcome) error {
	if _, dup := r.index[o.Name]; dup {
		return cilerr.Newf(cilerr.DuplicateScenario, "scenario %q recorded twice in one run", o.Name)
	}
	r.index[o.Name] = struct{}{}
	r.cases = append(r.cases, o)
	return nil
}

// Outcomes returns the ordered log. The returned slice is a copy; recorded
// outcomes cannot be mutated through it.
func (r *Run) Outcomes() []Outcome {
	out := make([]Outcome, len(r.cases))
	copy(out, r.cases)
	return out
}

// Summary returns the aggregate counts.
func (r *Run) Summary() Summary {
	s := Summary{Total: len(r.cases)}
	for _, c := range r.cases {
		if c.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

type reportDoc struct {
	RunID          string    `json:"runId"`
	GeneratedAtUTC string    `json:"generatedAtUtc"`
	Cases          []Outcome `json:"cases"`
	Summary        Summary   `json:"summary"`
}

// Report renders the run as an RFC 8785 canonical JSON artifact. For a given
// run identity, start time, and outcome sequence the bytes are always
// identical, so downstream tooling can compare or hash reports directly.
func (r *Run) Report() ([]byte, error) {
	doc := reportDoc{
		RunID:          r.id.String(),
		GeneratedAtUTC: r.started.UTC().Format(time.RFC3339Nano),
		Cases:          r.Outcomes(),
		Summary:        r.Summary(),
	}
	if doc.Cases == nil {
		doc.Cases = []Outcome{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, cilerr.Wrap(cilerr.InternalError, "encode report", err)
	}
	canonical, err := jsoncanonicalizer.Transform(data)
	if err != nil {
		return nil, cilerr.Wrap(cilerr.InternalError, "canonicalize report", err)
	}
	return canonical, nil
}
