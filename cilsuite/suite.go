// Package cilsuite defines the suite/scenario model, the sequential runner,
// and the fixed default scenario matrix of the harness.
//
// A scenario is a named, pure, terminating check. The runner evaluates
// suites and scenarios strictly sequentially and records exactly one outcome
// per scenario in the run's tracker. Scenario outcomes never abort the run:
// a semantic mismatch is a failed outcome, and any error or panic raised
// while evaluating the scenario itself is recorded as a failed outcome
// tagged with the harness defect. The only error the runner returns is a
// tracker defect such as a duplicate scenario name.
package cilsuite

import (
	"fmt"

	"github.com/lattice-substrate/cil-verify/cilerr"
	"github.com/lattice-substrate/cil-verify/ciltrack"
)

// Scenario is one named check. Check returns nil for a pass, a cilerr
// SCENARIO_MISMATCH error for a semantic failure, and any other error for a
// harness defect.
type Scenario struct {
	Name  string
	Check func() error
}

// Suite is an ordered sequence of scenarios recorded under a shared name
// prefix.
type Suite struct {
	Name      string
	Scenarios []Scenario
}

// RunAll executes the suites in order, recording one outcome per scenario
// under "suite/scenario" names.
func RunAll(run *ciltrack.Run, suites []Suite) error {
	for _, suite := range suites {
		for _, sc := range suite.Scenarios {
			name := suite.Name + "/" + sc.Name
			passed, defect := evaluate(sc)
			var err error
			if defect != nil {
				err = run.RecordDefect(name, defect)
			} else {
				err = run.Record(name, passed)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// evaluate runs one scenario, converting panics and non-mismatch errors into
// harness defects so that subsequent scenarios still run.
func evaluate(sc Scenario) (passed bool, defect error) {
	defer func() {
		if r := recover(); r != nil {
			passed = false
			defect = cilerr.Newf(cilerr.HarnessDefect, "panic: %v", r)
		}
	}()

	err := sc.Check()
	switch {
	case err == nil:
		return true, nil
	case cilerr.IsClass(err, cilerr.ScenarioMismatch):
		return false, nil
	default:
		return false, cilerr.Wrap(cilerr.HarnessDefect, fmt.Sprintf("evaluating %q", sc.Name), err)
	}
}

// ScenarioNames returns the fully qualified scenario names in execution
// order.
func ScenarioNames(suites []Suite) []string {
	var names []string
	for _, suite := range suites {
		for _, sc := range suite.Scenarios {
			names = append(names, suite.Name+"/"+sc.Name)
		}
	}
	return names
}
