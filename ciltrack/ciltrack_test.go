package ciltrack_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lattice-substrate/cil-verify/cilerr"
	"github.com/lattice-substrate/cil-verify/ciltrack"
)

var (
	fixedID    = uuid.MustParse("1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	fixedStart = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

func TestRecordPreservesOrder(t *testing.T) {
	run := ciltrack.NewRun()
	require.NoError(t, run.Record("c", true))
	require.NoError(t, run.Record("a", false))
	require.NoError(t, run.Record("b", true))

	want := []ciltrack.Outcome{
		{Name: "c", Passed: true},
		{Name: "a", Passed: false},
		{Name: "b", Passed: true},
	}
	if diff := cmp.Diff(want, run.Outcomes()); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	run := ciltrack.NewRun()
	require.NoError(t, run.Record("dup", true))

	err := run.Record("dup", false)
	require.Error(t, err)
	require.True(t, cilerr.IsClass(err, cilerr.DuplicateScenario))

	// The log is unchanged after the rejection.
	require.Len(t, run.Outcomes(), 1)
	require.True(t, run.Outcomes()[0].Passed)

	err = run.RecordDefect("dup", errors.New("boom"))
	require.True(t, cilerr.IsClass(err, cilerr.DuplicateScenario))
}

func TestRecordDefect(t *testing.T) {
	run := ciltrack.NewRun()
	require.NoError(t, run.RecordDefect("broken", errors.New("oracle panicked")))

	got := run.Outcomes()
	require.Len(t, got, 1)
	require.False(t, got[0].Passed)
	require.Equal(t, "oracle panicked", got[0].Defect)
}

func TestSummary(t *testing.T) {
	run := ciltrack.NewRun()
	require.True(t, run.Summary().AllPassed(), "empty run counts as passed")

	require.NoError(t, run.Record("a", true))
	require.NoError(t, run.Record("b", false))
	require.NoError(t, run.Record("c", true))

	s := run.Summary()
	require.Equal(t, ciltrack.Summary{Total: 3, Passed: 2, Failed: 1}, s)
	require.False(t, s.AllPassed())
}

func TestOutcomesIsACopy(t *testing.T) {
	run := ciltrack.NewRun()
	require.NoError(t, run.Record("a", true))

	out := run.Outcomes()
	out[0].Passed = false
	require.True(t, run.Outcomes()[0].Passed)
}

func TestReportCanonicalBytes(t *testing.T) {
	run := ciltrack.NewRunAt(fixedID, fixedStart)
	require.NoError(t, run.Record("suite/a", true))
	require.NoError(t, run.RecordDefect("suite/b", errors.New("boom")))

	got, err := run.Report()
	require.NoError(t, err)

	want := `{"cases":[{"name":"suite/a","passed":true},` +
		`{"defect":"boom","name":"suite/b","passed":false}],` +
		`"generatedAtUtc":"2026-01-02T03:04:05Z",` +
		`"runId":"1b4e28ba-2fa1-11d2-883f-0016d3cca427",` +
		`"summary":{"failed":1,"passed":1,"total":2}}`
	require.Equal(t, want, string(got))

	// Same inputs, same bytes.
	rerun := ciltrack.NewRunAt(fixedID, fixedStart)
	require.NoError(t, rerun.Record("suite/a", true))
	require.NoError(t, rerun.RecordDefect("suite/b", errors.New("boom")))
	second, err := rerun.Report()
	require.NoError(t, err)
	require.Equal(t, string(got), string(second))
}

func TestReportEmptyRun(t *testing.T) {
	run := ciltrack.NewRunAt(fixedID, fixedStart)
	got, err := run.Report()
	require.NoError(t, err)

	want := `{"cases":[],` +
		`"generatedAtUtc":"2026-01-02T03:04:05Z",` +
		`"runId":"1b4e28ba-2fa1-11d2-883f-0016d3cca427",` +
		`"summary":{"failed":0,"passed":0,"total":0}}`
	require.Equal(t, want, string(got))
}
