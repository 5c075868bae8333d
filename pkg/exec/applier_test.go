package exec

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/edawolf/city-lines-sub002/pkg/geo"
	"github.com/edawolf/city-lines-sub002/pkg/plan"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// recordingMover remembers the order moves arrive in and fails ids
// listed in fail.
type recordingMover struct {
	applied []string
	fail    map[string]error
	reject  map[string]bool
}

func (m *recordingMover) Move(id string, _ geo.Point) (bool, error) {
	m.applied = append(m.applied, id)
	if err, ok := m.fail[id]; ok {
		return false, err
	}
	if m.reject[id] {
		return false, nil
	}
	return true, nil
}

func testPlan(moves ...plan.Move) *plan.Plan {
	return &plan.Plan{
		Moves:    moves,
		Priority: plan.PriorityHigh,
		Strategy: plan.StrategyConflictResolution,
	}
}

func TestApplyOrdersByPriorityDescending(t *testing.T) {
	mover := &recordingMover{}
	ap := NewApplier(NewHistory(0), quietLogger())

	ap.Apply(testPlan(
		plan.Move{ElementID: "conflict", Priority: 0.7},
		plan.Move{ElementID: "visibility", Priority: 0.9},
		plan.Move{ElementID: "cluster", Priority: 0.8},
	), mover)

	want := []string{"visibility", "cluster", "conflict"}
	if len(mover.applied) != len(want) {
		t.Fatalf("applied = %v", mover.applied)
	}
	for i := range want {
		if mover.applied[i] != want[i] {
			t.Errorf("applied = %v, want %v", mover.applied, want)
		}
	}
}

func TestApplyEqualPriorityKeepsEmissionOrder(t *testing.T) {
	mover := &recordingMover{}
	ap := NewApplier(NewHistory(0), quietLogger())

	ap.Apply(testPlan(
		plan.Move{ElementID: "first", Priority: 0.8},
		plan.Move{ElementID: "second", Priority: 0.8},
		plan.Move{ElementID: "third", Priority: 0.8},
	), mover)

	want := []string{"first", "second", "third"}
	for i := range want {
		if mover.applied[i] != want[i] {
			t.Fatalf("applied = %v, want %v (stable ties)", mover.applied, want)
		}
	}
}

func TestApplyIsolatesFailures(t *testing.T) {
	mover := &recordingMover{
		fail: map[string]error{"b": fmt.Errorf("element vanished")},
	}
	ap := NewApplier(NewHistory(0), quietLogger())

	result := ap.Apply(testPlan(
		plan.Move{ElementID: "a", Priority: 0.9},
		plan.Move{ElementID: "b", Priority: 0.8},
		plan.Move{ElementID: "c", Priority: 0.7},
	), mover)

	if len(mover.applied) != 3 {
		t.Fatalf("applied = %v, failing move must not abort the batch", mover.applied)
	}
	if result.TotalMoves != 3 || result.SuccessfulMoves != 2 || result.FailedMoves != 1 {
		t.Errorf("result = %+v", result)
	}

	var failed *Detail
	for i := range result.Details {
		if result.Details[i].ElementID == "b" {
			failed = &result.Details[i]
		}
	}
	if failed == nil || failed.Success || failed.Error != "element vanished" {
		t.Errorf("failed detail = %+v", failed)
	}
}

func TestApplyRejectedMoveCountsAsFailed(t *testing.T) {
	mover := &recordingMover{reject: map[string]bool{"a": true}}
	ap := NewApplier(NewHistory(0), quietLogger())

	result := ap.Apply(testPlan(plan.Move{ElementID: "a", Priority: 0.9}), mover)
	if result.FailedMoves != 1 || result.SuccessfulMoves != 0 {
		t.Errorf("result = %+v", result)
	}
	if result.Details[0].NewPosition != nil {
		t.Error("rejected move must not record a new position")
	}
}

func TestApplySuccessThreshold(t *testing.T) {
	tests := []struct {
		name        string
		total, fail int
		want        bool
	}{
		{"ExactlyEightyPercentIsNotSuccess", 10, 2, false},
		{"NineOfTenIsSuccess", 10, 1, true},
		{"AllSucceed", 3, 0, true},
		{"EmptyPlanIsNotSuccess", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := NewHistory(0)
			ap := NewApplier(history, quietLogger())

			mover := &recordingMover{fail: map[string]error{}}
			var moves []plan.Move
			for i := 0; i < tt.total; i++ {
				id := fmt.Sprintf("e%02d", i)
				if i < tt.fail {
					mover.fail[id] = fmt.Errorf("boom")
				}
				moves = append(moves, plan.Move{ElementID: id, Priority: 0.8})
			}

			ap.Apply(testPlan(moves...), mover)

			record, ok := history.Latest()
			if !ok {
				t.Fatal("no record appended")
			}
			if record.Success != tt.want {
				t.Errorf("success = %v, want %v (rate %.2f)", record.Success, tt.want, record.Results.SuccessRate())
			}
		})
	}
}

func TestHistoryAppendOnly(t *testing.T) {
	history := NewHistory(0)
	ap := NewApplier(history, quietLogger())
	mover := &recordingMover{}

	const passes = 5
	for i := 0; i < passes; i++ {
		ap.Apply(testPlan(plan.Move{ElementID: "a", Priority: 0.8}), mover)
	}

	if history.Len() != passes {
		t.Fatalf("history length = %d, want %d", history.Len(), passes)
	}

	records := history.Records()
	firstID := records[0].ID
	for i := 1; i < len(records); i++ {
		if records[i].ID == firstID {
			t.Error("records share ids; each pass must append a fresh record")
		}
		if records[i].Timestamp.Before(records[i-1].Timestamp) {
			t.Error("records out of chronological order")
		}
	}
}

func TestHistoryRingEviction(t *testing.T) {
	history := NewHistory(3)
	ap := NewApplier(history, quietLogger())
	mover := &recordingMover{}

	for i := 0; i < 5; i++ {
		ap.Apply(testPlan(plan.Move{ElementID: fmt.Sprintf("e%d", i), Priority: 0.8}), mover)
	}

	if history.Len() != 3 {
		t.Fatalf("history length = %d, want capacity 3", history.Len())
	}
	records := history.Records()
	if got := records[2].Plan.Moves[0].ElementID; got != "e4" {
		t.Errorf("newest record moves %q, want e4", got)
	}
	if got := records[0].Plan.Moves[0].ElementID; got != "e2" {
		t.Errorf("oldest retained record moves %q, want e2", got)
	}
}

func TestSummary(t *testing.T) {
	history := NewHistory(0)

	if got := history.Summary(); got != NoExecutionsMessage {
		t.Errorf("empty summary = %q, want %q", got, NoExecutionsMessage)
	}

	ap := NewApplier(history, quietLogger())
	mover := &recordingMover{fail: map[string]error{"b": fmt.Errorf("gone")}}
	ap.Apply(testPlan(
		plan.Move{ElementID: "a", Target: geo.Point{X: 400, Y: 400}, Reason: plan.ReasonConflictResolution, Priority: 0.7},
		plan.Move{ElementID: "b", Target: geo.Point{X: 600, Y: 400}, Reason: plan.ReasonConflictResolution, Priority: 0.7},
	), mover)

	got := history.Summary()
	for _, want := range []string{"2 total", "1 succeeded", "1 failed", "conflict_resolution", "gone", "(400.0, 400.0)"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "\n") {
		t.Error("summary should be multi-line")
	}
}
