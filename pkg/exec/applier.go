package exec

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/edawolf/city-lines-sub002/pkg/plan"
)

// Applier executes plans against a Mover capability and records each
// pass in a History.
type Applier struct {
	history *History
	logger  *log.Logger
}

// NewApplier creates an applier writing records into history.
// A nil history gets a fresh one with the default capacity; a nil
// logger discards output.
func NewApplier(history *History, logger *log.Logger) *Applier {
	if history == nil {
		history = NewHistory(DefaultHistoryCapacity)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Applier{history: history, logger: logger}
}

// History returns the execution history this applier appends to.
func (ap *Applier) History() *History {
	return ap.history
}

// Apply executes all moves of the plan in descending priority order
// and returns the aggregated result.
//
// Equal-priority moves retain their policy-emission order (stable
// sort). Each move is isolated: a mover failure is counted and logged
// without aborting the remaining moves. After the batch, an immutable
// record is appended to history; the pass counts as successful only
// when strictly more than SuccessThreshold of its moves succeeded, so
// an empty plan is never successful.
func (ap *Applier) Apply(p *plan.Plan, mover Mover) Result {
	ordered := make([]plan.Move, len(p.Moves))
	copy(ordered, p.Moves)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	result := Result{
		TotalMoves: len(ordered),
		Details:    make([]Detail, 0, len(ordered)),
	}

	for _, move := range ordered {
		detail := Detail{
			ElementID: move.ElementID,
			Reason:    move.Reason,
			Target:    move.Target,
		}

		ok, err := mover.Move(move.ElementID, move.Target)
		switch {
		case err != nil:
			result.FailedMoves++
			detail.Error = err.Error()
			ap.logger.Warn("move failed",
				"element", move.ElementID,
				"reason", move.Reason,
				"error", err)
		case !ok:
			result.FailedMoves++
			detail.Error = "rejected by mover"
			ap.logger.Warn("move rejected",
				"element", move.ElementID,
				"reason", move.Reason)
		default:
			result.SuccessfulMoves++
			detail.Success = true
			pos := move.Target
			detail.NewPosition = &pos
			ap.logger.Debug("moved element",
				"element", move.ElementID,
				"reason", move.Reason,
				"x", move.Target.X,
				"y", move.Target.Y)
		}

		result.Details = append(result.Details, detail)
	}

	ap.history.Append(Record{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Plan:      *p,
		Results:   result,
		Success:   result.TotalMoves > 0 && result.SuccessRate() > SuccessThreshold,
	})

	return result
}
