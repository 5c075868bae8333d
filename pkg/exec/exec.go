package exec

import (
	"time"

	"github.com/edawolf/city-lines-sub002/pkg/geo"
	"github.com/edawolf/city-lines-sub002/pkg/plan"
)

// SuccessThreshold is the fraction of moves that must succeed for a
// pass to count as successful. The comparison is strict: exactly the
// threshold is not enough.
const SuccessThreshold = 0.8

// Mover is the injected capability that relocates elements. It is the
// only way the pipeline writes back into the host scene.
//
// A move fails when ok is false or err is non-nil. Movers should
// reject relocations they cannot honor (for example an element that
// no longer exists) rather than report unconditional success.
type Mover interface {
	Move(elementID string, target geo.Point) (ok bool, err error)
}

// MoverFunc adapts a function to the Mover interface.
type MoverFunc func(elementID string, target geo.Point) (bool, error)

// Move calls f.
func (f MoverFunc) Move(elementID string, target geo.Point) (bool, error) {
	return f(elementID, target)
}

// Detail records the outcome of one attempted move.
type Detail struct {
	ElementID   string      `json:"element_id" bson:"element_id"`
	Success     bool        `json:"success" bson:"success"`
	Reason      plan.Reason `json:"reason" bson:"reason"`
	Target      geo.Point   `json:"target" bson:"target"` // Attempted target, recorded even on failure
	NewPosition *geo.Point  `json:"new_position,omitempty" bson:"new_position,omitempty"`
	Error       string      `json:"error,omitempty" bson:"error,omitempty"`
}

// Result aggregates the outcomes of one applied plan. Every attempted
// move yields a detail entry; there are no silent failures.
type Result struct {
	TotalMoves      int      `json:"total_moves" bson:"total_moves"`
	SuccessfulMoves int      `json:"successful_moves" bson:"successful_moves"`
	FailedMoves     int      `json:"failed_moves" bson:"failed_moves"`
	Details         []Detail `json:"details" bson:"details"`
}

// SuccessRate returns successful/total, or 0 for an empty result.
// The explicit guard keeps an empty plan from dividing zero by zero.
func (r Result) SuccessRate() float64 {
	if r.TotalMoves == 0 {
		return 0
	}
	return float64(r.SuccessfulMoves) / float64(r.TotalMoves)
}

// Record is the immutable history entry appended after each pass.
type Record struct {
	ID        string    `json:"id" bson:"id"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Plan      plan.Plan `json:"plan" bson:"plan"`
	Results   Result    `json:"results" bson:"results"`
	Success   bool      `json:"success" bson:"success"`
}
