package exec

import (
	"fmt"
	"strings"
)

// DefaultHistoryCapacity bounds the in-memory execution log. Retention
// is an explicit policy: the log is a ring, not an ever-growing
// sequence, and nothing is persisted.
const DefaultHistoryCapacity = 128

// NoExecutionsMessage is the sentinel summary when nothing has run.
const NoExecutionsMessage = "no executions yet"

// History is the append-only in-memory log of execution records.
// Records are never mutated after append; once the capacity is
// reached, the oldest record is dropped to admit the newest.
//
// History is not safe for concurrent use; the single-threaded
// pipeline model has only the applier writing and summary readers
// reading, and multi-threaded hosts serialize around the whole pass.
type History struct {
	capacity int
	records  []Record
}

// NewHistory creates a history retaining at most capacity records.
// Non-positive capacities fall back to the default.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Append adds a record, evicting the oldest when full.
func (h *History) Append(r Record) {
	if len(h.records) == h.capacity {
		copy(h.records, h.records[1:])
		h.records[len(h.records)-1] = r
		return
	}
	h.records = append(h.records, r)
}

// Len returns the number of retained records.
func (h *History) Len() int { return len(h.records) }

// Capacity returns the retention limit.
func (h *History) Capacity() int { return h.capacity }

// Latest returns the most recent record, if any.
func (h *History) Latest() (Record, bool) {
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}

// Records returns a copy of the retained records, oldest first.
func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Summary renders the most recent record as human-readable multi-line
// diagnostic text, or the sentinel message when the history is empty.
// This is the only read surface over history; formatting is a pure
// step over recorded values and touches no pipeline logic.
func (h *History) Summary() string {
	latest, ok := h.Latest()
	if !ok {
		return NoExecutionsMessage
	}
	return FormatRecord(latest)
}

// FormatRecord renders one execution record as multi-line text.
func FormatRecord(r Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "layout execution %s at %s\n",
		r.ID, r.Timestamp.Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(&b, "  strategy=%s priority=%s\n", r.Plan.Strategy, r.Plan.Priority)
	fmt.Fprintf(&b, "  moves: %d total, %d succeeded, %d failed (%.1f%% success rate, pass success=%t)\n",
		r.Results.TotalMoves, r.Results.SuccessfulMoves, r.Results.FailedMoves,
		r.Results.SuccessRate()*100, r.Success)

	for _, d := range r.Results.Details {
		mark := "ok "
		if !d.Success {
			mark = "ERR"
		}
		fmt.Fprintf(&b, "  [%s] %s -> (%.1f, %.1f) %s", mark, d.ElementID, d.Target.X, d.Target.Y, d.Reason)
		if d.Error != "" {
			fmt.Fprintf(&b, ": %s", d.Error)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
