package plan

import (
	"github.com/edawolf/city-lines-sub002/pkg/geo"
)

// Reason tags why a move was planned.
type Reason string

// Move reasons, one per planning policy.
const (
	ReasonClusterResolution  Reason = "cluster_resolution"
	ReasonVisibilityCorrection Reason = "visibility_correction"
	ReasonConflictResolution Reason = "conflict_resolution"
)

// Priority classifies an execution plan as a whole.
type Priority string

// Plan priorities.
const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Strategy names the overall approach a plan embodies.
type Strategy string

// Plan strategies.
const (
	StrategyConflictResolution Strategy = "conflict_resolution"
	StrategyOptimization       Strategy = "optimization"
	StrategyEmergency          Strategy = "emergency"
)

// Move priorities per policy. Higher priority moves execute first;
// when one element is targeted by several policies in a pass, the
// lowest-priority move lands last and wins.
const (
	PriorityVisibility = 0.9
	PriorityCluster    = 0.8
	PriorityConflict   = 0.7
)

// Move is a proposed relocation of one element.
type Move struct {
	ElementID string    `json:"element_id" bson:"element_id"`
	Target    geo.Point `json:"target" bson:"target"`
	Reason    Reason    `json:"reason" bson:"reason"`
	Priority  float64   `json:"priority" bson:"priority"` // In [0,1]
}

// Plan is a prioritized list of target moves built fresh each pass.
// Moves may target the same element more than once; execution order
// decides which lands last.
type Plan struct {
	Moves    []Move   `json:"moves" bson:"moves"`
	Priority Priority `json:"priority" bson:"priority"`
	Strategy Strategy `json:"strategy" bson:"strategy"`
}

// Empty reports whether the plan contains no moves.
func (p *Plan) Empty() bool { return len(p.Moves) == 0 }

// CountByReason returns how many moves carry each reason.
func (p *Plan) CountByReason() map[Reason]int {
	counts := make(map[Reason]int)
	for _, m := range p.Moves {
		counts[m.Reason]++
	}
	return counts
}
