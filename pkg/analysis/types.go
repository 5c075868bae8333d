package analysis

import (
	"time"

	"github.com/edawolf/city-lines-sub002/pkg/geo"
	"github.com/edawolf/city-lines-sub002/pkg/region"
)

// Element is the read-only geometry view of one tracked element, as
// reported by the host's geometry provider at the start of a pass.
// The analysis engine never mutates elements; it only reads them.
type Element struct {
	ID             string    `json:"id" bson:"id"`
	Position       geo.Point `json:"position" bson:"position"`                 // Local position in the parent container
	GlobalPosition geo.Point `json:"global_position" bson:"global_position"`   // Viewport-space position
	Bounds         geo.Rect  `json:"bounds" bson:"bounds"`                     // Viewport-space bounding box
	ScaleX         float64   `json:"scale_x,omitempty" bson:"scale_x,omitempty"`
	ScaleY         float64   `json:"scale_y,omitempty" bson:"scale_y,omitempty"`
	Rotation       float64   `json:"rotation,omitempty" bson:"rotation,omitempty"`
	Visible        bool      `json:"visible" bson:"visible"`
	Alpha          float64   `json:"alpha" bson:"alpha"`
}

// PressureType classifies a detected conflict signal.
type PressureType string

// PressureOverlap marks two elements whose bounding boxes intersect.
const PressureOverlap PressureType = "overlap"

// Pressure is a conflict signal on one agent, referencing the agent
// that caused it.
type Pressure struct {
	Type      PressureType `json:"type" bson:"type"`
	Source    string       `json:"source" bson:"source"`       // Agent id that exerts the pressure
	Magnitude float64      `json:"magnitude" bson:"magnitude"` // Overlap ratio in [0,1]
}

// Report is the per-element snapshot produced by one analysis pass.
// Reports are recomputed from scratch every pass and never persisted.
type Report struct {
	AgentID    string     `json:"agent_id" bson:"agent_id"`
	Visibility float64    `json:"visibility" bson:"visibility"` // Fraction of bounds inside the viewport, in [0,1]
	Pressures  []Pressure `json:"pressures" bson:"pressures"`
}

// Cluster is a group of agents judged too close together. Members are
// listed in sorted-id order; that stored order is the order the
// planner spreads them in, so it is part of the contract.
type Cluster struct {
	Members  []string    `json:"members" bson:"members"`
	Region   region.Name `json:"region" bson:"region"`
	Centroid geo.Point   `json:"centroid" bson:"centroid"`
}

// Analysis is the immutable snapshot produced by one analysis pass.
// Sequences default to empty, never nil, so planning logic needs no
// null checks.
type Analysis struct {
	Reports   []Report     `json:"agent_reports" bson:"agent_reports"`
	Clusters  []Cluster    `json:"clusters" bson:"clusters"`
	Viewport  geo.Viewport `json:"viewport" bson:"viewport"`
	Timestamp time.Time    `json:"timestamp" bson:"timestamp"`
}

// Report returns the report for the given agent id, if present.
func (a *Analysis) Report(agentID string) (Report, bool) {
	for _, r := range a.Reports {
		if r.AgentID == agentID {
			return r, true
		}
	}
	return Report{}, false
}

// OverlapCount returns the number of distinct overlapping pairs in
// the snapshot. Each symmetric pressure pair counts once.
func (a *Analysis) OverlapCount() int {
	n := 0
	for _, r := range a.Reports {
		for _, p := range r.Pressures {
			if p.Type == PressureOverlap && r.AgentID < p.Source {
				n++
			}
		}
	}
	return n
}
