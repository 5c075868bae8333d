package plan

import (
	"github.com/edawolf/city-lines-sub002/pkg/analysis"
	"github.com/edawolf/city-lines-sub002/pkg/geo"
	"github.com/edawolf/city-lines-sub002/pkg/region"
)

// VisibilityThreshold is the strict cutoff below which an element is
// considered off-screen and corrected. An element at exactly 0.5
// visibility is left alone.
const VisibilityThreshold = 0.5

// SafeAreaMargin is the inset, in viewport units, of the safe area
// targeted by visibility corrections.
const SafeAreaMargin = 50.0

// SeparationOffset is the horizontal distance, in viewport units, each
// member of an overlapping pair is pushed from the viewport center.
const SeparationOffset = 100.0

// Planner turns a global analysis into an execution plan.
//
// Three policies contribute moves independently; their outputs are
// concatenated, never merged. No policy inspects another policy's
// moves: if an element is touched twice in one pass, the applier's
// priority ordering decides which move lands last.
type Planner struct{}

// NewPlanner creates a planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Build produces an execution plan from the analysis snapshot. The
// returned plan always carries high priority and the conflict
// resolution strategy; individual move priorities rank the policies
// against each other.
func (p *Planner) Build(a *analysis.Analysis) *Plan {
	moves := []Move{}
	moves = append(moves, p.clusterMoves(a)...)
	moves = append(moves, p.visibilityMoves(a)...)
	moves = append(moves, p.conflictMoves(a)...)

	return &Plan{
		Moves:    moves,
		Priority: PriorityHigh,
		Strategy: StrategyConflictResolution,
	}
}

// clusterMoves spreads every cluster's members across the cluster's
// semantic region, in stored member order.
func (p *Planner) clusterMoves(a *analysis.Analysis) []Move {
	var moves []Move
	for _, cluster := range a.Clusters {
		rect := region.Resolve(cluster.Region, a.Viewport)
		positions := region.Spread(len(cluster.Members), rect)
		for i, member := range cluster.Members {
			moves = append(moves, Move{
				ElementID: member,
				Target:    positions[i],
				Reason:    ReasonClusterResolution,
				Priority:  PriorityCluster,
			})
		}
	}
	return moves
}

// visibilityMoves relocates every mostly off-screen element to the
// center of the safe area.
func (p *Planner) visibilityMoves(a *analysis.Analysis) []Move {
	safe := a.Viewport.Rect().Inset(SafeAreaMargin)
	target := safe.Center()

	var moves []Move
	for _, report := range a.Reports {
		if report.Visibility < VisibilityThreshold {
			moves = append(moves, Move{
				ElementID: report.AgentID,
				Target:    target,
				Reason:    ReasonVisibilityCorrection,
				Priority:  PriorityVisibility,
			})
		}
	}
	return moves
}

// conflictMoves separates each overlapping pair symmetrically about
// the viewport center along the horizontal axis. Pairs are
// deduplicated through a canonical sorted key so each symmetric
// pressure pair yields exactly one separation, and the
// lexicographically smaller id always takes the left position.
func (p *Planner) conflictMoves(a *analysis.Analysis) []Move {
	center := a.Viewport.Center()
	seen := make(map[[2]string]bool)

	var moves []Move
	for _, report := range a.Reports {
		for _, pressure := range report.Pressures {
			if pressure.Type != analysis.PressureOverlap {
				continue
			}

			lo, hi := report.AgentID, pressure.Source
			if lo > hi {
				lo, hi = hi, lo
			}
			key := [2]string{lo, hi}
			if seen[key] {
				continue
			}
			seen[key] = true

			moves = append(moves,
				Move{
					ElementID: lo,
					Target:    geo.Point{X: center.X - SeparationOffset, Y: center.Y},
					Reason:    ReasonConflictResolution,
					Priority:  PriorityConflict,
				},
				Move{
					ElementID: hi,
					Target:    geo.Point{X: center.X + SeparationOffset, Y: center.Y},
					Reason:    ReasonConflictResolution,
					Priority:  PriorityConflict,
				},
			)
		}
	}
	return moves
}
