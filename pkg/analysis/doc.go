// Package analysis implements the global analysis engine of the
// layout intelligence pipeline.
//
// Given the observed geometry of all tracked elements and the current
// viewport, [Engine.Analyze] produces an immutable [Analysis]
// snapshot containing:
//
//   - Per-element [Report] values: the fraction of each element's
//     bounding box visible inside the viewport, plus the
//     environmental [Pressure] signals exerted on it by overlapping
//     neighbors.
//   - Cross-element patterns: [Cluster] groups of elements judged too
//     close together, each annotated with the semantic region nearest
//     to the group centroid.
//
// # Determinism
//
// Elements are processed in sorted-id order, pressures are emitted
// symmetrically per unordered pair, and cluster membership lists keep
// that sorted order. Calling Analyze twice with unchanged inputs
// yields structurally identical snapshots (timestamps aside), which
// is what makes the downstream planner testable.
//
// No state survives between passes: pressures and clusters are
// recomputed from scratch each time, never cached or incrementally
// updated.
package analysis
