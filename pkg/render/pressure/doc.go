// Package pressure renders analysis snapshots as pressure graphs.
//
// # Overview
//
// This package produces a diagnostic visualization of one analysis
// pass using Graphviz: every tracked element appears as a box, every
// overlap pressure as an edge labeled with its magnitude, and every
// cluster as a dashed subgraph labeled with the region it crowds.
// Elements below half visibility are filled red.
//
// The graph shows topology, not geometry. It answers "what is pressing
// on what" at a glance; it does not reproduce on-screen positions.
//
// # Usage
//
// Convert a snapshot to DOT format, then render to SVG:
//
//	dot := pressure.ToDOT(snapshot, pressure.Options{})
//	svg, err := pressure.RenderSVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses the fdp layout engine, which places nodes by
// force-directed simulation so heavily connected elements end up near
// each other.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package pressure
