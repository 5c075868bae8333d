// Package pkg provides the core libraries for the citylines layout
// intelligence pipeline.
//
// # Overview
//
// Citylines watches the geometry of on-screen elements and keeps a
// scene readable: it detects crowded clusters, off-screen drift and
// overlapping pairs, then applies prioritized corrective moves. The
// pkg directory is organized into four main areas:
//
//  1. Geometry and zoning ([geo], [region]) - primitives and the
//     semantic viewport zones targets are resolved against
//  2. The pipeline core ([analysis], [plan], [exec], [pipeline]) -
//     the analyze → plan → apply cycle and its execution history
//  3. The scene layer ([scene], [scene/store]) - live element
//     registries, scene documents, and their storage backends
//  4. Support ([cache], [errors], [observability], [buildinfo],
//     [render/pressure]) - artifact caching, structured errors,
//     instrumentation hooks, and diagnostic rendering
//
// # Architecture
//
// The typical data flow through one layout pass:
//
//	Scene (file or store)
//	         ↓
//	scene.Registry  - live elements, geometry provider and mover
//	         ↓
//	analysis.Engine - visibility, overlap pressures, clusters
//	         ↓
//	plan.Planner    - prioritized corrective moves
//	         ↓
//	exec.Applier    - applies moves through the registry,
//	                  appends to the execution history
//
// The pipeline package wires these stages into a reusable Runner; the
// CLI, HTTP server and TUI are thin hosts around it.
package pkg
