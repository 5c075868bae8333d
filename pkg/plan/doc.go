// Package plan builds prioritized corrective movement plans from
// global layout analyses.
//
// The [Planner] runs three independent policies over one
// analysis.Analysis snapshot and concatenates their moves:
//
//  1. Cluster resolution (priority 0.8): spread each cluster's
//     members over the cluster's semantic region.
//  2. Visibility correction (priority 0.9): pull mostly off-screen
//     elements (visibility strictly below 0.5) to the center of the
//     safe area, the viewport inset by 50 units.
//  3. Conflict resolution (priority 0.7): separate each overlapping
//     pair horizontally about the viewport center, 100 units to
//     either side.
//
// Policies never coordinate. When two policies target the same
// element in one pass, both moves are queued; the applier executes
// moves in descending priority order and the move applied last wins.
package plan
