// Package exec applies execution plans through an injected mover
// capability and keeps the in-memory execution history.
//
// The [Applier] sorts a plan's moves by priority (descending, stable
// on ties), applies each through a [Mover], and aggregates a
// [Result] with one detail entry per attempted move. Failures are
// recovered at the per-move boundary: a rejected or erroring move
// never blocks the rest of the batch, and never propagates past the
// applier.
//
// After each batch the applier appends an immutable [Record] to a
// [History] ring buffer. History retention is bounded and purely
// in-memory; [History.Summary] renders the latest record as
// diagnostic text and is the only supported read path.
package exec
