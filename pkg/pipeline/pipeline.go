// Package pipeline provides the core layout intelligence pipeline for
// city-lines.
//
// This package implements the complete analyze → plan → apply cycle
// that can be used by CLI, API, and TUI components. By centralizing
// this logic, we ensure consistent behavior across all entry points
// and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Analyze: snapshot the tracked elements' geometry and detect
//     layout defects (clusters, off-screen placement, overlaps)
//  2. Plan: build a prioritized corrective movement plan
//  3. Apply: execute the moves through the registry's mover capability
//     and append the outcome to the execution history
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
// Create a Runner over a registry and execute passes:
//
//	runner := pipeline.NewRunner(registry, nil, logger)
//	runner.SetViewport(1920, 1080)
//	result, err := runner.Execute(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(runner.Summary())
//
// Run the analysis stage alone:
//
//	snapshot, err := runner.Analyze(ctx)
//
// # Concurrency
//
// One pass runs synchronously to completion with no suspension
// points. The Runner does not guard against re-entrant invocations;
// hosts that trigger passes from multiple goroutines (for example an
// HTTP server, or resize events racing a running pass) must serialize
// calls to Execute and SetViewport themselves.
package pipeline

import (
	"github.com/edawolf/city-lines-sub002/pkg/analysis"
	"github.com/edawolf/city-lines-sub002/pkg/exec"
	"github.com/edawolf/city-lines-sub002/pkg/plan"
	"time"
)

// Default viewport dimensions used until the host reports real ones.
const (
	DefaultViewportWidth  = 800.0
	DefaultViewportHeight = 600.0
)

// Result contains the outputs of one full pass.
type Result struct {
	// Analysis is the global analysis snapshot the pass was planned from.
	Analysis *analysis.Analysis

	// Plan is the corrective movement plan that was applied.
	Plan *plan.Plan

	// Execution aggregates the per-move outcomes.
	Execution exec.Result

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pass execution statistics.
type Stats struct {
	ElementCount int
	ClusterCount int
	OverlapCount int
	AnalyzeTime  time.Duration
	PlanTime     time.Duration
	ApplyTime    time.Duration
}
