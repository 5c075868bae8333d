package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/edawolf/city-lines-sub002/pkg/analysis"
	"github.com/edawolf/city-lines-sub002/pkg/exec"
	"github.com/edawolf/city-lines-sub002/pkg/geo"
	"github.com/edawolf/city-lines-sub002/pkg/observability"
	"github.com/edawolf/city-lines-sub002/pkg/plan"
	"github.com/edawolf/city-lines-sub002/pkg/scene"
)

// Runner encapsulates pass execution over one element registry.
//
// The Runner owns the shared viewport snapshot and the execution
// history; everything else is recomputed per pass. It holds no cached
// analysis state between passes.
type Runner struct {
	Engine  *analysis.Engine
	Planner *plan.Planner
	Applier *exec.Applier
	Logger  *log.Logger

	registry *scene.Registry
	viewport geo.Viewport
}

// NewRunner creates a runner over the given registry.
// If history is nil, a fresh one with the default capacity is used.
// If logger is nil, the default logger is used.
func NewRunner(registry *scene.Registry, history *exec.History, logger *log.Logger) *Runner {
	if registry == nil {
		registry = scene.NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Engine:   analysis.NewEngine(),
		Planner:  plan.NewPlanner(),
		Applier:  exec.NewApplier(history, logger),
		Logger:   logger,
		registry: registry,
		viewport: geo.Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
	}
}

// Registry returns the element registry the runner observes.
func (r *Runner) Registry() *scene.Registry {
	return r.registry
}

// SetViewport updates the shared viewport snapshot used by all
// subsequent passes. All geometry math within one pass reads the
// value captured when the pass starts.
func (r *Runner) SetViewport(width, height float64) {
	r.viewport = geo.Viewport{Width: width, Height: height}
}

// Viewport returns the current viewport snapshot.
func (r *Runner) Viewport() geo.Viewport {
	return r.viewport
}

// Analyze runs the analysis stage alone and returns the snapshot.
func (r *Runner) Analyze(ctx context.Context) (*analysis.Analysis, error) {
	elements := r.registry.Snapshot()

	observability.Layout().OnAnalyzeStart(ctx, len(elements))
	start := time.Now()
	snapshot, err := r.Engine.Analyze(elements, r.viewport)
	observability.Layout().OnAnalyzeComplete(ctx, len(elements), clusterCount(snapshot), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return snapshot, nil
}

// Execute runs one complete analyze → plan → apply pass.
//
// Per-move failures are recovered inside the apply stage and surface
// only through the result counts and details; the returned error is
// reserved for pass-level problems such as an invalid viewport.
func (r *Runner) Execute(ctx context.Context) (*Result, error) {
	result := &Result{}
	vp := r.viewport

	// Stage 1: Analyze
	elements := r.registry.Snapshot()
	observability.Layout().OnAnalyzeStart(ctx, len(elements))
	analyzeStart := time.Now()
	snapshot, err := r.Engine.Analyze(elements, vp)
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	observability.Layout().OnAnalyzeComplete(ctx, len(elements), clusterCount(snapshot), result.Stats.AnalyzeTime, err)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Analysis = snapshot
	result.Stats.ElementCount = len(snapshot.Reports)
	result.Stats.ClusterCount = len(snapshot.Clusters)
	result.Stats.OverlapCount = snapshot.OverlapCount()

	r.Logger.Info("analyzed scene",
		"elements", result.Stats.ElementCount,
		"clusters", result.Stats.ClusterCount,
		"overlaps", result.Stats.OverlapCount,
		"duration", result.Stats.AnalyzeTime)

	// Stage 2: Plan
	planStart := time.Now()
	p := r.Planner.Build(snapshot)
	result.Plan = p
	result.Stats.PlanTime = time.Since(planStart)
	observability.Layout().OnPlanBuilt(ctx, len(p.Moves), result.Stats.PlanTime)

	r.Logger.Info("built execution plan",
		"moves", len(p.Moves),
		"strategy", p.Strategy,
		"duration", result.Stats.PlanTime)

	// Stage 3: Apply
	applyStart := time.Now()
	result.Execution = r.Applier.Apply(p, r.registry)
	result.Stats.ApplyTime = time.Since(applyStart)
	observability.Layout().OnApplyComplete(ctx, result.Execution.TotalMoves, result.Execution.FailedMoves, result.Stats.ApplyTime)

	r.Logger.Info("applied moves",
		"total", result.Execution.TotalMoves,
		"succeeded", result.Execution.SuccessfulMoves,
		"failed", result.Execution.FailedMoves,
		"duration", result.Stats.ApplyTime)

	return result, nil
}

// History returns the execution history.
func (r *Runner) History() *exec.History {
	return r.Applier.History()
}

// Summary renders the latest execution record as human-readable text.
func (r *Runner) Summary() string {
	return r.Applier.History().Summary()
}

func clusterCount(a *analysis.Analysis) int {
	if a == nil {
		return 0
	}
	return len(a.Clusters)
}
