package analysis

import (
	"slices"
	"strings"
	"time"

	"github.com/edawolf/city-lines-sub002/pkg/errors"
	"github.com/edawolf/city-lines-sub002/pkg/geo"
	"github.com/edawolf/city-lines-sub002/pkg/region"
)

// DefaultProximityThreshold is the center-to-center distance, in
// viewport units, below which two non-overlapping elements are still
// considered clustered.
const DefaultProximityThreshold = 150.0

// Engine computes global layout analyses from element geometry.
//
// The engine is stateless between passes: every call to Analyze
// recomputes visibility, pressures, and clusters from scratch, so two
// calls with unchanged inputs yield structurally identical snapshots.
type Engine struct {
	// ProximityThreshold controls cluster detection. Elements whose
	// centers are closer than this (or whose boxes overlap) are
	// connected into the same cluster.
	ProximityThreshold float64
}

// NewEngine creates an engine with default thresholds.
func NewEngine() *Engine {
	return &Engine{ProximityThreshold: DefaultProximityThreshold}
}

// Analyze produces a global analysis snapshot for the given elements
// and viewport. Elements are processed in sorted-id order regardless
// of input order, which makes the snapshot deterministic.
//
// An invalid viewport (non-positive, NaN, or infinite dimensions) is a
// caller-configuration error and aborts the whole pass.
func (e *Engine) Analyze(elements []Element, vp geo.Viewport) (*Analysis, error) {
	if !vp.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidViewport,
			"viewport %gx%g is not drawable", vp.Width, vp.Height)
	}

	sorted := make([]Element, len(elements))
	copy(sorted, elements)
	slices.SortFunc(sorted, func(a, b Element) int {
		return strings.Compare(a.ID, b.ID)
	})

	a := &Analysis{
		Reports:   make([]Report, 0, len(sorted)),
		Clusters:  []Cluster{},
		Viewport:  vp,
		Timestamp: time.Now(),
	}

	for _, el := range sorted {
		a.Reports = append(a.Reports, Report{
			AgentID:    el.ID,
			Visibility: visibility(el, vp),
			Pressures:  []Pressure{},
		})
	}

	e.detectOverlaps(sorted, a)
	a.Clusters = e.detectClusters(sorted, vp)

	return a, nil
}

// visibility returns the fraction of the element's bounding box area
// inside the viewport. A zero-area box degenerates to a point test on
// the element's global position.
func visibility(el Element, vp geo.Viewport) float64 {
	area := el.Bounds.Area()
	if area == 0 {
		if vp.Rect().Contains(el.GlobalPosition) {
			return 1
		}
		return 0
	}

	inter, ok := el.Bounds.Intersect(vp.Rect())
	if !ok {
		return 0
	}
	frac := inter.Area() / area
	if frac > 1 {
		frac = 1
	}
	return frac
}

// detectOverlaps emits a symmetric overlap pressure on both members of
// every unordered pair of elements whose bounding boxes intersect.
func (e *Engine) detectOverlaps(sorted []Element, a *Analysis) {
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			inter, ok := sorted[i].Bounds.Intersect(sorted[j].Bounds)
			if !ok {
				continue
			}
			mag := overlapMagnitude(inter, sorted[i].Bounds, sorted[j].Bounds)
			a.Reports[i].Pressures = append(a.Reports[i].Pressures, Pressure{
				Type: PressureOverlap, Source: sorted[j].ID, Magnitude: mag,
			})
			a.Reports[j].Pressures = append(a.Reports[j].Pressures, Pressure{
				Type: PressureOverlap, Source: sorted[i].ID, Magnitude: mag,
			})
		}
	}
}

// overlapMagnitude is the intersection area relative to the smaller of
// the two boxes, clamped to [0,1]. A degenerate box counts as fully
// overlapped.
func overlapMagnitude(inter, a, b geo.Rect) float64 {
	minArea := a.Area()
	if ba := b.Area(); ba < minArea {
		minArea = ba
	}
	if minArea == 0 {
		return 1
	}
	mag := inter.Area() / minArea
	if mag > 1 {
		mag = 1
	}
	return mag
}

// detectClusters groups elements into connected components where an
// edge exists between two elements whose boxes overlap or whose
// centers sit within the proximity threshold. Components of size >= 2
// become clusters, annotated with the named region nearest to the
// component centroid.
func (e *Engine) detectClusters(sorted []Element, vp geo.Viewport) []Cluster {
	threshold := e.ProximityThreshold
	if threshold <= 0 {
		threshold = DefaultProximityThreshold
	}

	n := len(sorted)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(x, y int) {
		rx, ry := find(x), find(y)
		if rx != ry {
			parent[ry] = rx
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if sorted[i].Bounds.Intersects(sorted[j].Bounds) ||
				sorted[i].Bounds.Center().DistanceTo(sorted[j].Bounds.Center()) < threshold {
				union(i, j)
			}
		}
	}

	// Collect components keyed by root, preserving sorted-id order
	// inside each component.
	components := make(map[int][]int)
	roots := []int{}
	for i := 0; i < n; i++ {
		r := find(i)
		if _, seen := components[r]; !seen {
			roots = append(roots, r)
		}
		components[r] = append(components[r], i)
	}

	clusters := []Cluster{}
	for _, r := range roots {
		idx := components[r]
		if len(idx) < 2 {
			continue
		}

		members := make([]string, len(idx))
		var cx, cy float64
		for k, i := range idx {
			members[k] = sorted[i].ID
			c := sorted[i].Bounds.Center()
			cx += c.X
			cy += c.Y
		}
		centroid := geo.Point{X: cx / float64(len(idx)), Y: cy / float64(len(idx))}

		clusters = append(clusters, Cluster{
			Members:  members,
			Region:   region.Nearest(centroid, vp),
			Centroid: centroid,
		})
	}

	return clusters
}
