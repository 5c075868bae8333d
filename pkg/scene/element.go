package scene

import (
	"github.com/edawolf/city-lines-sub002/pkg/analysis"
	"github.com/edawolf/city-lines-sub002/pkg/geo"
)

// Element is a visual element under layout observation. The scene
// graph owns the element; the layout pipeline only reads its reported
// geometry and writes target positions back through the registry's
// mover capability.
type Element struct {
	ID             string
	Position       geo.Point // Local position in the parent container
	GlobalPosition geo.Point // Viewport-space position
	Bounds         geo.Rect  // Viewport-space bounding box
	ScaleX         float64
	ScaleY         float64
	Rotation       float64
	Visible        bool
	Alpha          float64
}

// state returns the read-only analysis view of the element.
func (e *Element) state() analysis.Element {
	return analysis.Element{
		ID:             e.ID,
		Position:       e.Position,
		GlobalPosition: e.GlobalPosition,
		Bounds:         e.Bounds,
		ScaleX:         e.ScaleX,
		ScaleY:         e.ScaleY,
		Rotation:       e.Rotation,
		Visible:        e.Visible,
		Alpha:          e.Alpha,
	}
}

// moveTo relocates the element so its bounding box is centered on
// target. Local and global positions track the same point in this
// flat demo scene graph.
func (e *Element) moveTo(target geo.Point) {
	e.Position = target
	e.GlobalPosition = target
	e.Bounds = geo.RectAround(target, e.Bounds.Width, e.Bounds.Height)
}
