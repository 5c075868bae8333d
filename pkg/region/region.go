package region

import (
	"github.com/edawolf/city-lines-sub002/pkg/geo"
)

// Name identifies one of the semantic viewport zones.
type Name string

// The nine named regions. Unknown names resolve to Center.
const (
	TopLeft     Name = "top-left"
	TopRight    Name = "top-right"
	BottomLeft  Name = "bottom-left"
	BottomRight Name = "bottom-right"
	Top         Name = "top"
	Bottom      Name = "bottom"
	Left        Name = "left"
	Right       Name = "right"
	Center      Name = "center"
)

// Margin is the constant inset, in viewport units, kept between a
// region's far edges and the viewport boundary.
const Margin = 50.0

// Names lists all named regions in a stable order.
var Names = []Name{
	TopLeft, TopRight, BottomLeft, BottomRight,
	Top, Bottom, Left, Right, Center,
}

// Resolve maps a semantic region name to a viewport-relative rectangle.
// Each region is a fixed fractional zone of the viewport with Margin
// subtracted from the far edges so regions never touch the boundary.
// Unknown or empty names resolve to Center.
//
// Resolve is pure: the result depends only on (name, viewport).
func Resolve(name Name, vp geo.Viewport) geo.Rect {
	w, h := vp.Width, vp.Height
	const m = Margin

	switch name {
	case TopLeft:
		return geo.Rect{X: m, Y: m, Width: 0.4 * w, Height: 0.4 * h}
	case TopRight:
		return geo.Rect{X: 0.6 * w, Y: m, Width: 0.4*w - m, Height: 0.4 * h}
	case BottomLeft:
		return geo.Rect{X: m, Y: 0.6 * h, Width: 0.4 * w, Height: 0.4*h - m}
	case BottomRight:
		return geo.Rect{X: 0.6 * w, Y: 0.6 * h, Width: 0.4*w - m, Height: 0.4*h - m}
	case Top:
		return geo.Rect{X: m, Y: m, Width: w - 2*m, Height: 0.3 * h}
	case Bottom:
		return geo.Rect{X: m, Y: 0.7 * h, Width: w - 2*m, Height: 0.3*h - m}
	case Left:
		return geo.Rect{X: m, Y: m, Width: 0.3 * w, Height: h - 2*m}
	case Right:
		return geo.Rect{X: 0.7 * w, Y: m, Width: 0.3*w - m, Height: h - 2*m}
	default:
		return geo.Rect{X: 0.2 * w, Y: 0.2 * h, Width: 0.6 * w, Height: 0.6 * h}
	}
}

// Nearest returns the named region whose rectangle center is closest
// to p for the given viewport. Ties break in Names order.
func Nearest(p geo.Point, vp geo.Viewport) Name {
	best := Center
	bestDist := -1.0
	for _, name := range Names {
		d := Resolve(name, vp).Center().DistanceTo(p)
		if bestDist < 0 || d < bestDist {
			best = name
			bestDist = d
		}
	}
	return best
}
