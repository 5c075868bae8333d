package region

import (
	"math"

	"github.com/edawolf/city-lines-sub002/pkg/geo"
)

// Spread distributes count positions across rect in a near-square
// grid. A single item lands on the rectangle's exact center. Otherwise
// items fill a grid of cols = ceil(sqrt(count)) columns and
// rows = ceil(count/cols) rows in row-major order, each item placed at
// the center of its cell.
//
// The row-major fill order is part of the contract: callers rely on
// item i landing in a deterministic cell, so ties break by index
// order, never by spatial proximity.
func Spread(count int, rect geo.Rect) []geo.Point {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		return []geo.Point{rect.Center()}
	}

	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := int(math.Ceil(float64(count) / float64(cols)))
	cellW := rect.Width / float64(cols)
	cellH := rect.Height / float64(rows)

	positions := make([]geo.Point, count)
	for i := 0; i < count; i++ {
		row := i / cols
		col := i % cols
		positions[i] = geo.Point{
			X: rect.X + float64(col)*cellW + cellW/2,
			Y: rect.Y + float64(row)*cellH + cellH/2,
		}
	}
	return positions
}
