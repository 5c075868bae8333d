package region_test

import (
	"fmt"

	"github.com/edawolf/city-lines-sub002/pkg/geo"
	"github.com/edawolf/city-lines-sub002/pkg/region"
)

func ExampleResolve() {
	vp := geo.Viewport{Width: 1000, Height: 800}
	r := region.Resolve(region.TopLeft, vp)
	fmt.Printf("origin (%.0f, %.0f) size %.0fx%.0f\n", r.X, r.Y, r.Width, r.Height)
	// Output: origin (50, 50) size 400x320
}

func ExampleSpread() {
	rect := geo.Rect{X: 200, Y: 160, Width: 600, Height: 480}
	for _, p := range region.Spread(4, rect) {
		fmt.Printf("(%.0f, %.0f)\n", p.X, p.Y)
	}
	// Output:
	// (350, 280)
	// (650, 280)
	// (350, 520)
	// (650, 520)
}
