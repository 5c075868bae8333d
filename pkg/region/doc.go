// Package region maps semantic viewport zones to rectangles and
// distributes points inside them.
//
// The package provides the two pure building blocks the layout
// intelligence pipeline composes when relocating elements:
//
//   - [Resolve]: semantic name ("top-left", "center", ...) → viewport
//     rectangle, with a constant margin so regions never touch the
//     viewport boundary.
//   - [Spread]: distribute N items into a near-square grid inside a
//     rectangle, in row-major order.
//
// Both functions are deterministic and side-effect free, so results
// are re-derivable purely from their inputs. That property is what
// makes planned moves reproducible across passes.
//
// # Example
//
// Spreading four elements over the center region of a 1000×800
// viewport:
//
//	vp := geo.Viewport{Width: 1000, Height: 800}
//	rect := region.Resolve(region.Center, vp)  // {200, 160, 600, 480}
//	pts := region.Spread(4, rect)              // (350,280) (650,280) (350,520) (650,520)
package region
