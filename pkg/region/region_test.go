package region

import (
	"testing"

	"github.com/edawolf/city-lines-sub002/pkg/geo"
)

var testViewport = geo.Viewport{Width: 1000, Height: 800}

func TestResolve(t *testing.T) {
	tests := []struct {
		name Name
		want geo.Rect
	}{
		{TopLeft, geo.Rect{X: 50, Y: 50, Width: 400, Height: 320}},
		{TopRight, geo.Rect{X: 600, Y: 50, Width: 350, Height: 320}},
		{BottomLeft, geo.Rect{X: 50, Y: 480, Width: 400, Height: 270}},
		{BottomRight, geo.Rect{X: 600, Y: 480, Width: 350, Height: 270}},
		{Top, geo.Rect{X: 50, Y: 50, Width: 900, Height: 240}},
		{Bottom, geo.Rect{X: 50, Y: 560, Width: 900, Height: 190}},
		{Left, geo.Rect{X: 50, Y: 50, Width: 300, Height: 700}},
		{Right, geo.Rect{X: 700, Y: 50, Width: 250, Height: 700}},
		{Center, geo.Rect{X: 200, Y: 160, Width: 600, Height: 480}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got := Resolve(tt.name, testViewport)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolveUnknownFallsBackToCenter(t *testing.T) {
	want := Resolve(Center, testViewport)
	for _, name := range []Name{"", "middle", "north-west"} {
		if got := Resolve(name, testViewport); got != want {
			t.Errorf("Resolve(%q) = %+v, want center %+v", name, got, want)
		}
	}
}

func TestResolveStaysInsideViewport(t *testing.T) {
	vp := testViewport.Rect()
	for _, name := range Names {
		r := Resolve(name, testViewport)
		if r.X < 0 || r.Y < 0 || r.MaxX() > vp.Width || r.MaxY() > vp.Height {
			t.Errorf("region %q = %+v escapes viewport %+v", name, r, vp)
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	for _, name := range Names {
		a := Resolve(name, testViewport)
		b := Resolve(name, testViewport)
		if a != b {
			t.Errorf("Resolve(%q) not deterministic: %+v vs %+v", name, a, b)
		}
	}
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name string
		p    geo.Point
		want Name
	}{
		{"TopLeftCorner", geo.Point{X: 100, Y: 100}, TopLeft},
		{"Middle", geo.Point{X: 500, Y: 400}, Center},
		{"FarRight", geo.Point{X: 950, Y: 400}, Right},
		{"BottomEdge", geo.Point{X: 500, Y: 780}, Bottom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nearest(tt.p, testViewport); got != tt.want {
				t.Errorf("Nearest(%+v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

func TestSpread(t *testing.T) {
	rect := geo.Rect{X: 200, Y: 160, Width: 600, Height: 480}

	t.Run("SingleItemLandsOnCenter", func(t *testing.T) {
		got := Spread(1, rect)
		if len(got) != 1 {
			t.Fatalf("len = %d, want 1", len(got))
		}
		if got[0] != rect.Center() {
			t.Errorf("position = %+v, want %+v", got[0], rect.Center())
		}
	})

	t.Run("FourItemsFormTwoByTwoGrid", func(t *testing.T) {
		want := []geo.Point{
			{X: 350, Y: 280},
			{X: 650, Y: 280},
			{X: 350, Y: 520},
			{X: 650, Y: 520},
		}
		got := Spread(4, rect)
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position[%d] = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("AllPositionsInsideRect", func(t *testing.T) {
		for _, n := range []int{2, 3, 5, 7, 9, 16, 23} {
			got := Spread(n, rect)
			if len(got) != n {
				t.Fatalf("Spread(%d): len = %d", n, len(got))
			}
			for i, p := range got {
				if !rect.Contains(p) {
					t.Errorf("Spread(%d)[%d] = %+v outside %+v", n, i, p, rect)
				}
			}
		}
	})

	t.Run("NonPositiveCount", func(t *testing.T) {
		if got := Spread(0, rect); got != nil {
			t.Errorf("Spread(0) = %v, want nil", got)
		}
		if got := Spread(-3, rect); got != nil {
			t.Errorf("Spread(-3) = %v, want nil", got)
		}
	})
}
