package geo

import (
	"math"
	"testing"
)

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		want     Rect
		wantHit  bool
	}{
		{
			name:    "Disjoint",
			a:       Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:       Rect{X: 20, Y: 20, Width: 10, Height: 10},
			wantHit: false,
		},
		{
			name:    "Touching edges do not intersect",
			a:       Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:       Rect{X: 10, Y: 0, Width: 10, Height: 10},
			wantHit: false,
		},
		{
			name:    "Partial overlap",
			a:       Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:       Rect{X: 5, Y: 5, Width: 10, Height: 10},
			want:    Rect{X: 5, Y: 5, Width: 5, Height: 5},
			wantHit: true,
		},
		{
			name:    "Contained",
			a:       Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:       Rect{X: 2, Y: 2, Width: 4, Height: 4},
			want:    Rect{X: 2, Y: 2, Width: 4, Height: 4},
			wantHit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.a.Intersect(tt.b)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && got != tt.want {
				t.Errorf("intersection = %+v, want %+v", got, tt.want)
			}

			// Intersection is symmetric.
			rev, revHit := tt.b.Intersect(tt.a)
			if revHit != hit || rev != got {
				t.Errorf("intersection is not symmetric: %+v vs %+v", got, rev)
			}
		})
	}
}

func TestRectArea(t *testing.T) {
	if got := (Rect{Width: 4, Height: 5}).Area(); got != 20 {
		t.Errorf("area = %v, want 20", got)
	}
	if got := (Rect{Width: 0, Height: 5}).Area(); got != 0 {
		t.Errorf("zero-width area = %v, want 0", got)
	}
	if got := (Rect{Width: -3, Height: 5}).Area(); got != 0 {
		t.Errorf("negative-width area = %v, want 0", got)
	}
}

func TestRectCenterAndInset(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 60}
	if got := r.Center(); got != (Point{X: 60, Y: 50}) {
		t.Errorf("center = %+v", got)
	}
	if got := r.Inset(5); got != (Rect{X: 15, Y: 25, Width: 90, Height: 50}) {
		t.Errorf("inset = %+v", got)
	}
}

func TestViewportValid(t *testing.T) {
	tests := []struct {
		name string
		v    Viewport
		want bool
	}{
		{"Normal", Viewport{Width: 1000, Height: 800}, true},
		{"ZeroWidth", Viewport{Width: 0, Height: 800}, false},
		{"NegativeHeight", Viewport{Width: 1000, Height: -1}, false},
		{"NaN", Viewport{Width: math.NaN(), Height: 800}, false},
		{"Inf", Viewport{Width: 1000, Height: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointDistance(t *testing.T) {
	if got := (Point{X: 0, Y: 0}).DistanceTo(Point{X: 3, Y: 4}); got != 5 {
		t.Errorf("distance = %v, want 5", got)
	}
}
