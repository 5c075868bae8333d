package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edawolf/city-lines-sub002/pkg/errors"
	"github.com/edawolf/city-lines-sub002/pkg/geo"
)

func validScene() *Scene {
	return &Scene{
		Name:     "test",
		Viewport: geo.Viewport{Width: 1000, Height: 800},
		Elements: []ElementSpec{
			{ID: "a", X: 100, Y: 100, Width: 40, Height: 40},
			{ID: "b", X: 500, Y: 400, Width: 60, Height: 20, Scale: 2},
		},
	}
}

func TestSceneValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Scene)
		wantCode errors.Code
	}{
		{"Valid", func(s *Scene) {}, ""},
		{"ZeroViewport", func(s *Scene) { s.Viewport.Width = 0 }, errors.ErrCodeInvalidViewport},
		{"DuplicateID", func(s *Scene) { s.Elements[1].ID = "a" }, errors.ErrCodeInvalidScene},
		{"EmptyID", func(s *Scene) { s.Elements[0].ID = "" }, errors.ErrCodeInvalidScene},
		{"NegativeExtent", func(s *Scene) { s.Elements[0].Width = -1 }, errors.ErrCodeInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScene()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestSceneRegistry(t *testing.T) {
	reg, err := validScene().Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("len = %d, want 2", reg.Len())
	}

	a, ok := reg.Get("a")
	if !ok {
		t.Fatal("element a missing")
	}
	if a.Bounds != (geo.Rect{X: 80, Y: 80, Width: 40, Height: 40}) {
		t.Errorf("a bounds = %+v", a.Bounds)
	}
	if a.ScaleX != 1 || a.Alpha != 1 || !a.Visible {
		t.Errorf("a defaults = %+v", a)
	}

	// b has scale 2, so its 60x20 box becomes 120x40 centered on (500,400).
	b, _ := reg.Get("b")
	if b.Bounds != (geo.Rect{X: 440, Y: 380, Width: 120, Height: 40}) {
		t.Errorf("b bounds = %+v", b.Bounds)
	}
}

func TestRegistryRegisterAndUnregister(t *testing.T) {
	reg := NewRegistry()
	el := &Element{ID: "spark", Bounds: geo.Rect{Width: 10, Height: 10}, Visible: true, Alpha: 1}

	if err := reg.Register(el); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(&Element{ID: "spark"}); !errors.Is(err, errors.ErrCodeDuplicateElement) {
		t.Errorf("duplicate Register error = %v", err)
	}
	if err := reg.Register(&Element{ID: ""}); err == nil {
		t.Error("empty id Register succeeded")
	}

	if !reg.Unregister("spark") {
		t.Error("Unregister(spark) = false")
	}
	if reg.Unregister("spark") {
		t.Error("second Unregister(spark) = true")
	}
	if reg.Len() != 0 {
		t.Errorf("len = %d after unregister", reg.Len())
	}
}

func TestRegistrySnapshotIsSortedAndDetached(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(&Element{ID: id, Bounds: geo.Rect{Width: 10, Height: 10}}); err != nil {
			t.Fatalf("Register(%s): %v", id, err)
		}
	}

	snap := reg.Snapshot()
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if snap[i].ID != want[i] {
			t.Fatalf("snapshot order = %v", snap)
		}
	}

	// Mutating the snapshot must not touch the registry.
	snap[0].Bounds.X = 999
	el, _ := reg.Get("alpha")
	if el.Bounds.X == 999 {
		t.Error("snapshot shares state with registry")
	}
}

func TestRegistryMove(t *testing.T) {
	reg := NewRegistry()
	el := &Element{
		ID:     "a",
		Bounds: geo.Rect{X: 0, Y: 0, Width: 40, Height: 40},
	}
	if err := reg.Register(el); err != nil {
		t.Fatalf("Register: %v", err)
	}

	ok, err := reg.Move("a", geo.Point{X: 500, Y: 400})
	if !ok || err != nil {
		t.Fatalf("Move = %v, %v", ok, err)
	}
	moved, _ := reg.Get("a")
	if moved.GlobalPosition != (geo.Point{X: 500, Y: 400}) {
		t.Errorf("position = %+v", moved.GlobalPosition)
	}
	if moved.Bounds != (geo.Rect{X: 480, Y: 380, Width: 40, Height: 40}) {
		t.Errorf("bounds = %+v, want recentered box", moved.Bounds)
	}

	ok, err = reg.Move("ghost", geo.Point{X: 1, Y: 1})
	if ok {
		t.Error("Move(ghost) = true")
	}
	if !errors.Is(err, errors.ErrCodeUnknownElement) {
		t.Errorf("Move(ghost) error = %v, want UNKNOWN_ELEMENT", err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	content := `
name = "demo"

[viewport]
width = 1000.0
height = 800.0

[[elements]]
id = "spark-1"
x = 120.0
y = 90.0
width = 40.0
height = 40.0

[[elements]]
id = "spark-2"
x = 150.0
y = 110.0
width = 40.0
height = 40.0
scale = 1.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "demo" || len(s.Elements) != 2 {
		t.Errorf("scene = %+v", s)
	}
	if s.Viewport != (geo.Viewport{Width: 1000, Height: 800}) {
		t.Errorf("viewport = %+v", s.Viewport)
	}
	if s.Elements[1].Scale != 1.5 {
		t.Errorf("scale = %v", s.Elements[1].Scale)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.json")
	content := `{
  "name": "demo",
  "viewport": {"width": 640, "height": 480},
  "elements": [
    {"id": "a", "x": 100, "y": 100, "width": 20, "height": 20}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Elements) != 1 || s.Elements[0].ID != "a" {
		t.Errorf("scene = %+v", s)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("missing.json"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := Load("scene.yaml"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("unsupported format error = %v", err)
	}
}

func TestSceneRoundTrip(t *testing.T) {
	s := validScene()
	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Name != s.Name || len(back.Elements) != len(s.Elements) {
		t.Errorf("round trip = %+v", back)
	}
}
