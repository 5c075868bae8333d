package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/edawolf/city-lines-sub002/pkg/errors"
	"github.com/edawolf/city-lines-sub002/pkg/geo"
)

// Scene is the serialization format for a demo scene: a viewport plus
// the elements placed in it. Scenes are the geometry input of the
// layout pipeline and the unit of storage in the scene library.
type Scene struct {
	Name     string         `json:"name,omitempty" bson:"name,omitempty" toml:"name"`
	Viewport geo.Viewport   `json:"viewport" bson:"viewport" toml:"viewport"`
	Elements []ElementSpec  `json:"elements" bson:"elements" toml:"elements"`
}

// ElementSpec describes one element in a scene file. Position is the
// element's center; the bounding box is derived from size and scale.
type ElementSpec struct {
	ID       string  `json:"id" bson:"id" toml:"id"`
	X        float64 `json:"x" bson:"x" toml:"x"`
	Y        float64 `json:"y" bson:"y" toml:"y"`
	Width    float64 `json:"width" bson:"width" toml:"width"`
	Height   float64 `json:"height" bson:"height" toml:"height"`
	Scale    float64 `json:"scale,omitempty" bson:"scale,omitempty" toml:"scale"`
	Rotation float64 `json:"rotation,omitempty" bson:"rotation,omitempty" toml:"rotation"`
	Hidden   bool    `json:"hidden,omitempty" bson:"hidden,omitempty" toml:"hidden"`
	Alpha    float64 `json:"alpha,omitempty" bson:"alpha,omitempty" toml:"alpha"`
}

// Validate checks the scene for structural problems: an undrawable
// viewport, duplicate or invalid element ids, negative extents.
func (s *Scene) Validate() error {
	if !s.Viewport.Valid() {
		return errors.New(errors.ErrCodeInvalidViewport,
			"viewport %gx%g is not drawable", s.Viewport.Width, s.Viewport.Height)
	}

	seen := make(map[string]bool, len(s.Elements))
	for i, el := range s.Elements {
		if err := errors.ValidateElementID(el.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "element %d", i)
		}
		if seen[el.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate element id %q", el.ID)
		}
		seen[el.ID] = true
		if el.Width < 0 || el.Height < 0 {
			return errors.New(errors.ErrCodeInvalidScene,
				"element %q has negative extent %gx%g", el.ID, el.Width, el.Height)
		}
	}
	return nil
}

// Registry builds a live registry from the scene after validation.
// Unset scale defaults to 1, unset alpha to fully opaque.
func (s *Scene) Registry() (*Registry, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for _, spec := range s.Elements {
		scale := spec.Scale
		if scale == 0 {
			scale = 1
		}
		alpha := spec.Alpha
		if alpha == 0 {
			alpha = 1
		}

		pos := geo.Point{X: spec.X, Y: spec.Y}
		el := &Element{
			ID:             spec.ID,
			Position:       pos,
			GlobalPosition: pos,
			Bounds:         geo.RectAround(pos, spec.Width*scale, spec.Height*scale),
			ScaleX:         scale,
			ScaleY:         scale,
			Rotation:       spec.Rotation,
			Visible:        !spec.Hidden,
			Alpha:          alpha,
		}
		if err := reg.Register(el); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Marshal serializes the scene to pretty-printed JSON bytes.
func (s *Scene) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes JSON bytes into a validated scene.
func Unmarshal(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "unmarshal scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scene file, dispatching on the filename extension:
// .toml files decode as TOML, .json files as JSON.
func Load(path string) (*Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var s Scene
		if _, err := toml.DecodeFile(path, &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parse %s", path)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return &s, nil

	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return Unmarshal(data)

	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported scene format %q (want .toml or .json)", filepath.Ext(path))
	}
}
