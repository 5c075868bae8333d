package scene

import (
	"slices"
	"strings"
	"sync"

	"github.com/edawolf/city-lines-sub002/pkg/analysis"
	"github.com/edawolf/city-lines-sub002/pkg/errors"
	"github.com/edawolf/city-lines-sub002/pkg/geo"
)

// Registry maintains the live set of tracked elements. It is both the
// geometry provider (Snapshot) and the mover capability (Move) the
// layout pipeline is wired against.
//
// Ids are opaque strings and unique at any instant. The internal lock
// protects the element map when a host registers and unregisters from
// multiple goroutines; serializing whole layout passes remains the
// host's responsibility.
type Registry struct {
	mu       sync.RWMutex
	elements map[string]*Element
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{elements: make(map[string]*Element)}
}

// Register adds an element under its id. Registering a duplicate or
// invalid id is an error.
func (r *Registry) Register(el *Element) error {
	if err := errors.ValidateElementID(el.ID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.elements[el.ID]; exists {
		return errors.New(errors.ErrCodeDuplicateElement, "element %q already registered", el.ID)
	}
	r.elements[el.ID] = el
	return nil
}

// Unregister removes the element with the given id and reports
// whether it was present.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.elements[id]; !exists {
		return false
	}
	delete(r.elements, id)
	return true
}

// Len returns the number of registered elements.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.elements)
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.elements))
	for id := range r.elements {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Get returns a copy of the element with the given id.
func (r *Registry) Get(id string) (Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	el, ok := r.elements[id]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// Snapshot returns the read-only geometry of all registered elements
// in sorted-id order, refreshed once at the start of each pass.
func (r *Registry) Snapshot() []analysis.Element {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]analysis.Element, 0, len(r.elements))
	for _, el := range r.elements {
		out = append(out, el.state())
	}
	slices.SortFunc(out, func(a, b analysis.Element) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Export converts the current element set back into a scene document,
// the inverse of [Scene.Registry]. Extents are unscaled so a round
// trip through Registry and Export preserves the original specs.
func (r *Registry) Export(vp geo.Viewport) *Scene {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]ElementSpec, 0, len(r.elements))
	for _, el := range r.elements {
		w, h := el.Bounds.Width, el.Bounds.Height
		if el.ScaleX != 0 {
			w /= el.ScaleX
		}
		if el.ScaleY != 0 {
			h /= el.ScaleY
		}
		spec := ElementSpec{
			ID:       el.ID,
			X:        el.GlobalPosition.X,
			Y:        el.GlobalPosition.Y,
			Width:    w,
			Height:   h,
			Rotation: el.Rotation,
			Hidden:   !el.Visible,
		}
		if el.ScaleX != 1 {
			spec.Scale = el.ScaleX
		}
		if el.Alpha != 1 {
			spec.Alpha = el.Alpha
		}
		specs = append(specs, spec)
	}
	slices.SortFunc(specs, func(a, b ElementSpec) int {
		return strings.Compare(a.ID, b.ID)
	})
	return &Scene{Viewport: vp, Elements: specs}
}

// Move relocates the named element to target. Moves referencing ids
// that are no longer registered fail individually without affecting
// other elements.
func (r *Registry) Move(id string, target geo.Point) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.elements[id]
	if !ok {
		return false, errors.New(errors.ErrCodeUnknownElement, "element %q not registered", id)
	}
	el.moveTo(target)
	return true, nil
}
