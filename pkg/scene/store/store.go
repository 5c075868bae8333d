// Package store provides persistent storage for the scene library.
//
// Two backends implement the [Store] interface:
//   - file: JSON documents in a directory, for CLI and single-instance use
//   - mongo: a MongoDB collection, for multi-instance server deployments
//
// Both backends key scenes by name. Names are validated before any
// backend sees them, so a store never has to defend against path
// traversal or control characters itself.
package store

import (
	"context"

	"github.com/edawolf/city-lines-sub002/pkg/scene"
)

// Store is the interface for scene storage backends.
type Store interface {
	// Get retrieves a scene by name. Returns an error with code
	// SCENE_NOT_FOUND when no scene has that name.
	Get(ctx context.Context, name string) (*scene.Scene, error)

	// Put stores a scene under the given name, replacing any existing
	// scene with that name. The scene is validated first.
	Put(ctx context.Context, name string, s *scene.Scene) error

	// Delete removes a scene. Deleting a missing scene is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all stored scene names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
