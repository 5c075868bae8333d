// Package scene hosts the tracked elements the layout pipeline
// observes and corrects.
//
// The scene graph side of the system is deliberately thin: a
// [Registry] maps opaque element ids to live [Element] values, serves
// sorted read-only geometry snapshots to the analysis engine, and
// implements the mover capability that writes corrected positions
// back. The pipeline itself never owns display objects.
//
// [Scene] is the serialization format for demo scenes. Scene files
// load from TOML or JSON, dispatched by extension:
//
//	scene, err := scene.Load("fireworks.toml")
//	reg, err := scene.Registry()
//
// Scene documents carry json and bson tags so the same type serves
// files, the HTTP API, and the MongoDB-backed scene library.
package scene
