package cache

// ArtifactKeyOpts captures everything that affects a rendered
// pressure-graph artifact beyond the scene content itself.
type ArtifactKeyOpts struct {
	Format string `json:"format"` // "dot" or "svg"
}

// ArtifactKey builds the cache key for a rendered artifact.
// sceneHash must already incorporate the scene content (see [Hash]),
// so two identical scenes share one artifact entry.
func ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// SceneKey builds the cache key for a scene document fetched from the
// store, keyed by scene name.
func SceneKey(name string) string {
	return "scene:" + name
}
