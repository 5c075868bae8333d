package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edawolf/city-lines-sub002/pkg/analysis"
	"github.com/edawolf/city-lines-sub002/pkg/cache"
	"github.com/edawolf/city-lines-sub002/pkg/errors"
	"github.com/edawolf/city-lines-sub002/pkg/exec"
	"github.com/edawolf/city-lines-sub002/pkg/observability"
	"github.com/edawolf/city-lines-sub002/pkg/pipeline"
	"github.com/edawolf/city-lines-sub002/pkg/render/pressure"
	"github.com/edawolf/city-lines-sub002/pkg/scene"
)

// maxSceneBytes bounds PUT bodies; scenes are small documents.
const maxSceneBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenes": names})
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	sc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handlePutScene(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSceneBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	sc, err := scene.Unmarshal(body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), name, sc); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// layoutResponse is the JSON payload of one layout pass.
type layoutResponse struct {
	Scene     *scene.Scene `json:"scene"`
	Execution exec.Result  `json:"execution"`
	Summary   string       `json:"summary"`
	Stats     layoutStats  `json:"stats"`
}

type layoutStats struct {
	Elements int `json:"elements"`
	Clusters int `json:"clusters"`
	Overlaps int `json:"overlaps"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ctx := r.Context()

	s.layoutMu.Lock()
	defer s.layoutMu.Unlock()

	sc, err := s.store.Get(ctx, name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	reg, err := sc.Registry()
	if err != nil {
		s.writeError(w, err)
		return
	}

	runner := pipeline.NewRunner(reg, nil, s.logger)
	runner.SetViewport(sc.Viewport.Width, sc.Viewport.Height)

	result, err := runner.Execute(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	corrected := reg.Export(sc.Viewport)
	if err := s.store.Put(ctx, name, corrected); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Scene:     corrected,
		Execution: result.Execution,
		Summary:   runner.Summary(),
		Stats: layoutStats{
			Elements: result.Stats.ElementCount,
			Clusters: result.Stats.ClusterCount,
			Overlaps: result.Stats.OverlapCount,
		},
	})
}

func (s *Server) handlePressureDOT(w http.ResponseWriter, r *http.Request) {
	blob, err := s.pressureArtifact(r, "dot")
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Write(blob)
}

func (s *Server) handlePressureSVG(w http.ResponseWriter, r *http.Request) {
	blob, err := s.pressureArtifact(r, "svg")
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(blob)
}

// pressureArtifact returns the rendered pressure graph for a scene,
// serving from the artifact cache when the scene content is unchanged.
func (s *Server) pressureArtifact(r *http.Request, format string) ([]byte, error) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	sc, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	doc, err := sc.Marshal()
	if err != nil {
		return nil, err
	}
	key := cache.ArtifactKey(cache.Hash(doc), cache.ArtifactKeyOpts{Format: format})

	if blob, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return blob, nil
	} else if err != nil {
		s.logger.Warn("artifact cache read failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	reg, err := sc.Registry()
	if err != nil {
		return nil, err
	}
	snapshot, err := analysis.NewEngine().Analyze(reg.Snapshot(), sc.Viewport)
	if err != nil {
		return nil, err
	}

	dot := pressure.ToDOT(snapshot, pressure.Options{
		Detailed: r.URL.Query().Get("detailed") == "true",
	})

	var blob []byte
	if format == "svg" {
		blob, err = pressure.RenderSVG(dot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pressure graph")
		}
	} else {
		blob = []byte(dot)
	}

	if err := s.cache.Set(ctx, key, blob, cache.TTLArtifact); err != nil {
		s.logger.Warn("artifact cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(blob))
	}
	return blob, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeSceneNotFound, errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound, errors.ErrCodeUnknownElement:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScene,
		errors.ErrCodeInvalidViewport, errors.ErrCodeInvalidPlan,
		errors.ErrCodeDuplicateElement, errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
