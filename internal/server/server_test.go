package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/edawolf/city-lines-sub002/pkg/cache"
	"github.com/edawolf/city-lines-sub002/pkg/geo"
	"github.com/edawolf/city-lines-sub002/pkg/scene"
	"github.com/edawolf/city-lines-sub002/pkg/scene/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(DefaultConfig(), st, cache.NewNullCache(), logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func putScene(t *testing.T, ts *httptest.Server, name string, sc *scene.Scene) {
	t.Helper()
	body, err := sc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/scenes/"+name, bytes.NewReader(body))
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("PUT scene: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		t.Fatalf("PUT scene status = %d: %s", resp.StatusCode, payload)
	}
}

func testScene() *scene.Scene {
	return &scene.Scene{
		Viewport: geo.Viewport{Width: 1000, Height: 800},
		Elements: []scene.ElementSpec{
			{ID: "lost", X: 1500, Y: 900, Width: 40, Height: 40},
		},
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestSceneCRUD(t *testing.T) {
	ts := newTestServer(t)
	putScene(t, ts, "demo", testScene())

	// Get
	resp, err := ts.Client().Get(ts.URL + "/api/scenes/demo")
	if err != nil {
		t.Fatalf("GET scene: %v", err)
	}
	var got scene.Scene
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode scene: %v", err)
	}
	resp.Body.Close()
	if got.Name != "demo" || len(got.Elements) != 1 {
		t.Errorf("scene = %+v", got)
	}

	// List
	resp, err = ts.Client().Get(ts.URL + "/api/scenes")
	if err != nil {
		t.Fatalf("GET scenes: %v", err)
	}
	var listing struct {
		Scenes []string `json:"scenes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	resp.Body.Close()
	if len(listing.Scenes) != 1 || listing.Scenes[0] != "demo" {
		t.Errorf("scenes = %v", listing.Scenes)
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/scenes/demo", nil)
	resp, err = ts.Client().Do(req)
	if err != nil {
		t.Fatalf("DELETE scene: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	// Gone
	resp, _ = ts.Client().Get(ts.URL + "/api/scenes/demo")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", resp.StatusCode)
	}
}

func TestPutSceneInvalid(t *testing.T) {
	ts := newTestServer(t)

	bad := `{"viewport":{"width":0,"height":800},"elements":[]}`
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/scenes/bad", strings.NewReader(bad))
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("PUT scene: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Code != "INVALID_VIEWPORT" {
		t.Errorf("code = %q", payload.Code)
	}
}

func TestGetSceneMissing(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/scenes/ghost")
	if err != nil {
		t.Fatalf("GET scene: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestLayoutPassPersistsCorrections(t *testing.T) {
	ts := newTestServer(t)
	putScene(t, ts, "demo", testScene())

	resp, err := ts.Client().Post(ts.URL+"/api/scenes/demo/layout", "application/json", nil)
	if err != nil {
		t.Fatalf("POST layout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		t.Fatalf("layout status = %d: %s", resp.StatusCode, payload)
	}

	var result layoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode layout response: %v", err)
	}
	if result.Execution.TotalMoves != 1 || result.Execution.SuccessfulMoves != 1 {
		t.Errorf("execution = %+v", result.Execution)
	}

	// The off-screen element was pulled to the safe-area center and
	// the corrected position was written back to the store.
	resp, err = ts.Client().Get(ts.URL + "/api/scenes/demo")
	if err != nil {
		t.Fatalf("GET scene: %v", err)
	}
	defer resp.Body.Close()
	var got scene.Scene
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode scene: %v", err)
	}
	if got.Elements[0].X != 500 || got.Elements[0].Y != 400 {
		t.Errorf("persisted position = (%g, %g), want (500, 400)",
			got.Elements[0].X, got.Elements[0].Y)
	}
}

func TestPressureDOT(t *testing.T) {
	ts := newTestServer(t)
	putScene(t, ts, "demo", testScene())

	resp, err := ts.Client().Get(ts.URL + "/api/scenes/demo/pressure.dot")
	if err != nil {
		t.Fatalf("GET pressure.dot: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	dot := string(body)
	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("unexpected DOT output:\n%s", dot)
	}
	if !strings.Contains(dot, `"lost"`) {
		t.Errorf("DOT missing element node:\n%s", dot)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Addr != ":8080" || cfg.CacheBackend != "file" {
		t.Errorf("defaults = %+v", cfg)
	}
}
