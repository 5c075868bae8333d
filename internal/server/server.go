// Package server exposes the layout pipeline and the scene library
// over HTTP.
//
// The API is a small JSON surface plus two rendered diagnostic
// formats:
//
//	GET    /healthz                          liveness probe
//	GET    /api/scenes                       list stored scene names
//	GET    /api/scenes/{name}                fetch one scene
//	PUT    /api/scenes/{name}                create or replace a scene
//	DELETE /api/scenes/{name}                delete a scene
//	POST   /api/scenes/{name}/layout         run one layout pass, persist the result
//	GET    /api/scenes/{name}/pressure.dot   pressure graph, DOT source
//	GET    /api/scenes/{name}/pressure.svg   pressure graph, rendered SVG
//
// Layout passes mutate the stored scene, so the server serializes them
// behind one mutex. Rendered artifacts are cached keyed by the scene
// content hash; editing a scene naturally invalidates its artifacts.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edawolf/city-lines-sub002/pkg/cache"
	"github.com/edawolf/city-lines-sub002/pkg/scene/store"
)

// Server is the HTTP front end over a scene store and an artifact cache.
type Server struct {
	cfg    Config
	store  store.Store
	cache  cache.Cache
	logger *log.Logger
	router chi.Router

	// layoutMu serializes layout passes. A pass reads the stored
	// scene, mutates it and writes it back; concurrent passes over
	// the same scene would race on that read-modify-write.
	layoutMu sync.Mutex
}

// New creates a server over the given store and cache.
// If c is nil, caching is disabled. If logger is nil, the default
// logger is used.
func New(cfg Config, st store.Store, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		cache:  c,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Build constructs a server with store and cache backends selected by
// the config. The returned cleanup function releases both backends.
func Build(ctx context.Context, cfg Config, logger *log.Logger) (*Server, func(), error) {
	var st store.Store
	var err error
	if cfg.MongoURI != "" {
		st, err = store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.MongoURI})
	} else {
		st, err = store.NewFileStore(cfg.SceneDir)
	}
	if err != nil {
		return nil, nil, err
	}

	var c cache.Cache
	switch cfg.CacheBackend {
	case "redis":
		c, err = cache.NewRedisCache(ctx, cfg.RedisURL)
	case "none":
		c = cache.NewNullCache()
	default:
		c, err = cache.NewFileCache(cfg.CacheDir)
	}
	if err != nil {
		_ = st.Close(ctx)
		return nil, nil, err
	}

	srv := New(cfg, st, c, logger)
	cleanup := func() {
		_ = c.Close()
		_ = st.Close(context.Background())
	}
	return srv, cleanup, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/scenes", func(r chi.Router) {
		r.Get("/", s.handleListScenes)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGetScene)
			r.Put("/", s.handlePutScene)
			r.Delete("/", s.handleDeleteScene)
			r.Post("/layout", s.handleLayout)
			r.Get("/pressure.dot", s.handlePressureDOT)
			r.Get("/pressure.svg", s.handlePressureSVG)
		})
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// ListenAndServe runs the server until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
