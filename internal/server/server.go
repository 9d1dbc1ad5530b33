// Package server exposes the layout pipeline over HTTP.
//
// Layouts computed through the API are persisted in the configured store
// and can be fetched later as JSON or rendered SVG. The server reuses the
// same pipeline.Runner as the CLI, so caching behaves identically across
// entry points.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/render"
	"github.com/matzehuels/mosaic/pkg/store"
)

// Server wires the pipeline, cache, and layout store behind an HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New builds a server from config, connecting to the configured cache and
// store backends. Backends are verified eagerly so misconfiguration fails
// at startup, not on the first request.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}

	c, err := buildCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	var keyer cache.Keyer
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Namespace)
	}

	st, err := buildStore(ctx, cfg.Store)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	return &Server{
		cfg:    cfg,
		runner: pipeline.NewRunner(c, keyer, logger),
		store:  st,
		logger: logger,
	}, nil
}

// NewWithBackends builds a server around explicit backends. Used by tests.
func NewWithBackends(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

func buildCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "none":
		return cache.NewNullCache(), nil
	case "file":
		return cache.NewFileCache(cfg.Dir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Backend)
}

func buildStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreateLayout)
		r.Get("/", s.handleListLayouts)
		r.Get("/{id}", s.handleGetLayout)
		r.Get("/{id}/svg", s.handleGetLayoutSVG)
		r.Delete("/{id}", s.handleDeleteLayout)
	})
	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Close releases the cache and store connections.
func (s *Server) Close(ctx context.Context) error {
	err := s.runner.Close()
	if s.store != nil {
		if serr := s.store.Close(ctx); err == nil {
			err = serr
		}
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// layoutRequest is the POST /api/layouts body.
type layoutRequest struct {
	Dataset json.RawMessage `json:"dataset"`
	VizType string          `json:"viz_type,omitempty"`
	Width   int             `json:"width,omitempty"`
	Height  int             `json:"height,omitempty"`
	Inset   int             `json:"inset,omitempty"`
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Dataset) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "dataset is required"))
		return
	}

	d, err := dataset.ParseJSON(req.Dataset)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{
		Dataset: d,
		VizType: req.VizType,
		Width:   req.Width,
		Height:  req.Height,
		Inset:   req.Inset,
		Logger:  s.logger,
	}
	if _, err := s.runner.Load(r.Context(), opts); err != nil {
		s.writeError(w, err)
		return
	}
	layout, err := s.runner.ComputeLayout(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	stored, err := s.store.Put(r.Context(), layout)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = n
	}

	all, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": all})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	stored, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleGetLayoutSVG(w http.ResponseWriter, r *http.Request) {
	stored, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	svg, err := s.renderStoredSVG(r, stored.Layout)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) renderStoredSVG(r *http.Request, l mosaic.Layout) ([]byte, error) {
	if l.IsNodelink() {
		return render.RenderDOT(r.Context(), l.DOT)
	}

	q := r.URL.Query()
	var opts []render.SVGOption
	if boolParam(q.Get("labels"), true) {
		opts = append(opts, render.WithLabels())
	}
	if boolParam(q.Get("values"), false) {
		opts = append(opts, render.WithValues())
	}
	return render.RenderSVG(l, opts...), nil
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func boolParam(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope shared by all endpoints.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeLayoutNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidVizType,
		errors.ErrCodeInvalidConfig, errors.ErrCodeDegenerateRect:
		return http.StatusBadRequest
	case errors.ErrCodeStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// logRequests logs one line per request with method, path, status, and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
