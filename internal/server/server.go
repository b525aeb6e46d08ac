// Package server exposes the designer workspace over HTTP: state, palette and
// the rendered dialog documents.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-aemdialog/pkg/blocks"
	"github.com/goliatone/go-aemdialog/pkg/designer"
	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/orchestrator"
	"github.com/goliatone/go-aemdialog/pkg/render"
)

const (
	xmlRenderer       = "aem-xml"
	referenceRenderer = "markdown"

	maxBodyBytes = 1 << 20
)

// StateSource supplies the current designer state. *workspace.Store
// satisfies it.
type StateSource interface {
	Load(ctx context.Context) (designer.State, error)
}

// StateSourceFunc adapts a function to StateSource.
type StateSourceFunc func(ctx context.Context) (designer.State, error)

func (fn StateSourceFunc) Load(ctx context.Context) (designer.State, error) { return fn(ctx) }

// Option customises the server.
type Option func(*Server)

// WithOrchestrator injects the orchestrator used for every render.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if o != nil {
			s.orchestrator = o
		}
	}
}

// WithRegistry sets the block registry the palette endpoint lists.
func WithRegistry(registry *blocks.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithLogger sets the logger for request and block failure records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server serves the designer API.
type Server struct {
	states       StateSource
	orchestrator *orchestrator.Orchestrator
	registry     *blocks.Registry
	logger       *slog.Logger
}

// New builds a server reading state from states.
func New(states StateSource, options ...Option) *Server {
	s := &Server{states: states}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.orchestrator == nil {
		s.orchestrator = orchestrator.New()
	}
	if s.registry == nil {
		s.registry = blocks.NewDefaultRegistry()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Handler returns the routed handler with the standard middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the API routes on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handle(s.getState))
		r.Get("/blocks", s.handle(s.getPalette))
		r.Post("/render", s.handle(s.postRender))
		r.Route("/dialogs/{dialogID}", func(r chi.Router) {
			r.Get("/xml", s.handle(s.dialogDocument(xmlRenderer, false)))
			r.Get("/export", s.handle(s.dialogDocument(xmlRenderer, true)))
			r.Get("/reference", s.handle(s.dialogDocument(referenceRenderer, false)))
		})
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) error {
	state, err := s.states.Load(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, state)
	return nil
}

func (s *Server) getPalette(w http.ResponseWriter, r *http.Request) error {
	state, err := s.states.Load(r.Context())
	if err != nil {
		return err
	}
	var custom []model.CustomBlock
	if state.Project != nil {
		custom = state.Project.CustomBlocks
	}
	writeJSON(w, http.StatusOK, s.registry.Palette(custom))
	return nil
}

func (s *Server) dialogDocument(renderer string, attachment bool) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		state, err := s.states.Load(r.Context())
		if err != nil {
			return err
		}
		if state.Project == nil {
			return statusError(http.StatusNotFound, "NO_PROJECT", errors.New("no project is open"))
		}

		dialogID := chi.URLParam(r, "dialogID")
		result, err := s.orchestrator.Export(r.Context(), orchestrator.Request{
			Project:       state.Project,
			DialogID:      dialogID,
			Renderer:      renderer,
			RenderOptions: s.renderOptions(r),
		})
		if err != nil {
			return classifyRenderError(err)
		}
		s.writeDocument(w, result, attachment)
		return nil
	}
}

func (s *Server) postRender(w http.ResponseWriter, r *http.Request) error {
	var dialog model.Dialog
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()
	dec := json.NewDecoder(body)
	if err := dec.Decode(&dialog); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		return statusError(http.StatusBadRequest, "INVALID_BODY", fmt.Errorf("decode dialog: %w", err))
	}
	if err := dialog.Validate(); err != nil {
		return statusError(http.StatusBadRequest, "INVALID_DIALOG", err)
	}

	result, err := s.orchestrator.Export(r.Context(), orchestrator.Request{
		Dialog:        &dialog,
		Renderer:      r.URL.Query().Get("renderer"),
		RenderOptions: s.renderOptions(r),
	})
	if err != nil {
		return classifyRenderError(err)
	}
	s.writeDocument(w, result, false)
	return nil
}

func (s *Server) renderOptions(r *http.Request) render.RenderOptions {
	return render.RenderOptions{
		OnBlockError: func(block model.Block, err error) {
			s.logger.Warn("block render failed",
				slog.String("path", r.URL.Path),
				slog.String("block", block.Name),
				slog.String("type", string(block.Type)),
				slog.Any("err", err),
			)
		},
	}
}

func (s *Server) writeDocument(w http.ResponseWriter, result orchestrator.Result, attachment bool) {
	w.Header().Set("Content-Type", result.ContentType+"; charset=utf-8")
	if attachment {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Output)
}

func classifyRenderError(err error) error {
	switch {
	case errors.Is(err, orchestrator.ErrDialogNotFound):
		return statusError(http.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, render.ErrRendererNotFound):
		return statusError(http.StatusBadRequest, "UNKNOWN_RENDERER", err)
	case errors.Is(err, context.Canceled):
		return statusError(http.StatusServiceUnavailable, "CANCELLED", err)
	default:
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
