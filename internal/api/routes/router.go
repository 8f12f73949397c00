package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/api/handlers"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/api/middleware"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	interactionHandler *handlers.InteractionHandler
	sseHandler         *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics

	webDir string
	ready  func(context.Context) error
}

// NewRouter creates a new router. The ready func is probed by GET /ready and
// may be nil when the server has no external dependencies to wait for.
func NewRouter(
	interactionHandler *handlers.InteractionHandler,
	sseHandler *handlers.SSEHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	webDir string,
	ready func(context.Context) error,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		interactionHandler: interactionHandler,
		sseHandler:         sseHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
		webDir:             webDir,
		ready:              ready,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoints
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("GET /ready", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.ready != nil {
			if err := r.ready(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	})

	// Interaction endpoints
	r.mux.HandleFunc("GET /api/interactions", r.interactionHandler.CheckInteraction)
	r.mux.HandleFunc("GET /api/interactions/examples", r.interactionHandler.GetExamples)

	// Drug endpoints
	r.mux.HandleFunc("GET /api/drugs/standardize", r.interactionHandler.StandardizeDrug)

	// Live lookup stream
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/lookups", r.sseHandler.StreamLookups)
		r.mux.HandleFunc("GET /api/stream/stats", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `{"connected_clients": %d}`, r.sseHandler.GetClientCount())
		})
	}

	// Static UI
	if r.webDir != "" {
		r.mux.Handle("/", http.FileServer(http.Dir(r.webDir)))
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
