// Package server exposes page analysis, price lookup, page proxying and
// price sync over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/fetcher"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/price"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/pricesync"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/render"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/rules"
)

// PageRenderer renders a page in a browser.
type PageRenderer interface {
	Render(ctx context.Context, url string) (*render.Page, error)
}

// PriceFetcher fetches a page and extracts its price.
type PriceFetcher interface {
	FetchPrice(ctx context.Context, url string) (price.Result, error)
}

// PriceSyncer refreshes a product's external prices.
type PriceSyncer interface {
	Sync(ctx context.Context, p pricesync.Product) ([]pricesync.ExternalPrice, error)
}

// Deps are the collaborators behind the endpoints.
type Deps struct {
	Renderer PageRenderer
	Prices   PriceFetcher
	Fetcher  fetcher.Fetcher
	Syncer   PriceSyncer
	Engine   *rules.Engine
}

// Options tunes the HTTP surface.
type Options struct {
	AllowedOrigins []string
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64
	Burst     int
	// FetchOptions are applied to proxied page fetches.
	FetchOptions fetcher.Options
}

// Server routes API requests to the engine components.
type Server struct {
	deps     Deps
	opts     Options
	router   chi.Router
	validate *validator.Validate
}

// New creates a server.
func New(deps Deps, opts Options) *Server {
	if deps.Engine == nil {
		deps.Engine = rules.NewEngine(rules.Config{})
	}
	s := &Server{
		deps:     deps,
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors(s.opts.AllowedOrigins))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(newClientLimiter(s.opts.RateLimit, s.opts.Burst).middleware)
		}
		r.Post("/analyze-page", s.handleAnalyzePage)
		r.Get("/fetch-price", s.handleFetchPrice)
		r.Get("/proxy-page", s.handleProxyPage)
		r.Post("/sync-prices", s.handleSyncPrices)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
