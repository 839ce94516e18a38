package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shelbytessier/nativepath-promotions-sub001/internal/logger"
	"github.com/shelbytessier/nativepath-promotions-sub001/internal/version"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/fetcher"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/pricesync"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/proxy"
	"github.com/shelbytessier/nativepath-promotions-sub001/pkg/rules"
)

// ErrURLRequired is the message for a missing url parameter.
const ErrURLRequired = "URL is required"

const maxRequestBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type analyzeRequest struct {
	URL         string      `json:"url" validate:"required"`
	ChecksToRun rules.Checks `json:"checksToRun,omitempty"`
}

type analyzeResponse struct {
	Success  bool          `json:"success"`
	BodyText string        `json:"bodyText"`
	Issues   []rules.Issue `json:"issues"`
}

type priceResponse struct {
	Price float64 `json:"price"`
	Error string  `json:"error,omitempty"`
}

type syncResponse struct {
	ProductID      string                    `json:"productId"`
	ExternalPrices []pricesync.ExternalPrice `json:"externalPrices"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: version.String()})
}

func (s *Server) handleAnalyzePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrURLRequired})
		return
	}

	page, err := s.deps.Renderer.Render(ctx, req.URL)
	if err != nil {
		log.Error("page analysis failed", "url", req.URL, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Analysis failed: " + err.Error()})
		return
	}

	issues := s.deps.Engine.Evaluate(page.Document, req.ChecksToRun)
	logger.InfoContext(ctx, "page analyzed", "url", req.URL, "issues", len(issues))

	writeJSON(w, http.StatusOK, analyzeResponse{
		Success:  true,
		BodyText: page.BodyText,
		Issues:   issues,
	})
}

func (s *Server) handleFetchPrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrURLRequired})
		return
	}

	res, err := s.deps.Prices.FetchPrice(ctx, url)
	if err != nil {
		logger.ErrorContext(ctx, "price fetch failed", "url", url, "error", err)
		writeJSON(w, http.StatusInternalServerError, priceResponse{
			Price: 0,
			Error: "Failed to fetch price: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, priceResponse{Price: res.Price, Error: res.Error})
}

func (s *Server) handleProxyPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "URL parameter is required", http.StatusBadRequest)
		return
	}

	content, err := s.deps.Fetcher.Fetch(ctx, url, s.opts.FetchOptions)
	if err != nil {
		if code, ok := fetcher.StatusCode(err); ok {
			log.Warn("proxied page returned error status", "url", url, "status", code)
			http.Error(w, fmt.Sprintf("Failed to fetch page: %d %s", code, http.StatusText(code)), code)
			return
		}
		log.Error("proxy fetch failed", "url", url, "error", err)
		http.Error(w, "Failed to proxy page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	body, err := proxy.Prepare(content.HTML, url)
	if err != nil {
		http.Error(w, "Failed to proxy page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("X-Frame-Options", "ALLOWALL")
	h.Set("Content-Security-Policy", "frame-ancestors *")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleSyncPrices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var product pricesync.Product
	if err := decodeJSON(w, r, &product); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	prices, err := s.deps.Syncer.Sync(ctx, product)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pricesync.ErrInvalidProduct) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{ProductID: product.ID, ExternalPrices: prices})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}
