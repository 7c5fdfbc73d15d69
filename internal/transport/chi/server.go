// Package chi exposes the search API over HTTP using the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gasit-app/gasit/internal/domain"
	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/internal/domain/search/query"
	healthuc "github.com/gasit-app/gasit/internal/usecase/health"
	listinguc "github.com/gasit-app/gasit/internal/usecase/listing"
	searchuc "github.com/gasit-app/gasit/internal/usecase/search"
)

// queryKeys are the search parameters forwarded to the validator. Anything
// else on the query string is ignored.
var queryKeys = []string{
	"query", "category", "status", "lat", "lon", "radius", "period", "skip", "limit",
}

// Server holds the HTTP handlers for the search API.
type Server struct {
	search   *searchuc.Service
	listings *listinguc.Service
	health   *healthuc.Service
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	listings *listinguc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:   search,
		listings: listings,
		health:   health,
		logger:   logger,
	}
}

// Register mounts all routes on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Route("/api/v1", func(r chirouter.Router) {
		r.Get("/search", s.SearchListings)
		r.Get("/categories", s.ListCategories)
		r.Get("/listings/latest", s.LatestListings)
		r.Get("/listings/{id}", s.GetListing)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// searchResponse is one page of search results.
type searchResponse struct {
	Posts         []listingResponse `json:"posts"`
	Count         int               `json:"count"`
	TotalCount    int               `json:"totalCount"`
	PromotedCount int               `json:"promotedCount"`
	HasMore       bool              `json:"hasMore"`
}

type listingResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content,omitempty"`
	Category     string        `json:"category,omitempty"`
	Status       string        `json:"status"`
	Location     *locationJSON `json:"location,omitempty"`
	CircleRadius float64       `json:"circleRadius,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	LastSeenAt   *time.Time    `json:"lastSeenAt,omitempty"`
	Promoted     bool          `json:"promoted"`
	Views        int64         `json:"views"`
	Images       []string      `json:"images,omitempty"`
}

type locationJSON struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// SearchListings handles GET /api/v1/search.
func (s *Server) SearchListings(w http.ResponseWriter, r *http.Request) {
	q, err := query.Parse(paramsFromURL(r.URL.Query()))
	if err != nil {
		s.handleError(w, err)
		return
	}

	page, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(page.Listings, page.Count(),
		page.TotalCount, page.PromotedCount, page.HasMore, time.Now()))
}

// LatestListings handles GET /api/v1/listings/latest: the newest discoverable
// listings, same pipeline as a search without a text query.
func (s *Server) LatestListings(w http.ResponseWriter, r *http.Request) {
	params := paramsFromURL(r.URL.Query())
	delete(params, "query")

	q, err := query.Parse(params)
	if err != nil {
		s.handleError(w, err)
		return
	}

	page, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(page.Listings, page.Count(),
		page.TotalCount, page.PromotedCount, page.HasMore, time.Now()))
}

// GetListing handles GET /api/v1/listings/{id}.
func (s *Server) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "listing id is required")
		return
	}

	l, err := s.listings.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listingToResponse(&l, time.Now()))
}

// ListCategories handles GET /api/v1/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.search.Categories(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	if cats == nil {
		cats = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": cats,
		"count":      len(cats),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// paramsFromURL keeps only known keys, preserving the distinction between an
// absent parameter and an empty one.
func paramsFromURL(values url.Values) map[string]string {
	params := make(map[string]string, len(queryKeys))
	for _, k := range queryKeys {
		if values.Has(k) {
			params[k] = values.Get(k)
		}
	}
	return params
}

func pageToResponse(
	listings []domlisting.Listing, count, total, promoted int, hasMore bool, now time.Time,
) searchResponse {
	posts := make([]listingResponse, len(listings))
	for i := range listings {
		posts[i] = listingToResponse(&listings[i], now)
	}
	return searchResponse{
		Posts:         posts,
		Count:         count,
		TotalCount:    total,
		PromotedCount: promoted,
		HasMore:       hasMore,
	}
}

func listingToResponse(l *domlisting.Listing, now time.Time) listingResponse {
	resp := listingResponse{
		ID:           l.ID(),
		Title:        l.Title(),
		Content:      l.Content(),
		Category:     l.Category(),
		Status:       string(l.Status()),
		CircleRadius: l.CircleRadius(),
		CreatedAt:    l.CreatedAt().UTC(),
		Promoted:     l.Promotion().ActiveAt(now),
		Views:        l.Views(),
		Images:       l.Images(),
	}

	if p := l.Location(); p.Latitude != 0 || p.Longitude != 0 {
		resp.Location = &locationJSON{Latitude: p.Latitude, Longitude: p.Longitude}
	}
	if !l.LastSeenAt().IsZero() {
		t := l.LastSeenAt().UTC()
		resp.LastSeenAt = &t
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}

// writeValidationError renders every collected field error at once, so the
// client can show all inline messages in a single round trip.
func writeValidationError(w http.ResponseWriter, ve *query.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"code":   "validation_failed",
		"errors": ve.Fields,
	})
}

// handleError maps domain errors to HTTP responses. Anything unrecognized is
// an opaque 500; internals never leak to the client.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	var ve *query.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidationError(w, ve)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", domain.ErrNotFound.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
