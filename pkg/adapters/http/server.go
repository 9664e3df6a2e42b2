// Package http exposes the catalog and the pathway explorer over a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	explorer "github.com/goganux/texas-career-path-explorer"
	"github.com/goganux/texas-career-path-explorer/internal/logging"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
	"github.com/goganux/texas-career-path-explorer/pkg/session"
	"github.com/oapi-codegen/runtime"
)

// Dependencies are the ports the handlers read from.
type Dependencies struct {
	Catalog  ports.CatalogRepository
	Pathways ports.PathwayRepository
	Market   ports.MarketSource
	Sessions *session.Manager
}

// Server holds the handler state.
type Server struct {
	deps       Dependencies
	metrics    *Metrics
	logger     *slog.Logger
	corsOrigin string
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics shares a metrics registry, typically one whose Hooks were given to the session manager.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithCORSOrigin sets Access-Control-Allow-Origin. Empty disables CORS headers.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// NewHandler builds the router.
func NewHandler(deps Dependencies, opts ...Option) http.Handler {
	s := &Server{
		deps:       deps,
		logger:     logging.NewNop(),
		corsOrigin: "*",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)
	r.Use(s.cors)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(RawSpec())
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/interests", s.ListInterests)
		r.Get("/student/{id}", s.GetStudent)
		r.Get("/pathways/{interestId}", s.ListPathways)
		r.Get("/pathway/{id}", s.GetPathway)
		r.Get("/progress/{studentId}/{interestId}", s.GetProgress)
		r.Get("/job-market-trends/{interestId}", s.GetJobMarketTrends)
		r.Get("/similar-pathways/{interestId}", s.ListSimilarPathways)

		r.Route("/explorer", func(r chi.Router) {
			r.Get("/", s.ListExplorers)
			r.Post("/", s.OpenExplorer)
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", s.GetExplorer)
				r.Delete("/", s.DeleteExplorer)
				r.Put("/interest", s.ChangeInterest)
				r.Post("/select", s.SelectNode)
				r.Post("/reset", s.ResetHighlights)
				r.Delete("/filters", s.ClearFilters)
				r.Post("/filters/{status}", s.ToggleFilter)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	} else if err != nil {
		s.logger.Error("OpenAPI document unavailable", "err", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "pathways-http",
		"version":     explorer.Version,
		"api_version": apiVersion,
	})
}

// -- Catalog --

// ListInterests handles GET /api/interests.
func (s *Server) ListInterests(w http.ResponseWriter, r *http.Request) {
	interests, err := s.deps.Catalog.ListInterests(r.Context())
	if err != nil {
		s.fail(w, r, err, "Error fetching career interests")
		return
	}
	writeJSON(w, http.StatusOK, interests)
}

// GetStudent handles GET /api/student/{id}.
func (s *Server) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.intParam(w, r, "id")
	if !ok {
		return
	}
	student, err := s.deps.Catalog.GetStudent(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "Error fetching student profile")
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// ListPathways handles GET /api/pathways/{interestId}.
// An interest without pathways yields an empty array.
func (s *Server) ListPathways(w http.ResponseWriter, r *http.Request) {
	interestID, ok := s.intParam(w, r, "interestId")
	if !ok {
		return
	}
	set, err := s.deps.Pathways.List(r.Context(), interestID)
	if err != nil {
		s.fail(w, r, err, "Error fetching pathways")
		return
	}
	writeJSON(w, http.StatusOK, set.All())
}

// GetPathway handles GET /api/pathway/{id}.
func (s *Server) GetPathway(w http.ResponseWriter, r *http.Request) {
	id, ok := s.intParam(w, r, "id")
	if !ok {
		return
	}
	node, err := s.deps.Pathways.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "Error fetching pathway details")
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// GetProgress handles GET /api/progress/{studentId}/{interestId}.
func (s *Server) GetProgress(w http.ResponseWriter, r *http.Request) {
	studentID, ok := s.intParam(w, r, "studentId")
	if !ok {
		return
	}
	interestID, ok := s.intParam(w, r, "interestId")
	if !ok {
		return
	}
	progress, err := s.deps.Catalog.GetProgress(r.Context(), studentID, interestID)
	if err != nil {
		s.fail(w, r, err, "Error fetching student progress")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// GetJobMarketTrends handles GET /api/job-market-trends/{interestId}.
func (s *Server) GetJobMarketTrends(w http.ResponseWriter, r *http.Request) {
	interestID, ok := s.intParam(w, r, "interestId")
	if !ok {
		return
	}
	trends, err := s.deps.Market.Trends(r.Context(), interestID)
	if err != nil {
		s.fail(w, r, err, "Error fetching job market trends")
		return
	}
	writeJSON(w, http.StatusOK, trends)
}

// ListSimilarPathways handles GET /api/similar-pathways/{interestId}.
func (s *Server) ListSimilarPathways(w http.ResponseWriter, r *http.Request) {
	interestID, ok := s.intParam(w, r, "interestId")
	if !ok {
		return
	}
	similar, err := s.deps.Catalog.ListSimilarPathways(r.Context(), interestID)
	if err != nil {
		s.fail(w, r, err, "Error fetching similar pathways")
		return
	}
	writeJSON(w, http.StatusOK, similar)
}

// -- Explorer --

type interestRequest struct {
	InterestID int `json:"interestId"`
}

type selectRequest struct {
	NodeID int `json:"nodeId"`
}

type toggleResponse struct {
	session.Result
	Active bool `json:"active"`
}

// ListExplorers handles GET /api/explorer.
func (s *Server) ListExplorers(w http.ResponseWriter, r *http.Request) {
	ids, err := s.deps.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "Error listing explorer sessions")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// OpenExplorer handles POST /api/explorer.
func (s *Server) OpenExplorer(w http.ResponseWriter, r *http.Request) {
	var body interestRequest
	if !s.decode(w, r, &body) {
		return
	}
	if !s.interestExists(w, r, body.InterestID) {
		return
	}
	res, err := s.deps.Sessions.Open(r.Context(), body.InterestID)
	if err != nil {
		s.fail(w, r, err, "Error opening explorer")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// GetExplorer handles GET /api/explorer/{sessionId}.
func (s *Server) GetExplorer(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Sessions.View(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		s.fail(w, r, err, "Error loading explorer")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeleteExplorer handles DELETE /api/explorer/{sessionId}.
func (s *Server) DeleteExplorer(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionId")); err != nil {
		s.fail(w, r, err, "Error deleting explorer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangeInterest handles PUT /api/explorer/{sessionId}/interest.
func (s *Server) ChangeInterest(w http.ResponseWriter, r *http.Request) {
	var body interestRequest
	if !s.decode(w, r, &body) {
		return
	}
	if !s.interestExists(w, r, body.InterestID) {
		return
	}
	res, err := s.deps.Sessions.ChangeInterest(r.Context(), chi.URLParam(r, "sessionId"), body.InterestID)
	if err != nil {
		s.fail(w, r, err, "Error changing interest")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SelectNode handles POST /api/explorer/{sessionId}/select.
func (s *Server) SelectNode(w http.ResponseWriter, r *http.Request) {
	var body selectRequest
	if !s.decode(w, r, &body) {
		return
	}
	sel, err := s.deps.Sessions.Select(r.Context(), chi.URLParam(r, "sessionId"), body.NodeID)
	if err != nil {
		s.fail(w, r, err, "Error selecting pathway")
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

// ResetHighlights handles POST /api/explorer/{sessionId}/reset.
func (s *Server) ResetHighlights(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Sessions.Reset(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		s.fail(w, r, err, "Error resetting highlights")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ToggleFilter handles POST /api/explorer/{sessionId}/filters/{status}.
func (s *Server) ToggleFilter(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, active, err := s.deps.Sessions.ToggleFilter(r.Context(), chi.URLParam(r, "sessionId"), status)
	if err != nil {
		s.fail(w, r, err, "Error toggling filter")
		return
	}
	s.metrics.recordToggle(status, active)
	writeJSON(w, http.StatusOK, toggleResponse{Result: res, Active: active})
}

// ClearFilters handles DELETE /api/explorer/{sessionId}/filters.
func (s *Server) ClearFilters(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Sessions.ClearFilters(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		s.fail(w, r, err, "Error clearing filters")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// -- Helpers --

func (s *Server) interestExists(w http.ResponseWriter, r *http.Request, interestID int) bool {
	if s.deps.Catalog == nil {
		return true
	}
	if _, err := s.deps.Catalog.GetInterest(r.Context(), interestID); err != nil {
		s.fail(w, r, err, "Error fetching career interest")
		return false
	}
	return true
}

func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	var v int
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		s.logger.Warn("Invalid path parameter", "param", name, "err", err)
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// fail maps domain errors to status codes. Not-found errors carry their own message;
// anything else is logged and answered with the generic failure text.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, failure string) {
	if msg, ok := notFoundMessage(err); ok {
		writeError(w, http.StatusNotFound, msg)
		return
	}
	if errors.Is(err, domain.ErrInvalidStatus) || errors.Is(err, domain.ErrInvalidNode) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeError(w, http.StatusInternalServerError, failure)
}

var notFoundMessages = []struct {
	err     error
	message string
}{
	{domain.ErrStudentNotFound, "Student not found"},
	{domain.ErrNodeNotFound, "Pathway not found"},
	{domain.ErrProgressNotFound, "Progress not found"},
	{domain.ErrInterestNotFound, "Career interest not found"},
	{domain.ErrSessionNotFound, "Explorer session not found"},
}

func notFoundMessage(err error) (string, bool) {
	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			return nf.message, true
		}
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
