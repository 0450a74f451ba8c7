// Package api serves the comps engine over HTTP as JSON.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sells-group/comps-engine/internal/comps"
	"github.com/sells-group/comps-engine/internal/config"
	"github.com/sells-group/comps-engine/internal/profile"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server routes HTTP requests to the engine and projector.
type Server struct {
	engine   *comps.Engine
	profiles *profile.Projector
	cfg      config.ServerConfig
	limiter  *clientLimiter
}

// NewServer creates a Server. A zero RateLimitRPS disables rate limiting.
func NewServer(engine *comps.Engine, profiles *profile.Projector, cfg config.ServerConfig) *Server {
	s := &Server{engine: engine, profiles: profiles, cfg: cfg}
	if cfg.RateLimitRPS > 0 {
		s.limiter = newClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	return s
}

// Handler builds the router with its middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		r.Use(s.limiter.middleware)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/companies", s.handleAll)
		r.Post("/companies/query", s.handleQuery)
		r.Get("/companies/search", s.handleSearch)
		r.Get("/companies/{id}", s.handleCompany)

		r.Get("/filter-options", s.handleFilterOptions)
		r.Get("/sectors", s.handleSectors)
		r.Get("/company-list", s.handleCompanyList)

		r.Get("/profiles", s.handleProfiles)
		r.Get("/profiles/{id}/metrics", s.handleProfileMetrics)
		r.Get("/profiles/{id}/metrics/{category}", s.handleProfileCategory)
		r.Get("/profiles/{id}/series", s.handleProfileSeries)
		r.Get("/profiles/{id}/charts/{chart}", s.handleProfileChart)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})

	return r
}
