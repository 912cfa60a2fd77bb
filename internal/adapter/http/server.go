package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/hazard-decision-service/internal/domain"
)

// Assessor evaluates hazards on demand.
type Assessor interface {
	Assess(ctx context.Context, center *domain.Coordinate, flags domain.MockFlags) domain.Assessment
}

// Server exposes the hazard API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	assessor   Assessor
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /v1/hazards routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, assessor Assessor, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		assessor: assessor,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/hazards/global", s.handleGlobal)
	mux.HandleFunc("GET /v1/hazards", s.handleGrid)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// globalResponse is the banner view: only the single most pressing hazard.
type globalResponse struct {
	Center      *domain.Coordinate `json:"center,omitempty"`
	Hazard      domain.Hazard      `json:"hazard"`
	Mocked      bool               `json:"mocked"`
	EvaluatedAt time.Time          `json:"evaluated_at"`
}

func (s *Server) handleGlobal(w http.ResponseWriter, r *http.Request) {
	center, flags, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a := s.assessor.Assess(r.Context(), center, flags)
	sharedobs.WriteJSON(w, http.StatusOK, globalResponse{
		Center:      a.Center,
		Hazard:      a.Global,
		Mocked:      a.Mocked,
		EvaluatedAt: a.EvaluatedAt,
	})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	center, flags, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sharedobs.WriteJSON(w, http.StatusOK, s.assessor.Assess(r.Context(), center, flags))
}

// parseQuery reads the optional lat, lon, and mock parameters. lat and lon
// must be given together.
func parseQuery(r *http.Request) (*domain.Coordinate, domain.MockFlags, error) {
	q := r.URL.Query()

	flags, err := domain.ParseMockFlags(q.Get("mock"))
	if err != nil {
		return nil, domain.MockFlags{}, err
	}

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" && lonStr == "" {
		return nil, flags, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, domain.MockFlags{}, errors.New("lat and lon must be given together")
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	c := domain.Coordinate{Lat: lat, Lon: lon}
	if errLat != nil || errLon != nil || !c.Valid() || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return nil, domain.MockFlags{}, errors.New("lat and lon must be valid coordinates")
	}
	return &c, flags, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
