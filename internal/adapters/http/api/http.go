// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/fullcircle/internal/domain/aggregate"
	"github.com/okian/fullcircle/internal/domain/model"
	"github.com/okian/fullcircle/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitRating runs one record through the submission gate. The email,
	// when present, receives a confirmation after acceptance.
	SubmitRating(ctx context.Context, rec model.RatingRecord, email string) (model.RatingRecord, error)

	// Report computes the aggregate report for a ratee, in catalog order.
	Report(ctx context.Context, ratee string) ([]aggregate.Result, error)

	// Ratees lists the ratees a peer or manager may assess.
	Ratees(ctx context.Context) ([]string, error)

	// CatalogInfo exposes the static rating catalog.
	CatalogInfo(ctx context.Context) types.CatalogInfo
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	ratingsHandler *RatingsHandler
	reportHandler  *ReportHandler
	rateesHandler  *RateesHandler
	catalogHandler *CatalogHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		ratingsHandler: NewRatingsHandler(deps),
		reportHandler:  NewReportHandler(deps),
		rateesHandler:  NewRateesHandler(deps),
		catalogHandler: NewCatalogHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/ratings", MetricsMiddleware(s.ratingsHandler.HandlePostRating, "ratings"))
	mux.HandleFunc("/report/", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
	mux.HandleFunc("/ratees", MetricsMiddleware(s.rateesHandler.HandleGetRatees, "ratees"))
	mux.HandleFunc("/catalog", MetricsMiddleware(s.catalogHandler.HandleGetCatalog, "catalog"))
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
	RecordID  string `json:"record_id,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// This stays generic to avoid tight coupling with specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFound interface{ NotFound() bool }
	if errors.As(err, &notFound) {
		return notFound.NotFound()
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
