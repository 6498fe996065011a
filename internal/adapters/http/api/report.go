// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/okian/fullcircle/internal/domain/aggregate"
)

// ReportHandler handles aggregate report requests.
type ReportHandler struct {
	deps Dependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps Dependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// reportResponse is the GET /report/{ratee} payload.
type reportResponse struct {
	RateeID string             `json:"ratee_id"`
	Results []aggregate.Result `json:"results"`
}

// HandleGetReport handles GET /report/{ratee_id} requests.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ratee := strings.TrimPrefix(r.URL.Path, "/report/")
	if ratee == "" || strings.Contains(ratee, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	results, err := h.deps.Report(r.Context(), ratee)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{RateeID: ratee, Results: results})
}
