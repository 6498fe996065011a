// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// RateesHandler handles ratee listing requests.
type RateesHandler struct {
	deps Dependencies
}

// NewRateesHandler creates a new ratees handler.
func NewRateesHandler(deps Dependencies) *RateesHandler {
	return &RateesHandler{deps: deps}
}

// rateesResponse is the GET /ratees payload.
type rateesResponse struct {
	Ratees []string `json:"ratees"`
}

// HandleGetRatees handles GET /ratees requests. It lists ratees with a self
// assessment on record, the candidates a peer or manager may assess.
func (h *RateesHandler) HandleGetRatees(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_ratees"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ratees, err := h.deps.Ratees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if ratees == nil {
		ratees = []string{}
	}
	writeJSON(w, http.StatusOK, rateesResponse{Ratees: ratees})
}
