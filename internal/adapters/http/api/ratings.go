// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/fullcircle/internal/domain/gate"
	"github.com/okian/fullcircle/internal/domain/model"
)

// validate is the package-level validator for request payloads.
var validate = validator.New() //nolint:gochecknoglobals // shared, read-only after init

// RatingsHandler handles rating submission requests.
type RatingsHandler struct {
	deps Dependencies
}

// NewRatingsHandler creates a new ratings handler.
func NewRatingsHandler(deps Dependencies) *RatingsHandler {
	return &RatingsHandler{deps: deps}
}

// ratingRequest mirrors the POST /ratings payload.
type ratingRequest struct {
	RateeID string         `json:"ratee_id" validate:"required"`
	RaterID string         `json:"rater_id" validate:"required_unless=Role self"`
	Role    string         `json:"role" validate:"required,oneof=self peer manager"`
	Scores  map[string]int `json:"scores" validate:"required,min=1"`
	Email   string         `json:"email" validate:"omitempty,email"`
}

// HandlePostRating handles POST /ratings requests.
func (h *RatingsHandler) HandlePostRating(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_rating"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec := model.RatingRecord{
		RateeID: req.RateeID,
		RaterID: req.RaterID,
		Role:    model.Role(req.Role),
		Scores:  req.Scores,
	}

	accepted, err := h.deps.SubmitRating(r.Context(), rec, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, gate.ErrAlreadySubmitted):
			// Idempotent resubmission: surfaced as a warning, not a failure.
			writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		case errors.Is(err, gate.ErrRaterCapReached):
			writeError(w, http.StatusConflict, "rater_cap_reached", Wrap(op, err))
		case errors.Is(err, gate.ErrInvalidRecord),
			errors.Is(err, gate.ErrInvalidScore),
			errors.Is(err, gate.ErrUnknownCompetency):
			writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false, RecordID: accepted.RecordID})
}
