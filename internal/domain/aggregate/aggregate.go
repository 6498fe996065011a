// Package aggregate turns raw per-rater ratings into tiered competency
// results. Aggregation is a pure function over its inputs: every call
// recomputes from scratch, nothing is cached or persisted.
package aggregate

import (
	"context"
	"math"

	"github.com/okian/fullcircle/internal/domain/catalog"
	"github.com/okian/fullcircle/internal/domain/model"
)

// requiredRaters is the number of scores that must be present before a
// competency aggregate is computed (one self plus two others, in any role
// mix). The percentage denominator below is tied to this constant; changing
// the eligibility count means changing both together.
const requiredRaters = 3

// State describes how a competency result was resolved.
type State string

// Result states.
const (
	// StateScored means enough ratings were present and a percentage was computed.
	StateScored State = "scored"
	// StateInsufficientData means the competency was rated, but not by the required count of raters.
	StateInsufficientData State = "insufficient_data"
	// StateNotRated means no record carried a score for the competency at all.
	StateNotRated State = "not_rated"
)

// Label returns the human-readable sentinel text for a non-scored state.
func (s State) Label() string {
	switch s {
	case StateInsufficientData:
		return "Insufficient Data"
	case StateNotRated:
		return "Not Rated"
	}
	return ""
}

// Result is the aggregate outcome for one (ratee, competency) pair.
type Result struct {
	Competency  string       `json:"competency"`
	State       State        `json:"state"`
	Percent     float64      `json:"percent,omitempty"`
	Tier        catalog.Tier `json:"tier,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Engine computes aggregate results against a fixed catalog.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates an aggregation engine bound to the given catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Aggregate computes one Result per catalog competency for the given ratee.
// Records for other ratees are ignored; self, peer and manager records are
// pooled with equal weight. Malformed score sets never produce an error:
// absent competencies degrade to the not-rated state so the report surface
// stays renderable.
func (e *Engine) Aggregate(_ context.Context, records []model.RatingRecord, ratee string) map[string]Result {
	pool := make([]model.RatingRecord, 0, len(records))
	for _, rec := range records {
		if rec.RateeID == ratee {
			pool = append(pool, rec)
		}
	}

	denominator := float64(requiredRaters * e.catalog.ScaleMax())

	results := make(map[string]Result, len(e.catalog.Competencies()))
	for _, comp := range e.catalog.Competencies() {
		var sum, count int
		for _, rec := range pool {
			score, ok := rec.Scores[comp]
			if !ok {
				continue
			}
			sum += score
			count++
		}

		switch {
		case count == 0:
			results[comp] = Result{Competency: comp, State: StateNotRated}
		case count != requiredRaters:
			results[comp] = Result{Competency: comp, State: StateInsufficientData}
		default:
			percent := round2(float64(sum) / denominator * 100)
			tier := e.catalog.TierFor(percent)
			results[comp] = Result{
				Competency:  comp,
				State:       StateScored,
				Percent:     percent,
				Tier:        tier,
				Description: e.catalog.Description(comp, tier),
			}
		}
	}
	return results
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
