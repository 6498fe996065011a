// Package gate enforces the submission-time invariants the aggregator
// depends on: strict score validation, at most one self record per ratee,
// one record per (ratee, role, rater) and a hard cap on peer and manager
// raters.
package gate

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/okian/fullcircle/internal/domain/catalog"
	"github.com/okian/fullcircle/internal/domain/model"
	"github.com/okian/fullcircle/pkg/metrics"
)

// Default gate configuration constants.
const (
	defaultMaxPeerRaters    = 2
	defaultMaxManagerRaters = 2
	defaultStripeCount      = 64
	minScore                = 1
)

// validate is the package-level validator instance for submission checks.
var validate = validator.New() //nolint:gochecknoglobals // shared, read-only after init

// Store is the persistence surface the gate needs. Append and the
// read-check before it run under the ratee's stripe lock, which makes the
// check-then-act sequence atomic per ratee.
type Store interface {
	Append(ctx context.Context, rec model.RatingRecord) error
	ListByRatee(ctx context.Context, ratee string) ([]model.RatingRecord, error)
}

// Gate accepts or rejects rating submissions.
type Gate interface {
	// Submit validates, deduplicates and appends one rating record.
	// On acceptance the returned record carries the assigned RecordID and
	// submission timestamp.
	Submit(ctx context.Context, rec model.RatingRecord) (model.RatingRecord, error)
}

// submission mirrors the record fields checked with struct tags. Score-map
// checks need the catalog and are done by hand.
type submission struct {
	RateeID string `validate:"required"`
	RaterID string `validate:"required"`
	Role    string `validate:"required,oneof=self peer manager"`
}

// StoreGate implements Gate on top of a Store with striped per-ratee locks.
type StoreGate struct {
	store   Store
	catalog *catalog.Catalog

	maxPeerRaters    int
	maxManagerRaters int

	stripes []sync.Mutex
}

// NewStoreGate creates a submission gate with configuration options.
func NewStoreGate(store Store, cat *catalog.Catalog, opts ...Option) *StoreGate {
	g := &StoreGate{
		store:            store,
		catalog:          cat,
		maxPeerRaters:    defaultMaxPeerRaters,
		maxManagerRaters: defaultMaxManagerRaters,
		stripes:          make([]sync.Mutex, defaultStripeCount),
	}

	// Apply all options
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Submit validates, deduplicates and appends one rating record.
func (g *StoreGate) Submit(ctx context.Context, rec model.RatingRecord) (model.RatingRecord, error) {
	// Self raters rate themselves; normalise before validation so the
	// dedup key is always (ratee, role, rater).
	if rec.Role == model.RoleSelf && rec.RaterID == "" {
		rec.RaterID = rec.RateeID
	}

	if err := g.validateRecord(rec); err != nil {
		metrics.RecordSubmissionInvalid()
		return model.RatingRecord{}, err
	}

	stripe := &g.stripes[stripeIndex(rec.RateeID, len(g.stripes))]
	stripe.Lock()
	defer stripe.Unlock()

	existing, err := g.store.ListByRatee(ctx, rec.RateeID)
	if err != nil {
		return model.RatingRecord{}, fmt.Errorf("gate: read existing records: %w", err)
	}

	if err := g.checkEligibility(rec, existing); err != nil {
		return model.RatingRecord{}, err
	}

	rec.RecordID = uuid.New().String()
	rec.SubmittedAt = time.Now().UTC()
	if err := g.store.Append(ctx, rec); err != nil {
		return model.RatingRecord{}, fmt.Errorf("gate: append record: %w", err)
	}

	metrics.RecordSubmissionAccepted(rec.Role.String())
	return rec, nil
}

// validateRecord rejects malformed submissions before any store access.
// Out-of-range or missing scores are caught here so aggregation can trust
// stored data.
func (g *StoreGate) validateRecord(rec model.RatingRecord) error {
	s := submission{
		RateeID: rec.RateeID,
		RaterID: rec.RaterID,
		Role:    rec.Role.String(),
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	maxScore := g.catalog.ScaleMax()
	for comp, score := range rec.Scores {
		if !g.catalog.Has(comp) {
			return fmt.Errorf("%w: %q", ErrUnknownCompetency, comp)
		}
		if score < minScore || score > maxScore {
			return fmt.Errorf("%w: %q=%d (want %d..%d)", ErrInvalidScore, comp, score, minScore, maxScore)
		}
	}
	for _, comp := range g.catalog.Competencies() {
		if _, ok := rec.Scores[comp]; !ok {
			return fmt.Errorf("%w: missing score for %q", ErrInvalidRecord, comp)
		}
	}
	return nil
}

// checkEligibility enforces dedup and rater caps against existing records.
// Must run under the ratee's stripe lock.
func (g *StoreGate) checkEligibility(rec model.RatingRecord, existing []model.RatingRecord) error {
	var roleCount int
	for _, prev := range existing {
		if prev.Role != rec.Role {
			continue
		}
		roleCount++
		if rec.Role == model.RoleSelf || prev.RaterID == rec.RaterID {
			metrics.RecordSubmissionDuplicate()
			return fmt.Errorf("%w: %s rating for %q by %q", ErrAlreadySubmitted, rec.Role, rec.RateeID, rec.RaterID)
		}
	}

	var limit int
	switch rec.Role {
	case model.RolePeer:
		limit = g.maxPeerRaters
	case model.RoleManager:
		limit = g.maxManagerRaters
	default:
		return nil // self: the duplicate check above is the only limit
	}
	if roleCount >= limit {
		metrics.RecordSubmissionCapRejected()
		return fmt.Errorf("%w: %d %s raters already on record for %q", ErrRaterCapReached, roleCount, rec.Role, rec.RateeID)
	}
	return nil
}

// stripeIndex hashes a ratee id onto a lock stripe.
func stripeIndex(ratee string, stripes int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ratee))
	return int(h.Sum32() % uint32(stripes)) //nolint:gosec // stripes is a small positive count
}
