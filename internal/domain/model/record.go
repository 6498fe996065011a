// Package model contains domain models passed between layers.
package model

import "time"

// Role identifies the relationship of a rater to the ratee.
type Role string

// Rater roles recognised by the submission gate.
const (
	RoleSelf    Role = "self"
	RolePeer    Role = "peer"
	RoleManager Role = "manager"
)

// String returns the string representation of the role.
func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the recognised roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSelf, RolePeer, RoleManager:
		return true
	}
	return false
}

// RatingRecord is one rater's submission for one ratee. Records are
// append-only: once accepted they are never modified or deleted, so reports
// can be regenerated from them at any time.
type RatingRecord struct {
	RecordID    string         // unique id, assigned on acceptance
	RateeID     string         // individual being assessed
	RaterID     string         // individual submitting; equals RateeID for self records
	Role        Role           // self, peer or manager
	Scores      map[string]int // competency name -> integer score on the rating scale
	SubmittedAt time.Time      // acceptance timestamp (UTC)
}

// Clone returns a deep copy so stored records stay immutable under
// concurrent readers.
func (r RatingRecord) Clone() RatingRecord {
	out := r
	out.Scores = make(map[string]int, len(r.Scores))
	for k, v := range r.Scores {
		out.Scores[k] = v
	}
	return out
}
