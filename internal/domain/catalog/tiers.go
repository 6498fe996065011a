// Package catalog holds the static rating definitions: competencies, the
// ordinal rating scale, per-tier descriptive texts and the percentage-to-tier
// boundary schemes.
package catalog

import "fmt"

// Tier is a qualitative competency level derived from an aggregate percentage.
type Tier string

// The five tiers, worst to best. Labels double as rating-scale labels.
const (
	TierPoorly      Tier = "Poorly Competent"
	TierMinimally   Tier = "Minimally Competent"
	TierEffectively Tier = "Effectively Competent"
	TierHighly      Tier = "Highly Competent"
	TierMastery     Tier = "Mastery Competent"
)

// Tiers lists all tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierPoorly, TierMinimally, TierEffectively, TierHighly, TierMastery}
}

// String returns the tier label.
func (t Tier) String() string { return string(t) }

// tierBound is one step of a boundary scheme: percentages below upper (or
// equal to it, when inclusive) map to tier.
type tierBound struct {
	upper     float64
	inclusive bool
	tier      Tier
}

// Scheme is a named, total, non-overlapping partition of [0,100] into tiers.
// Two incompatible schemes exist in the assessment's history; which one is
// active is a configuration choice, never a guess.
type Scheme struct {
	name   string
	bounds []tierBound
}

// Named boundary schemes.
var (
	// SchemeLegacy uses half-open intervals: <40, <55, <70, <85, else Mastery.
	SchemeLegacy = Scheme{
		name: "legacy",
		bounds: []tierBound{
			{upper: 40, tier: TierPoorly},
			{upper: 55, tier: TierMinimally},
			{upper: 70, tier: TierEffectively},
			{upper: 85, tier: TierHighly},
		},
	}

	// SchemeRevised uses closed upper bounds: <=25, <=54, <=70, <=89, else Mastery.
	SchemeRevised = Scheme{
		name: "revised",
		bounds: []tierBound{
			{upper: 25, inclusive: true, tier: TierPoorly},
			{upper: 54, inclusive: true, tier: TierMinimally},
			{upper: 70, inclusive: true, tier: TierEffectively},
			{upper: 89, inclusive: true, tier: TierHighly},
		},
	}
)

// SchemeByName resolves a configured scheme name.
func SchemeByName(name string) (Scheme, error) {
	switch name {
	case "legacy":
		return SchemeLegacy, nil
	case "revised":
		return SchemeRevised, nil
	}
	return Scheme{}, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Name returns the scheme's configured name.
func (s Scheme) Name() string { return s.name }

// TierFor maps a percentage in [0,100] to its tier. Every percentage maps to
// exactly one tier; values above the last bound land on the top tier.
func (s Scheme) TierFor(percent float64) Tier {
	for _, b := range s.bounds {
		if percent < b.upper || (b.inclusive && percent == b.upper) {
			return b.tier
		}
	}
	return TierMastery
}
