// Package tier classifies (company, level) pairs into base-pay bands and
// pay-mix profiles. The partition of companies into tiers is a static lookup
// table — encoded domain knowledge, not inference — and the fallback to the
// services tier for unknown companies is a first-class policy, not an
// implicit else-branch.
package tier

import (
	"strings"

	"payscope/pkg/domain"
	dErrors "payscope/pkg/domain-errors"
)

// Tier is a named bucket of companies sharing a compensation profile.
type Tier string

const (
	// TierTopProduct: top-tier multinationals (FAANG-class).
	TierTopProduct Tier = "top_product"
	// TierGrowthProduct: growth-stage product companies and funded startups.
	TierGrowthProduct Tier = "growth_product"
	// TierServices: services and outsourcing firms. Default for unknown
	// companies.
	TierServices Tier = "services"
)

// IsValid checks if the tier is one of the supported enum values.
func (t Tier) IsValid() bool {
	switch t {
	case TierTopProduct, TierGrowthProduct, TierServices:
		return true
	}
	return false
}

// String returns the string representation.
func (t Tier) String() string {
	return string(t)
}

// Band is the inclusive base-pay interval for a tier and level, in INR per
// year.
type Band struct {
	Min float64
	Max float64
}

// FractionRange is a closed sub-interval of [0,1].
type FractionRange struct {
	Min float64
	Max float64
}

// PayMix describes what share of base pay a tier grants as bonus and as
// equity.
type PayMix struct {
	Bonus  FractionRange
	Equity FractionRange
}

// Profile is one tier's complete compensation policy.
type Profile struct {
	// Bands indexes base-pay intervals by level.
	Bands map[domain.Level]Band
	// DefaultBand applies when a level has no entry in Bands. Falling back
	// here, rather than to zero, keeps a partially-specified profile usable.
	DefaultBand Band
	Mix         PayMix
}

// Table maps companies to tiers and tiers to profiles. It is plain
// configuration data: callers pass it into the classifier and the generator,
// and tests can swap in their own version.
type Table struct {
	// companies keys are lower-cased company names.
	companies map[string]Tier
	profiles  map[Tier]Profile
	fallback  Tier
}

// NewTable builds a classification table. Company names are matched
// case-insensitively.
func NewTable(companies map[string]Tier, profiles map[Tier]Profile, fallback Tier) (*Table, error) {
	if !fallback.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "fallback tier is not a known tier")
	}
	if _, ok := profiles[fallback]; !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "fallback tier has no profile")
	}
	normalized := make(map[string]Tier, len(companies))
	for name, t := range companies {
		if !t.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, "company "+name+" maps to unknown tier")
		}
		if _, ok := profiles[t]; !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "tier "+t.String()+" has no profile")
		}
		normalized[strings.ToLower(name)] = t
	}
	return &Table{companies: normalized, profiles: profiles, fallback: fallback}, nil
}

// TierOf resolves a company name to its tier, falling back to the default
// tier for unrecognized companies.
func (t *Table) TierOf(companyName string) Tier {
	if tier, ok := t.companies[strings.ToLower(companyName)]; ok {
		return tier
	}
	return t.fallback
}

// Classify returns the base-pay band and pay-mix profile for a company and
// level. Deterministic: the same table version always returns identical
// bands; any randomness lives in the caller.
//
// Errors: CodeValidation when the level is not part of the closed
// enumeration.
func (t *Table) Classify(companyName string, level domain.Level) (Band, PayMix, error) {
	if !level.IsValid() {
		return Band{}, PayMix{}, dErrors.New(dErrors.CodeValidation, "unknown level: "+level.String())
	}
	profile := t.profiles[t.TierOf(companyName)]
	band, ok := profile.Bands[level]
	if !ok {
		// Level absent from this tier's band map: the tier's own default
		// band policy applies, never a silent zero.
		band = profile.DefaultBand
	}
	return band, profile.Mix, nil
}
