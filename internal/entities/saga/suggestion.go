package saga

// ReasonCode is the semantic tag explaining why a suggestion got its tier.
// Presentation (badges, icons, copy) is an external concern keyed off this.
type ReasonCode string

// Reason codes, strongest signal first.
const (
	ReasonPrestigePath       ReasonCode = "PRESTIGE_PATH"
	ReasonWishlistPrereq     ReasonCode = "WISHLIST_PREREQ"
	ReasonMetaSynergy        ReasonCode = "META_SYNERGY"
	ReasonSpeciesAffinity    ReasonCode = "SPECIES_AFFINITY"
	ReasonChainContinuation  ReasonCode = "CHAIN_CONTINUATION"
	ReasonSurveyAlignment    ReasonCode = "SURVEY_ALIGNMENT"
	ReasonSkillMatch         ReasonCode = "SKILL_MATCH"
	ReasonAbilityPrereqMatch ReasonCode = "ABILITY_PREREQ_MATCH"
	ReasonClassTheme         ReasonCode = "CLASS_THEME"
	ReasonGeneral            ReasonCode = "GENERAL"
	ReasonFutureOption       ReasonCode = "FUTURE_OPTION"
)

// Tier values form a closed, totally ordered ladder. Exactly one tier is
// ever assigned per candidate; tiers are never summed.
const (
	TierPrestigePath       = 6.0
	TierWishlistPrereq     = 5.5
	TierMetaSynergy        = 5.0
	TierSpeciesAffinity    = 4.5
	TierChainContinuation  = 4.0
	TierSurveyAlignment    = 3.5
	TierSkillMatch         = 3.0
	TierAbilityPrereqMatch = 2.0
	TierClassTheme         = 1.0
	TierGeneral            = 0.0
)

// Suggestion is the engine's verdict on one candidate.
type Suggestion struct {
	Tier float64 `json:"tier"`
	// Reason tags the single signal that produced the tier.
	Reason ReasonCode `json:"reason"`
	// SourceID points at the evidence, e.g. "prestige:Jedi Knight",
	// "chain:Point-Blank Shot", "skill:stealth". Empty when the reason
	// needs no pointer.
	SourceID string `json:"source_id,omitempty"`
	// Confidence is a fixed lookup keyed by the nearest ladder tier,
	// optionally refined by the coherence scorers. It never feeds back
	// into the tier.
	Confidence float64 `json:"confidence"`
}

// tierConfidence maps ladder tiers to their fixed confidence values.
var tierConfidence = []struct {
	tier       float64
	confidence float64
}{
	{TierPrestigePath, 0.95},
	{TierWishlistPrereq, 0.9},
	{TierMetaSynergy, 0.88},
	{TierSpeciesAffinity, 0.8},
	{TierChainContinuation, 0.78},
	{TierSurveyAlignment, 0.7},
	{TierSkillMatch, 0.65},
	{TierAbilityPrereqMatch, 0.55},
	{TierClassTheme, 0.45},
	{TierGeneral, 0.3},
}

// ConfidenceForTier returns the fixed confidence for the nearest ladder
// tier. Decayed species tiers land on whichever ladder rung is closest.
func ConfidenceForTier(tier float64) float64 {
	best := tierConfidence[0]
	bestDist := abs(tier - best.tier)
	for _, entry := range tierConfidence[1:] {
		if d := abs(tier - entry.tier); d < bestDist {
			best = entry
			bestDist = d
		}
	}
	return best.confidence
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// RankedCandidate pairs a candidate name with its suggestion for output.
type RankedCandidate struct {
	Name       string     `json:"name"`
	Suggestion Suggestion `json:"suggestion"`
	// Coherence is the continuous build-fit score from the coherence
	// scorers, for UI emphasis only; it never influences the tier.
	Coherence float64 `json:"coherence"`
}

// RankedClass is a ranked class candidate. SortTier is the tier after the
// class-category bias used for ordering; Suggestion.Tier stays on the
// ladder.
type RankedClass struct {
	ClassID    string        `json:"class_id"`
	Category   ClassCategory `json:"category"`
	Suggestion Suggestion    `json:"suggestion"`
	SortTier   float64       `json:"sort_tier"`
	Coherence  float64       `json:"coherence"`
}
