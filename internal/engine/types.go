package engine

import (
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// RankFeaturesInput carries the snapshot and candidate set for feature
// ranking. An empty candidate list means "every feature in the catalog".
type RankFeaturesInput struct {
	Snapshot   *saga.CharacterSnapshot
	Candidates []string
	// Intent, when set, is used instead of recomputing build intent
	// (callers pass the cached profile).
	Intent *saga.BuildIntent
	// IncludeFuture adds reduced-scale estimates for candidates that
	// fail legality today.
	IncludeFuture bool
}

// RankFeaturesOutput is the total ordering over the legal candidates.
type RankFeaturesOutput struct {
	Ranked []saga.RankedCandidate
	// Future holds the reduced-scale estimates when IncludeFuture was
	// set; disjoint from Ranked.
	Future []saga.RankedCandidate
}

// RankClassesInput carries the snapshot and candidate class IDs.
type RankClassesInput struct {
	Snapshot   *saga.CharacterSnapshot
	Candidates []string
	Intent     *saga.BuildIntent
}

// RankClassesOutput is the total ordering over the legal class candidates.
type RankClassesOutput struct {
	Ranked []saga.RankedClass
}

// AnalyzeBuildIntentInput carries the snapshot to profile.
type AnalyzeBuildIntentInput struct {
	Snapshot *saga.CharacterSnapshot
}

// AnalyzeBuildIntentOutput is the inferred build profile.
type AnalyzeBuildIntentOutput struct {
	Intent *saga.BuildIntent
}

// FindActiveSynergiesInput carries the snapshot to match rules against.
type FindActiveSynergiesInput struct {
	Snapshot *saga.CharacterSnapshot
}

// ActiveSynergy is a matched rule in transportable form (the trigger
// predicate stays behind).
type ActiveSynergy struct {
	ID        string
	Archetype string
	Priority  string
	FollowUps []saga.SynergyFollowUp
}

// FindActiveSynergiesOutput lists matched rules, strongest first.
type FindActiveSynergiesOutput struct {
	Active []ActiveSynergy
}

// EvaluatePrerequisitesInput carries one prerequisite set to evaluate.
// CandidateID excludes the candidate from tree-talent counting.
type EvaluatePrerequisitesInput struct {
	Snapshot    *saga.CharacterSnapshot
	Prereqs     *saga.PrerequisiteSet
	CandidateID string
}

// EvaluatePrerequisitesOutput reports satisfaction and the fixed unmet
// reason strings.
type EvaluatePrerequisitesOutput struct {
	Satisfied    bool
	UnmetReasons []string
}

// CheckCandidateInput asks whether a cataloged feature or class is legal
// for the character. Exactly one of FeatureName or ClassID is set.
type CheckCandidateInput struct {
	Snapshot    *saga.CharacterSnapshot
	FeatureName string
	ClassID     string
}

// CheckCandidateOutput reports legality and the fixed unmet reason
// strings.
type CheckCandidateOutput struct {
	Satisfied    bool
	UnmetReasons []string
}

// CanAccessTalentTreeInput asks whether the character can take talents
// from a tree.
type CanAccessTalentTreeInput struct {
	Snapshot *saga.CharacterSnapshot
	Tree     string
}

// CanAccessTalentTreeOutput reports tree access.
type CanAccessTalentTreeOutput struct {
	CanAccess bool
}

// EstimateAvailabilityInput asks how far away an illegal candidate is.
type EstimateAvailabilityInput struct {
	Snapshot  *saga.CharacterSnapshot
	Candidate string
}

// EstimateAvailabilityOutput maps the levels-to-qualify estimate onto the
// reduced future scale.
type EstimateAvailabilityOutput struct {
	// Qualifies is true when the candidate is already legal (estimate 0).
	Qualifies bool
	// LevelsAway is the minimum levels-to-qualification estimate.
	LevelsAway int32
	// Tier is on the reduced five-step scale, not the primary ladder.
	Tier float64
}
