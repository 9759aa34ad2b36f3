// Package engine defines the progression recommendation engine contract.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/sagaforge/progression-api/internal/engine Engine

import (
	"context"
)

// Engine evaluates eligibility and ranks progression candidates. Every
// method is a pure function of its input snapshot and the content tables
// the implementation was built with; nothing is persisted.
type Engine interface {
	// Ranking
	RankFeatures(ctx context.Context, input *RankFeaturesInput) (*RankFeaturesOutput, error)
	RankClasses(ctx context.Context, input *RankClassesInput) (*RankClassesOutput, error)

	// Build intent
	AnalyzeBuildIntent(ctx context.Context, input *AnalyzeBuildIntentInput) (*AnalyzeBuildIntentOutput, error)

	// Synergies
	FindActiveSynergies(ctx context.Context, input *FindActiveSynergiesInput) (*FindActiveSynergiesOutput, error)

	// Prerequisites
	EvaluatePrerequisites(ctx context.Context, input *EvaluatePrerequisitesInput) (*EvaluatePrerequisitesOutput, error)
	CheckCandidate(ctx context.Context, input *CheckCandidateInput) (*CheckCandidateOutput, error)
	CanAccessTalentTree(ctx context.Context, input *CanAccessTalentTreeInput) (*CanAccessTalentTreeOutput, error)

	// Future availability (estimates for currently illegal candidates)
	EstimateAvailability(ctx context.Context, input *EstimateAvailabilityInput) (*EstimateAvailabilityOutput, error)
}
