// Package progression defines the interface for progression recommendation
// operations
package progression

//go:generate mockgen -destination=mock/mock_service.go -package=progressionmock github.com/sagaforge/progression-api/internal/services/progression Service

import (
	"context"

	"github.com/sagaforge/progression-api/internal/engine"
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// Service defines the interface for progression recommendation operations
type Service interface {
	// Suggestions
	SuggestFeatures(ctx context.Context, input *SuggestFeaturesInput) (*SuggestFeaturesOutput, error)
	SuggestClasses(ctx context.Context, input *SuggestClassesInput) (*SuggestClassesOutput, error)

	// Build analysis
	AnalyzeBuildIntent(ctx context.Context, input *AnalyzeBuildIntentInput) (*AnalyzeBuildIntentOutput, error)
	ListActiveSynergies(ctx context.Context, input *ListActiveSynergiesInput) (*ListActiveSynergiesOutput, error)

	// Eligibility
	CheckPrerequisites(ctx context.Context, input *CheckPrerequisitesInput) (*CheckPrerequisitesOutput, error)

	// Session lifecycle
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)
	InvalidateIntent(ctx context.Context, input *InvalidateIntentInput) (*InvalidateIntentOutput, error)
}

// SuggestFeaturesInput defines the request for feature suggestions
type SuggestFeaturesInput struct {
	CharacterID string
	// Pending holds in-session selections merged into the snapshot before
	// evaluation
	Pending *saga.PendingSelections
	// Candidates restricts ranking to the named features; empty means the
	// whole catalog
	Candidates []string
	// IncludeFuture adds reduced-scale estimates for currently illegal
	// candidates
	IncludeFuture bool
}

// SuggestFeaturesOutput defines the response for feature suggestions
type SuggestFeaturesOutput struct {
	Suggestions []saga.RankedCandidate
	Future      []saga.RankedCandidate
	Intent      *saga.BuildIntent
}

// SuggestClassesInput defines the request for class suggestions
type SuggestClassesInput struct {
	CharacterID string
	Pending     *saga.PendingSelections
	Candidates  []string
}

// SuggestClassesOutput defines the response for class suggestions
type SuggestClassesOutput struct {
	Suggestions []saga.RankedClass
	Intent      *saga.BuildIntent
}

// AnalyzeBuildIntentInput defines the request for build-intent analysis
type AnalyzeBuildIntentInput struct {
	CharacterID string
	Pending     *saga.PendingSelections
}

// AnalyzeBuildIntentOutput defines the response for build-intent analysis
type AnalyzeBuildIntentOutput struct {
	Intent *saga.BuildIntent
	// Cached is true when the profile came from the intent cache
	Cached bool
}

// ListActiveSynergiesInput defines the request for active synergy listing
type ListActiveSynergiesInput struct {
	CharacterID string
	Pending     *saga.PendingSelections
}

// ListActiveSynergiesOutput defines the response for active synergy listing
type ListActiveSynergiesOutput struct {
	Active []engine.ActiveSynergy
}

// CheckPrerequisitesInput defines the request for a prerequisite check.
// Exactly one of FeatureName or ClassID must be set.
type CheckPrerequisitesInput struct {
	CharacterID string
	Pending     *saga.PendingSelections
	FeatureName string
	ClassID     string
}

// CheckPrerequisitesOutput defines the response for a prerequisite check
type CheckPrerequisitesOutput struct {
	Satisfied    bool
	UnmetReasons []string
}

// StartSessionInput defines the request for starting a progression session
type StartSessionInput struct {
	CharacterID string
}

// StartSessionOutput defines the response for starting a progression session
type StartSessionOutput struct {
	SessionID   string
	CharacterID string
}

// InvalidateIntentInput defines the request for dropping cached intents
type InvalidateIntentInput struct {
	CharacterID string
}

// InvalidateIntentOutput defines the response for dropping cached intents
type InvalidateIntentOutput struct {
	Dropped int
}
