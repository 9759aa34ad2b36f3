// Package sagarules provides the concrete implementation of the engine
// interface: prerequisite evaluation, build-intent analysis, synergy
// detection, and tiered suggestion ranking over the content catalog.
package sagarules

import (
	"context"

	"github.com/sagaforge/progression-api/internal/content"
	"github.com/sagaforge/progression-api/internal/engine"
	"github.com/sagaforge/progression-api/internal/errors"
)

// Adapter implements engine.Engine over a read-only content catalog.
type Adapter struct {
	catalog   *content.Catalog
	evaluator *Evaluator
	analyzer  *IntentAnalyzer
	detector  *Detector
	ranker    *Ranker
}

// AdapterConfig contains configuration for creating a new Adapter.
type AdapterConfig struct {
	Catalog *content.Catalog
}

// Validate checks that all required dependencies are provided.
func (c *AdapterConfig) Validate() error {
	if c.Catalog == nil {
		return errors.InvalidArgument("catalog is required")
	}
	return nil
}

// NewAdapter creates a new rules engine adapter.
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Adapter{
		catalog:   cfg.Catalog,
		evaluator: NewEvaluator(cfg.Catalog),
		analyzer:  NewIntentAnalyzer(cfg.Catalog),
		detector:  NewDetector(cfg.Catalog),
		ranker:    NewRanker(cfg.Catalog),
	}, nil
}

// Ensure Adapter implements the Engine interface.
var _ engine.Engine = (*Adapter)(nil)

// RankFeatures ranks feature candidates for the snapshot.
func (a *Adapter) RankFeatures(_ context.Context, input *engine.RankFeaturesInput) (*engine.RankFeaturesOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	ranked, future := a.ranker.RankFeatures(input.Snapshot, input.Candidates, input.Intent, input.IncludeFuture)
	return &engine.RankFeaturesOutput{Ranked: ranked, Future: future}, nil
}

// RankClasses ranks class candidates for the snapshot.
func (a *Adapter) RankClasses(_ context.Context, input *engine.RankClassesInput) (*engine.RankClassesOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	ranked := a.ranker.RankClasses(input.Snapshot, input.Candidates, input.Intent)
	return &engine.RankClassesOutput{Ranked: ranked}, nil
}

// AnalyzeBuildIntent computes the build-intent profile.
func (a *Adapter) AnalyzeBuildIntent(_ context.Context, input *engine.AnalyzeBuildIntentInput) (*engine.AnalyzeBuildIntentOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	return &engine.AnalyzeBuildIntentOutput{Intent: a.analyzer.Analyze(input.Snapshot)}, nil
}

// FindActiveSynergies returns the matched synergy rules, strongest first.
func (a *Adapter) FindActiveSynergies(_ context.Context, input *engine.FindActiveSynergiesInput) (*engine.FindActiveSynergiesOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	active := a.detector.Active(input.Snapshot)
	out := &engine.FindActiveSynergiesOutput{Active: make([]engine.ActiveSynergy, 0, len(active))}
	for _, rule := range active {
		out.Active = append(out.Active, engine.ActiveSynergy{
			ID:        rule.ID,
			Archetype: rule.Archetype,
			Priority:  rule.Priority.String(),
			FollowUps: rule.FollowUps,
		})
	}
	return out, nil
}

// EvaluatePrerequisites checks one prerequisite set against the snapshot.
func (a *Adapter) EvaluatePrerequisites(_ context.Context, input *engine.EvaluatePrerequisitesInput) (*engine.EvaluatePrerequisitesOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	result := a.evaluator.Evaluate(input.Snapshot, input.Prereqs, input.CandidateID)
	return &engine.EvaluatePrerequisitesOutput{
		Satisfied:    result.Satisfied,
		UnmetReasons: result.UnmetReasons,
	}, nil
}

// CheckCandidate evaluates a cataloged feature or class by name.
func (a *Adapter) CheckCandidate(_ context.Context, input *engine.CheckCandidateInput) (*engine.CheckCandidateOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}
	if (input.FeatureName == "") == (input.ClassID == "") {
		return nil, errors.InvalidArgument("exactly one of feature name or class ID must be set")
	}

	var result EvalResult
	if input.FeatureName != "" {
		def, ok := a.catalog.Feature(input.FeatureName)
		if !ok {
			return nil, errors.NotFoundf("unknown feature %q", input.FeatureName)
		}
		result = a.evaluator.EvaluateFeature(input.Snapshot, def)
	} else {
		def, ok := a.catalog.Class(input.ClassID)
		if !ok {
			return nil, errors.NotFoundf("unknown class %q", input.ClassID)
		}
		result = a.evaluator.EvaluateClass(input.Snapshot, def)
	}

	return &engine.CheckCandidateOutput{
		Satisfied:    result.Satisfied,
		UnmetReasons: result.UnmetReasons,
	}, nil
}

// CanAccessTalentTree applies the fixed tree access rules.
func (a *Adapter) CanAccessTalentTree(_ context.Context, input *engine.CanAccessTalentTreeInput) (*engine.CanAccessTalentTreeOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	return &engine.CanAccessTalentTreeOutput{
		CanAccess: a.evaluator.CanAccessTalentTree(input.Snapshot, input.Tree),
	}, nil
}

// EstimateAvailability estimates levels until an illegal candidate
// qualifies, on the reduced future scale.
func (a *Adapter) EstimateAvailability(_ context.Context, input *engine.EstimateAvailabilityInput) (*engine.EstimateAvailabilityOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}

	levels, tier, qualifies := a.ranker.EstimateAvailability(input.Snapshot, input.Candidate)
	return &engine.EstimateAvailabilityOutput{
		Qualifies:  qualifies,
		LevelsAway: levels,
		Tier:       tier,
	}, nil
}
