// Package progression implements the progression recommendation orchestrator
package progression

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"strings"

	"github.com/sagaforge/progression-api/internal/engine"
	"github.com/sagaforge/progression-api/internal/entities/saga"
	"github.com/sagaforge/progression-api/internal/errors"
	"github.com/sagaforge/progression-api/internal/pkg/idgen"
	characterrepo "github.com/sagaforge/progression-api/internal/repositories/character"
	"github.com/sagaforge/progression-api/internal/repositories/intentcache"
	"github.com/sagaforge/progression-api/internal/services/progression"
)

// Config holds the dependencies for the progression orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	IntentCache   intentcache.Repository
	Engine        engine.Engine
	IDGenerator   idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.IntentCache == nil {
		vb.RequiredField("IntentCache")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the progression.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	intentCache   intentcache.Repository
	engine        engine.Engine
	idGenerator   idgen.Generator
}

// New creates a new progression orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		intentCache:   cfg.IntentCache,
		engine:        cfg.Engine,
		idGenerator:   cfg.IDGenerator,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ progression.Service = (*Orchestrator)(nil)

// SuggestFeatures ranks acquirable features for a character
func (o *Orchestrator) SuggestFeatures(ctx context.Context, input *progression.SuggestFeaturesInput) (*progression.SuggestFeaturesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snapshot, err := o.buildSnapshot(ctx, input.CharacterID, input.Pending)
	if err != nil {
		return nil, err
	}

	intent, _, err := o.intentFor(ctx, snapshot, input.Pending)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.RankFeatures(ctx, &engine.RankFeaturesInput{
		Snapshot:      snapshot,
		Candidates:    input.Candidates,
		Intent:        intent,
		IncludeFuture: input.IncludeFuture,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to rank features")
	}

	return &progression.SuggestFeaturesOutput{
		Suggestions: out.Ranked,
		Future:      out.Future,
		Intent:      intent,
	}, nil
}

// SuggestClasses ranks level-up class options for a character
func (o *Orchestrator) SuggestClasses(ctx context.Context, input *progression.SuggestClassesInput) (*progression.SuggestClassesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snapshot, err := o.buildSnapshot(ctx, input.CharacterID, input.Pending)
	if err != nil {
		return nil, err
	}

	intent, _, err := o.intentFor(ctx, snapshot, input.Pending)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.RankClasses(ctx, &engine.RankClassesInput{
		Snapshot:   snapshot,
		Candidates: input.Candidates,
		Intent:     intent,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to rank classes")
	}

	return &progression.SuggestClassesOutput{
		Suggestions: out.Ranked,
		Intent:      intent,
	}, nil
}

// AnalyzeBuildIntent computes (or recalls) the build-intent profile
func (o *Orchestrator) AnalyzeBuildIntent(ctx context.Context, input *progression.AnalyzeBuildIntentInput) (*progression.AnalyzeBuildIntentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snapshot, err := o.buildSnapshot(ctx, input.CharacterID, input.Pending)
	if err != nil {
		return nil, err
	}

	intent, cached, err := o.intentFor(ctx, snapshot, input.Pending)
	if err != nil {
		return nil, err
	}

	return &progression.AnalyzeBuildIntentOutput{
		Intent: intent,
		Cached: cached,
	}, nil
}

// ListActiveSynergies returns the synergy rules the character currently
// triggers, strongest first
func (o *Orchestrator) ListActiveSynergies(ctx context.Context, input *progression.ListActiveSynergiesInput) (*progression.ListActiveSynergiesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snapshot, err := o.buildSnapshot(ctx, input.CharacterID, input.Pending)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.FindActiveSynergies(ctx, &engine.FindActiveSynergiesInput{Snapshot: snapshot})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find synergies")
	}

	return &progression.ListActiveSynergiesOutput{Active: out.Active}, nil
}

// CheckPrerequisites evaluates one named feature or class against the
// character
func (o *Orchestrator) CheckPrerequisites(ctx context.Context, input *progression.CheckPrerequisitesInput) (*progression.CheckPrerequisitesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if (input.FeatureName == "") == (input.ClassID == "") {
		return nil, errors.InvalidArgument("exactly one of feature name or class ID must be set")
	}

	snapshot, err := o.buildSnapshot(ctx, input.CharacterID, input.Pending)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.CheckCandidate(ctx, &engine.CheckCandidateInput{
		Snapshot:    snapshot,
		FeatureName: input.FeatureName,
		ClassID:     input.ClassID,
	})
	if err != nil {
		return nil, err
	}

	return &progression.CheckPrerequisitesOutput{
		Satisfied:    out.Satisfied,
		UnmetReasons: out.UnmetReasons,
	}, nil
}

// StartSession begins a progression session for a character. Any cached
// intent profiles are dropped so the session starts from the stored
// document.
func (o *Orchestrator) StartSession(ctx context.Context, input *progression.StartSessionInput) (*progression.StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	// Verify the character exists before handing out a session
	if _, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID}); err != nil {
		return nil, err
	}

	if _, err := o.intentCache.Invalidate(ctx, intentcache.InvalidateInput{CharacterID: input.CharacterID}); err != nil {
		slog.Warn("failed to invalidate intent cache on session start",
			"character_id", input.CharacterID,
			"error", err)
	}

	return &progression.StartSessionOutput{
		SessionID:   o.idGenerator.Generate(),
		CharacterID: input.CharacterID,
	}, nil
}

// InvalidateIntent drops all cached intent profiles for a character
func (o *Orchestrator) InvalidateIntent(ctx context.Context, input *progression.InvalidateIntentInput) (*progression.InvalidateIntentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.intentCache.Invalidate(ctx, intentcache.InvalidateInput{CharacterID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to invalidate intent cache")
	}

	return &progression.InvalidateIntentOutput{Dropped: out.Dropped}, nil
}

// buildSnapshot loads the character document and folds in pending
// selections
func (o *Orchestrator) buildSnapshot(ctx context.Context, characterID string, pending *saga.PendingSelections) (*saga.CharacterSnapshot, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", characterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: characterID})
	if err != nil {
		return nil, err
	}

	return saga.NewCharacterSnapshot(out.Character, pending), nil
}

// intentFor returns the cached build intent for the snapshot's staging, or
// computes and caches it. Cache failures degrade to recomputation.
func (o *Orchestrator) intentFor(ctx context.Context, snapshot *saga.CharacterSnapshot, pending *saga.PendingSelections) (*saga.BuildIntent, bool, error) {
	hash := pendingHash(pending)

	cached, err := o.intentCache.Get(ctx, intentcache.GetInput{
		CharacterID: snapshot.CharacterID,
		PendingHash: hash,
	})
	if err == nil {
		return cached.Intent, true, nil
	}
	if !errors.IsNotFound(err) {
		slog.Warn("intent cache lookup failed",
			"character_id", snapshot.CharacterID,
			"error", err)
	}

	out, err := o.engine.AnalyzeBuildIntent(ctx, &engine.AnalyzeBuildIntentInput{Snapshot: snapshot})
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to analyze build intent")
	}

	if _, err := o.intentCache.Set(ctx, intentcache.SetInput{
		CharacterID: snapshot.CharacterID,
		PendingHash: hash,
		Intent:      out.Intent,
	}); err != nil {
		slog.Warn("failed to cache build intent",
			"character_id", snapshot.CharacterID,
			"error", err)
	}

	return out.Intent, false, nil
}

// pendingHash produces a stable key for a set of pending selections.
// Order within each selection list does not affect the hash.
func pendingHash(pending *saga.PendingSelections) string {
	if pending.IsEmpty() {
		return "none"
	}

	feats := append([]string(nil), pending.Feats...)
	sort.Strings(feats)

	talents := make([]string, 0, len(pending.Talents))
	for _, t := range pending.Talents {
		talents = append(talents, t.Name+"|"+t.Tree+"|"+t.Tradition)
	}
	sort.Strings(talents)

	skills := make([]string, 0, len(pending.Skills))
	for _, sk := range pending.Skills {
		skills = append(skills, strings.ToLower(sk))
	}
	sort.Strings(skills)

	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join(feats, "\x1f")))
	_, _ = h.Write([]byte{0x1e})
	_, _ = h.Write([]byte(strings.Join(talents, "\x1f")))
	_, _ = h.Write([]byte{0x1e})
	_, _ = h.Write([]byte(pending.ClassID))
	_, _ = h.Write([]byte{0x1e})
	_, _ = h.Write([]byte(strings.Join(skills, "\x1f")))

	return fmt.Sprintf("%016x", h.Sum64())
}
