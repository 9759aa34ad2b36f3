package sagarules

import (
	"math"
	"sort"
	"strings"

	"github.com/sagaforge/progression-api/internal/content"
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// Species-affinity decay and boost parameters.
const (
	speciesDecayHalvingLevels = 3.0
	speciesSkillBoost         = 0.5
	speciesTierCap            = 5.0
)

// Class category bias, added to the tier before sort comparison only.
const (
	biasPrestige = 3.0
	biasAdvanced = 1.0
)

// Future-availability estimation parameters.
const (
	babPerLevel      = 0.75
	levelsPerAbility = 4.0
	futureThemeBoost = 1.2
)

// Ranker assigns each legal candidate exactly one tier from the ladder.
// Rules are checked top to bottom; the first match wins and signals are
// never combined.
type Ranker struct {
	catalog   *content.Catalog
	evaluator *Evaluator
	detector  *Detector
	analyzer  *IntentAnalyzer
	coherence *Coherence
}

// NewRanker wires the ranker over its components.
func NewRanker(catalog *content.Catalog) *Ranker {
	return &Ranker{
		catalog:   catalog,
		evaluator: NewEvaluator(catalog),
		detector:  NewDetector(catalog),
		analyzer:  NewIntentAnalyzer(catalog),
		coherence: NewCoherence(catalog),
	}
}

// RankFeatures ranks feature candidates. Illegal candidates are skipped
// unless includeFuture is set, in which case they come back separately on
// the reduced future scale.
func (r *Ranker) RankFeatures(s *saga.CharacterSnapshot, candidates []string, intent *saga.BuildIntent, includeFuture bool) (ranked, future []saga.RankedCandidate) {
	if intent == nil {
		intent = r.analyzer.Analyze(s)
	}
	if len(candidates) == 0 {
		candidates = r.catalog.FeatureNames()
	}

	active := r.detector.Active(s)

	for _, name := range candidates {
		def, ok := r.catalog.Feature(name)
		if !ok {
			// Unknown candidates carry no constraint and no signal.
			ranked = append(ranked, saga.RankedCandidate{
				Name: name,
				Suggestion: saga.Suggestion{
					Tier:       saga.TierGeneral,
					Reason:     saga.ReasonGeneral,
					Confidence: saga.ConfidenceForTier(saga.TierGeneral),
				},
				Coherence: neutralScore,
			})
			continue
		}

		if s.HasOwnedFeature(def.Name) {
			continue
		}

		result := r.evaluator.EvaluateFeature(s, def)
		if !result.Satisfied {
			if includeFuture {
				if est, ok := r.estimateFuture(s, def); ok {
					future = append(future, est)
				}
			}
			continue
		}

		suggestion := r.suggestFeature(s, def, intent, active)
		ranked = append(ranked, saga.RankedCandidate{
			Name:       def.Name,
			Suggestion: suggestion,
			Coherence:  r.coherence.ScoreFeature(def, s, intent),
		})
	}

	sortRanked(ranked)
	sortRanked(future)
	return ranked, future
}

// RankClasses ranks class candidates with the category bias applied
// before comparison.
func (r *Ranker) RankClasses(s *saga.CharacterSnapshot, candidates []string, intent *saga.BuildIntent) []saga.RankedClass {
	if intent == nil {
		intent = r.analyzer.Analyze(s)
	}
	if len(candidates) == 0 {
		candidates = r.catalog.ClassIDs()
	}

	var ranked []saga.RankedClass
	for _, classID := range candidates {
		def, ok := r.catalog.Class(classID)
		if !ok {
			continue
		}

		result := r.evaluator.EvaluateClass(s, def)
		if !result.Satisfied {
			continue
		}

		suggestion := r.suggestClass(s, def, intent)
		ranked = append(ranked, saga.RankedClass{
			ClassID:    def.ID,
			Category:   def.Category,
			Suggestion: suggestion,
			SortTier:   suggestion.Tier + categoryBias(def.Category),
			Coherence:  r.coherence.ScoreClass(def, s, intent),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].SortTier != ranked[j].SortTier {
			return ranked[i].SortTier > ranked[j].SortTier
		}
		// Exact ties put prestige classes first.
		iPrestige := ranked[i].Category == saga.ClassCategoryPrestige
		jPrestige := ranked[j].Category == saga.ClassCategoryPrestige
		if iPrestige != jPrestige {
			return iPrestige
		}
		return displayName(r.catalog, ranked[i].ClassID) < displayName(r.catalog, ranked[j].ClassID)
	})
	return ranked
}

// suggestFeature walks the tier ladder for one legal feature candidate.
func (r *Ranker) suggestFeature(s *saga.CharacterSnapshot, def *content.FeatureDefinition, intent *saga.BuildIntent, active []*saga.SynergyRule) saga.Suggestion {
	// Tier 6: priority missing prerequisite for a prestige target.
	for _, prereq := range intent.PriorityPrereqs {
		if prereq.Kind == saga.SignalFeat && prereq.Name == def.Name {
			return suggestion(saga.TierPrestigePath, saga.ReasonPrestigePath,
				"prestige:"+displayName(r.catalog, prereq.ClassID))
		}
	}

	// Tier 5.5: prerequisite of a wishlist item.
	if item, ok := r.wishlistNeeding(s, def.Name); ok {
		return suggestion(saga.TierWishlistPrereq, saga.ReasonWishlistPrereq, "wishlist:"+item)
	}

	// Tier 5: active synergy, or an always-recommend style feature.
	for _, rule := range active {
		if _, ok := rule.SuggestsItem(def.Name, def.Kind); ok {
			return suggestion(saga.TierMetaSynergy, saga.ReasonMetaSynergy, "synergy:"+rule.ID)
		}
	}
	if def.MartialArtsStyle {
		return suggestion(saga.TierMetaSynergy, saga.ReasonMetaSynergy, "style:"+def.Name)
	}

	// Tier 4.5: species affinity, decaying geometrically with level.
	if def.RestrictedSpecies != "" && strings.EqualFold(def.RestrictedSpecies, s.Species) {
		tier := saga.TierSpeciesAffinity * math.Pow(0.5, float64(s.Level)/speciesDecayHalvingLevels)
		if skill, ok := r.requiredTrainedSkill(def, s); ok && skill != "" {
			tier += speciesSkillBoost
		}
		if tier > speciesTierCap {
			tier = speciesTierCap
		}
		sug := suggestion(tier, saga.ReasonSpeciesAffinity, "species:"+def.RestrictedSpecies)
		return sug
	}

	// Tier 4: prerequisite chain continues from an owned feature.
	if owned, ok := r.ownedPrereqFeature(s, def.Prerequisites, def.LegacyPrereq); ok {
		return suggestion(saga.TierChainContinuation, saga.ReasonChainContinuation, "chain:"+owned)
	}

	// Tier 3.5: name matches a positive survey dimension's keywords.
	if dimension, ok := r.surveyKeywordMatch(s, def.Name); ok {
		return suggestion(saga.TierSurveyAlignment, saga.ReasonSurveyAlignment, "survey:"+dimension)
	}

	// Tier 3: requires a skill the character already trained.
	if skill, ok := r.requiredTrainedSkill(def, s); ok {
		return suggestion(saga.TierSkillMatch, saga.ReasonSkillMatch, "skill:"+skill)
	}

	// Tier 2: ability requirement equals the single highest ability.
	if ability, ok := abilityRequirementOf(def.Prerequisites, def.LegacyPrereq); ok && ability == s.HighestAbility {
		return suggestion(saga.TierAbilityPrereqMatch, saga.ReasonAbilityPrereqMatch, "ability:"+ability)
	}

	// Tier 1: class bonus grant or thematic alignment.
	for _, classID := range r.bonusClassesOf(def) {
		if s.Classes[classID] > 0 {
			return suggestion(saga.TierClassTheme, saga.ReasonClassTheme, "class:"+classID)
		}
	}
	if theme, ok := r.themeAlignment(s, def.Themes, intent); ok {
		return suggestion(saga.TierClassTheme, saga.ReasonClassTheme, "theme:"+theme)
	}

	return suggestion(saga.TierGeneral, saga.ReasonGeneral, "")
}

// suggestClass walks the shared ladder for one legal class candidate.
func (r *Ranker) suggestClass(s *saga.CharacterSnapshot, def *content.ClassDefinition, intent *saga.BuildIntent) saga.Suggestion {
	// Tier 6: the class is itself a build-intent prestige target.
	for _, affinity := range intent.PrestigeAffinities {
		if affinity.ClassID == def.ID {
			return suggestion(saga.TierPrestigePath, saga.ReasonPrestigePath,
				"prestige:"+displayName(r.catalog, def.ID))
		}
	}

	// Tier 5.5: player wishlisted the class directly.
	for _, item := range s.Wishlist {
		if item == def.ID || strings.EqualFold(item, def.Name) {
			return suggestion(saga.TierWishlistPrereq, saga.ReasonWishlistPrereq, "wishlist:"+item)
		}
	}

	// Tier 4: class prerequisites name an owned feature.
	if owned, ok := r.ownedPrereqFeature(s, def.Prerequisites, def.LegacyPrereq); ok {
		return suggestion(saga.TierChainContinuation, saga.ReasonChainContinuation, "chain:"+owned)
	}

	// Tier 3.5: survey keyword match on the class name.
	if dimension, ok := r.surveyKeywordMatch(s, def.Name); ok {
		return suggestion(saga.TierSurveyAlignment, saga.ReasonSurveyAlignment, "survey:"+dimension)
	}

	// Tier 3: requires a trained skill the character has.
	if skill, ok := requiredTrainedSkillIn(def.Prerequisites, def.LegacyPrereq, s); ok {
		return suggestion(saga.TierSkillMatch, saga.ReasonSkillMatch, "skill:"+skill)
	}

	// Tier 2: ability requirement equals the highest ability.
	if ability, ok := abilityRequirementOf(def.Prerequisites, def.LegacyPrereq); ok && ability == s.HighestAbility {
		return suggestion(saga.TierAbilityPrereqMatch, saga.ReasonAbilityPrereqMatch, "ability:"+ability)
	}

	// Tier 1: thematic alignment with the build.
	if theme, ok := r.themeAlignment(s, def.Themes, intent); ok {
		return suggestion(saga.TierClassTheme, saga.ReasonClassTheme, "theme:"+theme)
	}

	return suggestion(saga.TierGeneral, saga.ReasonGeneral, "")
}

// EstimateAvailability maps an illegal candidate's distance onto the
// reduced future scale.
func (r *Ranker) EstimateAvailability(s *saga.CharacterSnapshot, candidate string) (levelsAway int32, tier float64, qualifies bool) {
	def, ok := r.catalog.Feature(candidate)
	if !ok {
		return 0, 0, true
	}
	result := r.evaluator.EvaluateFeature(s, def)
	if result.Satisfied {
		return 0, 0, true
	}
	est, ok := r.estimateFuture(s, def)
	if !ok {
		return 0, 0, false
	}
	return levelsFromTier(est.Suggestion.Tier, s, def), est.Suggestion.Tier, false
}

// estimateFuture computes the reduced-scale suggestion for an illegal
// candidate.
func (r *Ranker) estimateFuture(s *saga.CharacterSnapshot, def *content.FeatureDefinition) (saga.RankedCandidate, bool) {
	levels, ok := r.levelsToQualify(s, def)
	if !ok {
		return saga.RankedCandidate{}, false
	}

	var tier float64
	switch {
	case levels <= 1:
		tier = 0.6
	case levels <= 2:
		tier = 0.4
	case levels <= 5:
		tier = 0.2
	default:
		tier = 0.05
	}

	if r.matchesOwnedClassTheme(s, def.Themes) {
		tier *= futureThemeBoost
	}

	return saga.RankedCandidate{
		Name: def.Name,
		Suggestion: saga.Suggestion{
			Tier:       tier,
			Reason:     saga.ReasonFutureOption,
			SourceID:   "",
			Confidence: tier,
		},
		Coherence: neutralScore,
	}, true
}

// levelsToQualify estimates levels until each unmet condition resolves
// and takes the minimum estimate across them.
func (r *Ranker) levelsToQualify(s *saga.CharacterSnapshot, def *content.FeatureDefinition) (int32, bool) {
	set := def.Prerequisites
	if set == nil && def.LegacyPrereq != "" {
		set = ParseLegacy(def.LegacyPrereq).Set
	}
	if set == nil {
		return 0, false
	}

	var minLevels int32 = -1
	for _, cond := range set.Conditions {
		if r.evaluator.evalCondition(s, cond, def.Name) {
			continue
		}
		levels := estimateCondition(s, cond)
		if minLevels < 0 || levels < minLevels {
			minLevels = levels
		}
	}
	if minLevels < 0 {
		return 0, false
	}
	return minLevels, true
}

// estimateCondition converts one unmet condition into a levels estimate:
// attack-bonus gap at 0.75 per level, ability gaps at 4 levels per point,
// level gaps directly, anything else in 1 level.
func estimateCondition(s *saga.CharacterSnapshot, cond saga.Condition) int32 {
	switch c := cond.(type) {
	case saga.AttackBonusMinimum:
		gap := float64(c.Min - s.BaseAttackBonus)
		return int32(math.Ceil(gap / babPerLevel))
	case saga.AbilityMinimum:
		gap := c.Min - s.Abilities.Get(c.Ability)
		return gap * int32(levelsPerAbility)
	case saga.LevelMinimum:
		return c.Min - s.Level
	default:
		return 1
	}
}

func levelsFromTier(tier float64, s *saga.CharacterSnapshot, def *content.FeatureDefinition) int32 {
	// Recover the bucket edge for reporting; callers only need the
	// coarse distance.
	switch {
	case tier >= 0.6:
		return 1
	case tier >= 0.4:
		return 2
	case tier >= 0.2:
		return 5
	default:
		return 6
	}
}

// wishlistNeeding reports the first wishlist item whose prerequisites
// name the candidate.
func (r *Ranker) wishlistNeeding(s *saga.CharacterSnapshot, candidate string) (string, bool) {
	for _, item := range s.Wishlist {
		var set *saga.PrerequisiteSet
		var legacy string
		if def, ok := r.catalog.Feature(item); ok {
			set, legacy = def.Prerequisites, def.LegacyPrereq
		} else if cl, ok := r.catalog.Class(item); ok {
			set, legacy = cl.Prerequisites, cl.LegacyPrereq
		} else {
			continue
		}
		for _, name := range prereqFeatureNames(set, legacy) {
			if name == candidate {
				return item, true
			}
		}
	}
	return "", false
}

// ownedPrereqFeature reports the first prerequisite feature the character
// already owns, in condition order.
func (r *Ranker) ownedPrereqFeature(s *saga.CharacterSnapshot, set *saga.PrerequisiteSet, legacy string) (string, bool) {
	for _, name := range prereqFeatureNames(set, legacy) {
		if s.HasOwnedFeature(name) {
			return name, true
		}
	}
	return "", false
}

// surveyKeywordMatch checks the candidate name against keywords of the
// positively weighted survey dimensions.
func (r *Ranker) surveyKeywordMatch(s *saga.CharacterSnapshot, name string) (string, bool) {
	if len(s.SurveyBias) == 0 {
		return "", false
	}
	lower := strings.ToLower(name)
	keywords := r.catalog.Survey().Keywords
	for _, dimension := range sortedKeysFloat(s.SurveyBias) {
		if s.SurveyBias[dimension] <= 0 {
			continue
		}
		for _, keyword := range keywords[dimension] {
			if strings.Contains(lower, keyword) {
				return dimension, true
			}
		}
	}
	return "", false
}

// requiredTrainedSkill reports the first skill requirement the character
// already satisfies by training.
func (r *Ranker) requiredTrainedSkill(def *content.FeatureDefinition, s *saga.CharacterSnapshot) (string, bool) {
	return requiredTrainedSkillIn(def.Prerequisites, def.LegacyPrereq, s)
}

func requiredTrainedSkillIn(set *saga.PrerequisiteSet, legacy string, s *saga.CharacterSnapshot) (string, bool) {
	if set == nil && legacy != "" {
		set = ParseLegacy(legacy).Set
	}
	if set == nil {
		return "", false
	}
	for _, skill := range skillRequirements(set.Conditions) {
		if s.TrainedSkills[skill] {
			return skill, true
		}
	}
	return "", false
}

// bonusClassesOf lists classes granting the feature as a bonus feat, from
// both directions of the content tables.
func (r *Ranker) bonusClassesOf(def *content.FeatureDefinition) []string {
	classes := append([]string(nil), def.BonusFeatClasses...)
	for _, classID := range r.catalog.ClassIDs() {
		cl, _ := r.catalog.Class(classID)
		for _, feat := range cl.BonusFeats {
			if feat == def.Name {
				classes = append(classes, classID)
			}
		}
	}
	return classes
}

// themeAlignment reports a theme shared with an owned class or with the
// build's primary themes.
func (r *Ranker) themeAlignment(s *saga.CharacterSnapshot, themes []string, intent *saga.BuildIntent) (string, bool) {
	if len(themes) == 0 {
		return "", false
	}
	for _, classID := range sortedKeysInt32(s.Classes) {
		cl, ok := r.catalog.Class(classID)
		if !ok {
			continue
		}
		for _, classTheme := range cl.Themes {
			for _, theme := range themes {
				if theme == classTheme {
					return theme, true
				}
			}
		}
	}
	for _, primary := range intent.PrimaryThemes {
		for _, theme := range themes {
			if theme == primary {
				return theme, true
			}
		}
	}
	return "", false
}

func (r *Ranker) matchesOwnedClassTheme(s *saga.CharacterSnapshot, themes []string) bool {
	_, ok := r.themeAlignment(s, themes, &saga.BuildIntent{})
	return ok
}

// prereqFeatureNames collects feature names from a structured tree or,
// failing that, the legacy text.
func prereqFeatureNames(set *saga.PrerequisiteSet, legacy string) []string {
	if set == nil && legacy != "" {
		set = ParseLegacy(legacy).Set
	}
	if set == nil {
		return nil
	}
	return featureNames(set.Conditions)
}

func featureNames(conditions []saga.Condition) []string {
	var names []string
	for _, cond := range conditions {
		switch c := cond.(type) {
		case saga.FeatureOwned:
			names = append(names, c.Feature)
		case saga.AnyOf:
			names = append(names, featureNames(c.Conditions)...)
		}
	}
	return names
}

func skillRequirements(conditions []saga.Condition) []string {
	var skills []string
	for _, cond := range conditions {
		switch c := cond.(type) {
		case saga.SkillTrained:
			skills = append(skills, strings.ToLower(c.Skill))
		case saga.AnyOf:
			skills = append(skills, skillRequirements(c.Conditions)...)
		}
	}
	return skills
}

// abilityRequirementOf returns the ability name of the first ability
// requirement, if any.
func abilityRequirementOf(set *saga.PrerequisiteSet, legacy string) (string, bool) {
	if set == nil && legacy != "" {
		set = ParseLegacy(legacy).Set
	}
	if set == nil {
		return "", false
	}
	req, ok := firstAbilityRequirement(set)
	if !ok {
		return "", false
	}
	return req.Ability, true
}

func suggestion(tier float64, reason saga.ReasonCode, sourceID string) saga.Suggestion {
	return saga.Suggestion{
		Tier:       tier,
		Reason:     reason,
		SourceID:   sourceID,
		Confidence: saga.ConfidenceForTier(tier),
	}
}

func categoryBias(category saga.ClassCategory) float64 {
	switch category {
	case saga.ClassCategoryPrestige:
		return biasPrestige
	case saga.ClassCategoryAdvanced:
		return biasAdvanced
	default:
		return 0
	}
}

func displayName(catalog *content.Catalog, classID string) string {
	if def, ok := catalog.Class(classID); ok {
		return def.Name
	}
	return classID
}

// sortRanked orders by tier descending, then display name ascending.
func sortRanked(ranked []saga.RankedCandidate) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Suggestion.Tier != ranked[j].Suggestion.Tier {
			return ranked[i].Suggestion.Tier > ranked[j].Suggestion.Tier
		}
		return ranked[i].Name < ranked[j].Name
	})
}
