package sagarules

import (
	"log/slog"

	"github.com/sagaforge/progression-api/internal/content"
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// neutralScore is the answer for missing data or a broken sub-scorer.
const neutralScore = 0.5

// Feature coherence weights: ability / tree clustering / combat style /
// class fit.
const (
	featureWeightAbility = 0.30
	featureWeightTree    = 0.25
	featureWeightStyle   = 0.25
	featureWeightClass   = 0.20
)

// Class coherence weights add a prestige-affinity sub-score.
const (
	classWeightAbility  = 0.30
	classWeightTree     = 0.20
	classWeightStyle    = 0.20
	classWeightClass    = 0.15
	classWeightAffinity = 0.15
)

// Coherence computes continuous [0,1] build-fit scores. They feed UI
// emphasis alongside the discrete tier and never alter it.
type Coherence struct {
	catalog *content.Catalog
}

// NewCoherence creates a coherence scorer over the given catalog.
func NewCoherence(catalog *content.Catalog) *Coherence {
	return &Coherence{catalog: catalog}
}

// ScoreFeature combines the four feature sub-scores by fixed weights.
func (c *Coherence) ScoreFeature(def *content.FeatureDefinition, s *saga.CharacterSnapshot, intent *saga.BuildIntent) float64 {
	if def == nil || s == nil {
		return neutralScore
	}
	return featureWeightAbility*c.guard("ability", func() float64 { return abilityFit(def.Prerequisites, s) }) +
		featureWeightTree*c.guard("tree", func() float64 { return treeClustering(def.Tree, s) }) +
		featureWeightStyle*c.guard("style", func() float64 { return styleConsistency(def.Themes, intent) }) +
		featureWeightClass*c.guard("class", func() float64 { return c.classFit(def.Themes, s) })
}

// ScoreClass combines the five class sub-scores by fixed weights.
func (c *Coherence) ScoreClass(def *content.ClassDefinition, s *saga.CharacterSnapshot, intent *saga.BuildIntent) float64 {
	if def == nil || s == nil {
		return neutralScore
	}
	return classWeightAbility*c.guard("ability", func() float64 { return abilityFit(def.Prerequisites, s) }) +
		classWeightTree*c.guard("tree", func() float64 { return classTreeClustering(def, s) }) +
		classWeightStyle*c.guard("style", func() float64 { return styleConsistency(def.Themes, intent) }) +
		classWeightClass*c.guard("class", func() float64 { return c.classFit(def.Themes, s) }) +
		classWeightAffinity*c.guard("affinity", func() float64 { return affinityFit(def.ID, intent) })
}

// guard isolates one sub-scorer: a panic answers neutral.
func (c *Coherence) guard(name string, fn func() float64) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("coherence sub-score panicked", "sub_score", name, "panic", r)
			score = neutralScore
		}
	}()
	score = fn()
	if score < 0 || score > 1 {
		return neutralScore
	}
	return score
}

// abilityFit checks how the candidate's ability requirement lines up with
// the character's strongest abilities. No requirement is neutral.
func abilityFit(prereqs *saga.PrerequisiteSet, s *saga.CharacterSnapshot) float64 {
	ability, ok := firstAbilityRequirement(prereqs)
	if !ok {
		return neutralScore
	}

	first, second := topTwoAbilities(s.Abilities)
	switch ability.Ability {
	case first:
		return 1.0
	case second:
		return 0.75
	}
	if s.Abilities.Get(ability.Ability) >= 12 {
		return 0.6
	}
	return neutralScore
}

// treeClustering rewards talents in trees the character already invests
// in. Non-talents and tree-less candidates are neutral.
func treeClustering(tree string, s *saga.CharacterSnapshot) float64 {
	if tree == "" {
		return neutralScore
	}
	owned := len(s.TalentsByTree[tree])
	score := 0.4 + 0.2*float64(owned)
	if score > 1 {
		return 1
	}
	return score
}

// classTreeClustering measures how many of the character's talents sit in
// trees at all; scattered loose talents score lower.
func classTreeClustering(def *content.ClassDefinition, s *saga.CharacterSnapshot) float64 {
	if len(s.Talents) == 0 {
		return neutralScore
	}
	inTrees := 0
	for _, talents := range s.TalentsByTree {
		inTrees += len(talents)
	}
	return float64(inTrees) / float64(len(s.Talents))
}

// styleConsistency checks the candidate themes against the inferred
// combat style.
func styleConsistency(themes []string, intent *saga.BuildIntent) float64 {
	if intent == nil || len(themes) == 0 {
		return neutralScore
	}
	if intent.CombatStyle == saga.CombatStyleMixed {
		return neutralScore
	}
	for _, theme := range themes {
		if theme == string(intent.CombatStyle) {
			return 0.9
		}
	}
	return 0.3
}

// classFit checks theme overlap with the character's owned classes.
func (c *Coherence) classFit(themes []string, s *saga.CharacterSnapshot) float64 {
	if len(themes) == 0 || len(s.Classes) == 0 {
		return neutralScore
	}
	for classID := range s.Classes {
		def, ok := c.catalog.Class(classID)
		if !ok {
			continue
		}
		for _, classTheme := range def.Themes {
			for _, theme := range themes {
				if theme == classTheme {
					return 0.85
				}
			}
		}
	}
	return 0.35
}

// affinityFit lifts classes the build already points at.
func affinityFit(classID string, intent *saga.BuildIntent) float64 {
	if intent == nil {
		return neutralScore
	}
	for _, affinity := range intent.PrestigeAffinities {
		if affinity.ClassID == classID {
			return 0.5 + affinity.Confidence/2
		}
	}
	return neutralScore
}

// firstAbilityRequirement finds the first ability-minimum condition in a
// prerequisite tree, depth first.
func firstAbilityRequirement(set *saga.PrerequisiteSet) (saga.AbilityMinimum, bool) {
	if set == nil {
		return saga.AbilityMinimum{}, false
	}
	return findAbility(set.Conditions)
}

func findAbility(conditions []saga.Condition) (saga.AbilityMinimum, bool) {
	for _, cond := range conditions {
		switch c := cond.(type) {
		case saga.AbilityMinimum:
			return c, true
		case saga.AnyOf:
			if found, ok := findAbility(c.Conditions); ok {
				return found, ok
			}
		}
	}
	return saga.AbilityMinimum{}, false
}

// topTwoAbilities returns the two highest-scoring ability names in
// rulebook order on ties.
func topTwoAbilities(scores saga.AbilityScores) (string, string) {
	first, second := "", ""
	var firstScore, secondScore int32 = -1, -1
	for _, name := range saga.AbilityNames {
		score := scores.Get(name)
		switch {
		case score > firstScore:
			second, secondScore = first, firstScore
			first, firstScore = name, score
		case score > secondScore:
			second, secondScore = name, score
		}
	}
	return first, second
}
