package sagarules

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/sagaforge/progression-api/internal/content"
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// Evaluator interprets prerequisite condition trees against a snapshot.
// It is pure: no method mutates the snapshot or the catalog.
type Evaluator struct {
	catalog *content.Catalog
}

// NewEvaluator creates a prerequisite evaluator over the given catalog.
func NewEvaluator(catalog *content.Catalog) *Evaluator {
	return &Evaluator{catalog: catalog}
}

// EvalResult is the outcome of evaluating one prerequisite set.
type EvalResult struct {
	Satisfied    bool
	UnmetReasons []string
}

// Evaluate checks a prerequisite set. candidateID excludes the candidate
// itself from tree-talent counting. A nil or empty set is satisfied.
func (e *Evaluator) Evaluate(s *saga.CharacterSnapshot, set *saga.PrerequisiteSet, candidateID string) EvalResult {
	if set == nil || len(set.Conditions) == 0 {
		return EvalResult{Satisfied: true}
	}

	if set.Mode == saga.CombineAny {
		for _, cond := range set.Conditions {
			if e.evalCondition(s, cond, candidateID) {
				return EvalResult{Satisfied: true}
			}
		}
		descs := make([]string, len(set.Conditions))
		for i, cond := range set.Conditions {
			descs[i] = cond.Describe()
		}
		return EvalResult{
			Satisfied:    false,
			UnmetReasons: []string{"requires one of: " + strings.Join(descs, ", ")},
		}
	}

	result := EvalResult{Satisfied: true}
	for _, cond := range set.Conditions {
		if !e.evalCondition(s, cond, candidateID) {
			result.Satisfied = false
			result.UnmetReasons = append(result.UnmetReasons, "requires "+cond.Describe())
		}
	}
	return result
}

// EvaluateFeature checks a feature definition's prerequisites, using the
// structured tree when present and falling back to the legacy text path.
// Both representations flow through the same condition evaluator.
func (e *Evaluator) EvaluateFeature(s *saga.CharacterSnapshot, def *content.FeatureDefinition) EvalResult {
	set := def.Prerequisites
	if set == nil && def.LegacyPrereq != "" {
		set = ParseLegacy(def.LegacyPrereq).Set
	}
	return e.Evaluate(s, set, def.Name)
}

// EvaluateClass checks a class definition's prerequisites.
func (e *Evaluator) EvaluateClass(s *saga.CharacterSnapshot, def *content.ClassDefinition) EvalResult {
	set := def.Prerequisites
	if set == nil && def.LegacyPrereq != "" {
		set = ParseLegacy(def.LegacyPrereq).Set
	}
	return e.Evaluate(s, set, def.ID)
}

// CanAccessTalentTree applies the fixed per-tree access rules. Trees with
// no rule entry are unconstrained.
func (e *Evaluator) CanAccessTalentTree(s *saga.CharacterSnapshot, tree string) bool {
	rule, ok := e.catalog.TreeAccess(tree)
	if !ok {
		return true
	}

	switch rule.Kind {
	case content.TreeClassGranted:
		// Class tables resolve these; the access check never grants
		// them on its own.
		return false
	case content.TreeGenericForce:
		return s.Feats[saga.ForceSensitivityFeat]
	case content.TreeTradition:
		if !s.Feats[saga.ForceSensitivityFeat] {
			return false
		}
		return e.hasTraditionEvidence(s, rule.Tradition)
	default:
		return true
	}
}

// hasTraditionEvidence looks for a feature or talent whose name or tagged
// tradition matches the required tradition.
func (e *Evaluator) hasTraditionEvidence(s *saga.CharacterSnapshot, tradition string) bool {
	needle := strings.ToLower(tradition)
	for name := range s.OwnedPrereqNames {
		if strings.Contains(strings.ToLower(name), needle) {
			return true
		}
	}
	for _, tagged := range s.TalentTraditions {
		if strings.EqualFold(tagged, tradition) {
			return true
		}
	}
	return false
}

// evalCondition evaluates one condition, isolating panics: a broken
// condition answers false instead of aborting the batch.
func (e *Evaluator) evalCondition(s *saga.CharacterSnapshot, cond saga.Condition, candidateID string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("condition evaluation panicked",
				"condition", fmt.Sprintf("%T", cond),
				"panic", r)
			ok = false
		}
	}()
	return e.check(s, cond, candidateID)
}

func (e *Evaluator) check(s *saga.CharacterSnapshot, cond saga.Condition, candidateID string) bool {
	switch c := cond.(type) {
	case saga.FeatureOwned:
		return s.HasOwnedFeature(c.Feature)
	case saga.TreeTalentCount:
		return s.TalentCountInTree(c.Tree, candidateID) >= c.Min
	case saga.AbilityMinimum:
		return s.Abilities.Get(c.Ability) >= c.Min
	case saga.SkillTrained:
		return s.TrainedSkills[strings.ToLower(c.Skill)]
	case saga.AttackBonusMinimum:
		return s.BaseAttackBonus >= c.Min
	case saga.LevelMinimum:
		return s.Level >= c.Min
	case saga.TraitComparison:
		return compare(resolveValue(s, c.Left), c.Op, resolveValue(s, c.Right))
	case saga.SpeciesMatch:
		return strings.EqualFold(s.Species, c.Species)
	case saga.SpeciesTrait:
		return s.SpeciesTraits[c.Trait]
	case saga.DroidRequirement:
		switch c.State {
		case saga.DroidRequired:
			return s.Droid
		case saga.DroidExcluded:
			return !s.Droid
		default:
			return s.Droid && s.DroidDegree == c.Degree
		}
	case saga.Proficiency:
		return e.checkProficiency(s, c)
	case saga.ClassLevelMinimum:
		return s.ClassLevelOf(c.Class) >= c.Min
	case saga.ForcePossession:
		return checkForcePossession(s, c)
	case saga.TextPattern:
		return matchPattern(s, c.Pattern)
	case saga.AnyOf:
		for _, sub := range c.Conditions {
			if e.evalCondition(s, sub, candidateID) {
				return true
			}
		}
		return false
	default:
		// Unknown condition kinds are content bugs, not blockers.
		slog.Warn("unknown condition kind", "condition", fmt.Sprintf("%T", cond))
		return true
	}
}

func (e *Evaluator) checkProficiency(s *saga.CharacterSnapshot, c saga.Proficiency) bool {
	switch c.Rank {
	case saga.RankFocus:
		return s.WeaponFocuses[c.Group]
	case saga.RankSpecialization:
		return s.WeaponSpecializations[c.Group]
	default:
		if c.Category == saga.ProficiencyArmor {
			return s.ArmorProficiencies[c.Group]
		}
		return s.WeaponProficiencies[c.Group]
	}
}

// checkForcePossession matches Force items by name, descriptor category
// (substring of the item name), or count.
func checkForcePossession(s *saga.CharacterSnapshot, c saga.ForcePossession) bool {
	var owned map[string]bool
	switch c.Kind {
	case saga.ForceTechnique:
		owned = s.ForceTechniques
	case saga.ForceSecret:
		owned = s.ForceSecrets
	default:
		owned = s.ForcePowers
	}

	if c.Name != "" {
		return owned[c.Name]
	}
	if c.Category != "" {
		needle := strings.ToLower(c.Category)
		count := 0
		for name := range owned {
			if strings.Contains(strings.ToLower(name), needle) {
				count++
			}
		}
		return count >= max(c.Min, 1)
	}
	return len(owned) >= max(c.Min, 1)
}

// matchPattern matches a pattern against the owned prerequisite names,
// regex first, plain substring when the pattern does not compile.
func matchPattern(s *saga.CharacterSnapshot, pattern string) bool {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		needle := strings.ToLower(pattern)
		for name := range s.OwnedPrereqNames {
			if strings.Contains(strings.ToLower(name), needle) {
				return true
			}
		}
		return false
	}
	for name := range s.OwnedPrereqNames {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func resolveValue(s *saga.CharacterSnapshot, v saga.ValueRef) int32 {
	switch v.Kind {
	case saga.ValueDarkSideScore:
		return s.DarkSideScore
	case saga.ValueAbility:
		return s.Abilities.Get(v.Ability)
	default:
		return v.Literal
	}
}

func compare(left int32, op saga.CompareOp, right int32) bool {
	switch op {
	case saga.OpEqual:
		return left == right
	case saga.OpGreater:
		return left > right
	case saga.OpLess:
		return left < right
	case saga.OpGreaterEqual:
		return left >= right
	case saga.OpLessEqual:
		return left <= right
	default:
		return false
	}
}
