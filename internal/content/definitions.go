// Package content supplies the read-only feature, class, and rule tables
// the progression engine evaluates against. Tables are loaded once (from
// yaml or the compiled-in defaults) and never mutated afterwards.
package content

import (
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// FeatureDefinition describes one acquirable feat or talent.
type FeatureDefinition struct {
	Name string
	Kind saga.FeatureKind
	// Tree is set for talents.
	Tree string
	// Prerequisites is the structured condition tree, when the source
	// data has one.
	Prerequisites *saga.PrerequisiteSet
	// LegacyPrereq carries the unstructured prerequisite text for
	// features that were never converted; the legacy normalizer parses
	// it at evaluation time.
	LegacyPrereq string
	// RestrictedSpecies marks a species-only feature.
	RestrictedSpecies string
	// BonusFeatClasses lists classes that grant this feature as a bonus
	// feat.
	BonusFeatClasses []string
	// MartialArtsStyle features are always recommended once legal.
	MartialArtsStyle bool
	// Themes tags the feature for class-theme alignment.
	Themes []string
}

// ClassDefinition describes one class.
type ClassDefinition struct {
	ID            string
	Name          string
	Category      saga.ClassCategory
	Themes        []string
	Prerequisites *saga.PrerequisiteSet
	LegacyPrereq  string
	BonusFeats    []string
}

// AbilitySignal is one ability-score signal in a prestige table.
type AbilitySignal struct {
	Ability string
	Min     int32
}

// PrestigeSignalTable declares the build signals pointing at one prestige
// class, each signal group with an integer weight.
type PrestigeSignalTable struct {
	ClassID string

	Feats      []string
	FeatWeight int

	Skills      []string
	SkillWeight int

	// Trees share TalentWeight with Talents.
	Talents      []string
	Trees        []string
	TalentWeight int

	Abilities     []AbilitySignal
	AbilityWeight int
}

// MaxScore is the score a character matching every declared signal earns.
func (t *PrestigeSignalTable) MaxScore() int {
	return len(t.Feats)*t.FeatWeight +
		len(t.Skills)*t.SkillWeight +
		(len(t.Talents)+len(t.Trees))*t.TalentWeight +
		len(t.Abilities)*t.AbilityWeight
}

// TreeAccessKind classifies how a talent tree is unlocked.
type TreeAccessKind string

// Tree access kinds
const (
	// TreeClassGranted trees are resolved by class tables elsewhere; the
	// access check always answers false for them.
	TreeClassGranted TreeAccessKind = "class_granted"
	// TreeGenericForce trees need Force Sensitivity.
	TreeGenericForce TreeAccessKind = "generic_force"
	// TreeTradition trees additionally need tradition membership
	// evidence.
	TreeTradition TreeAccessKind = "tradition"
)

// TreeAccessRule is the fixed access rule for one talent tree.
type TreeAccessRule struct {
	Tree      string
	Kind      TreeAccessKind
	Tradition string
}

// ThemeMaps carries the fixed signal-to-theme mappings the intent analyzer
// accumulates over.
type ThemeMaps struct {
	// Features maps a feature name directly to a theme.
	Features map[string]string
	// Keywords maps a lowercase substring of a feature name to a theme.
	Keywords map[string]string
	// Trees maps a talent tree to a theme.
	Trees map[string]string
	// Skills maps a trained skill to a theme.
	Skills map[string]string
	// Classes maps a class ID to a theme.
	Classes map[string]string
}

// SurveyMaps carries mentor-survey wiring: which theme each survey
// dimension feeds, and which candidate-name keywords each dimension
// endorses for ranking.
type SurveyMaps struct {
	Themes   map[string]string
	Keywords map[string][]string
}
