package saga

// Ability names used throughout condition tables and theme maps.
const (
	AbilityStrength     = "strength"
	AbilityDexterity    = "dexterity"
	AbilityConstitution = "constitution"
	AbilityIntelligence = "intelligence"
	AbilityWisdom       = "wisdom"
	AbilityCharisma     = "charisma"
)

// AbilityNames lists the six abilities in rulebook order.
var AbilityNames = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// FeatureKind distinguishes the two acquirable feature types.
type FeatureKind string

// Feature kinds
const (
	FeatureKindFeat   FeatureKind = "feat"
	FeatureKindTalent FeatureKind = "talent"
)

// ClassCategory buckets classes for ranking bias.
type ClassCategory string

// Class categories
const (
	ClassCategoryBase     ClassCategory = "base"
	ClassCategoryAdvanced ClassCategory = "advanced"
	ClassCategoryPrestige ClassCategory = "prestige"
)

// CombatStyle is the inferred fighting emphasis of a build.
type CombatStyle string

// Combat styles
const (
	CombatStyleForce  CombatStyle = "force"
	CombatStyleRanged CombatStyle = "ranged"
	CombatStyleMelee  CombatStyle = "melee"
	CombatStyleMixed  CombatStyle = "mixed"
)

// Theme names used by the build-intent analyzer. Content tables may add
// more; these are the ones the engine itself reasons about.
const (
	ThemeForce  = "force"
	ThemeRanged = "ranged"
	ThemeMelee  = "melee"
)

// ForceSensitivityFeat gates access to Force talent trees and powers.
const ForceSensitivityFeat = "Force Sensitivity"
