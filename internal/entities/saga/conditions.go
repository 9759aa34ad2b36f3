package saga

import (
	"fmt"
	"strings"
)

// Condition is one node of a prerequisite tree. It is a closed sum type:
// every condition kind is a struct in this file, and the evaluator
// type-switches over them exhaustively.
type Condition interface {
	// Describe returns the short requirement phrase used in unmet
	// reasons ("Strength 13", "trained in Stealth", ...).
	Describe() string

	condition()
}

// CombineMode selects how a PrerequisiteSet combines its conditions.
type CombineMode string

// Combine modes
const (
	CombineAll CombineMode = "all"
	CombineAny CombineMode = "any"
)

// PrerequisiteSet is a list of conditions plus a combinator.
type PrerequisiteSet struct {
	Mode       CombineMode
	Conditions []Condition
}

// RequireAll builds an AND-mode prerequisite set.
func RequireAll(conditions ...Condition) *PrerequisiteSet {
	return &PrerequisiteSet{Mode: CombineAll, Conditions: conditions}
}

// RequireAny builds an OR-mode prerequisite set.
func RequireAny(conditions ...Condition) *PrerequisiteSet {
	return &PrerequisiteSet{Mode: CombineAny, Conditions: conditions}
}

// CompareOp is a comparison operator for trait comparisons.
type CompareOp string

// Comparison operators
const (
	OpEqual        CompareOp = "eq"
	OpGreater      CompareOp = "gt"
	OpLess         CompareOp = "lt"
	OpGreaterEqual CompareOp = "ge"
	OpLessEqual    CompareOp = "le"
)

// ValueKind identifies the source of a compared value.
type ValueKind string

// Value kinds
const (
	ValueDarkSideScore ValueKind = "dark_side_score"
	ValueAbility       ValueKind = "ability"
	ValueLiteral       ValueKind = "literal"
)

// ValueRef names a derived numeric value for dynamic comparisons.
type ValueRef struct {
	Kind    ValueKind
	Ability string
	Literal int32
}

func (v ValueRef) describe() string {
	switch v.Kind {
	case ValueDarkSideScore:
		return "Dark Side Score"
	case ValueAbility:
		return capitalize(v.Ability)
	default:
		return fmt.Sprintf("%d", v.Literal)
	}
}

// DroidState constrains a character's droid classification.
type DroidState string

// Droid states
const (
	DroidRequired DroidState = "droid"
	DroidExcluded DroidState = "non_droid"
	DroidDegreeIs DroidState = "degree"
)

// ProficiencyCategory distinguishes weapon from armor proficiency chains.
type ProficiencyCategory string

// Proficiency categories
const (
	ProficiencyWeapon ProficiencyCategory = "weapon"
	ProficiencyArmor  ProficiencyCategory = "armor"
)

// ProficiencyRank orders the proficiency chain.
type ProficiencyRank string

// Proficiency ranks
const (
	RankProficient     ProficiencyRank = "proficient"
	RankFocus          ProficiencyRank = "focus"
	RankSpecialization ProficiencyRank = "specialization"
)

// ForceItemKind distinguishes Force possessions.
type ForceItemKind string

// Force item kinds
const (
	ForcePower     ForceItemKind = "power"
	ForceTechnique ForceItemKind = "technique"
	ForceSecret    ForceItemKind = "secret"
)

// FeatureOwned requires a named feat or talent.
type FeatureOwned struct {
	Feature string
}

// TreeTalentCount requires a minimum number of owned talents from one tree.
// The candidate being evaluated never counts toward its own requirement.
type TreeTalentCount struct {
	Tree string
	Min  int
}

// AbilityMinimum requires an ability score at or above a threshold.
type AbilityMinimum struct {
	Ability string
	Min     int32
}

// SkillTrained requires training in a named skill.
type SkillTrained struct {
	Skill string
}

// AttackBonusMinimum requires a base attack bonus at or above a threshold.
type AttackBonusMinimum struct {
	Min int32
}

// LevelMinimum requires a character level at or above a threshold.
type LevelMinimum struct {
	Min int32
}

// TraitComparison compares two derived values with an operator. Covers both
// the static threshold form (right side literal) and the dynamic form
// (e.g. Dark Side Score vs. Wisdom).
type TraitComparison struct {
	Left  ValueRef
	Op    CompareOp
	Right ValueRef
}

// SpeciesMatch requires a specific species.
type SpeciesMatch struct {
	Species string
}

// SpeciesTrait requires a named species trait.
type SpeciesTrait struct {
	Trait string
}

// DroidRequirement constrains droid status or degree classification.
type DroidRequirement struct {
	State  DroidState
	Degree int32
}

// Proficiency requires a weapon/armor proficiency, focus, or
// specialization with a named group.
type Proficiency struct {
	Category ProficiencyCategory
	Rank     ProficiencyRank
	Group    string
}

// ClassLevelMinimum requires levels in a specific class.
type ClassLevelMinimum struct {
	Class string
	Min   int32
}

// ForcePossession requires Force powers, techniques, or secrets, by name,
// count, or descriptor category.
type ForcePossession struct {
	Kind     ForceItemKind
	Name     string
	Category string
	Min      int
}

// TextPattern matches a pattern against the owned prerequisite names.
// Legacy escape hatch for prerequisites the classifier cannot type.
type TextPattern struct {
	Pattern string
}

// AnyOf is a recursive OR-group of sub-conditions.
type AnyOf struct {
	Conditions []Condition
}

func (FeatureOwned) condition()       {}
func (TreeTalentCount) condition()    {}
func (AbilityMinimum) condition()     {}
func (SkillTrained) condition()       {}
func (AttackBonusMinimum) condition() {}
func (LevelMinimum) condition()       {}
func (TraitComparison) condition()    {}
func (SpeciesMatch) condition()       {}
func (SpeciesTrait) condition()       {}
func (DroidRequirement) condition()   {}
func (Proficiency) condition()        {}
func (ClassLevelMinimum) condition()  {}
func (ForcePossession) condition()    {}
func (TextPattern) condition()        {}
func (AnyOf) condition()              {}

// Describe implementations. These are the fixed phrases unmet reasons are
// built from; changing them changes user-visible output.

// Describe returns the requirement phrase.
func (c FeatureOwned) Describe() string { return c.Feature }

// Describe returns the requirement phrase.
func (c TreeTalentCount) Describe() string {
	if c.Min <= 1 {
		return fmt.Sprintf("a talent from the %s tree", c.Tree)
	}
	return fmt.Sprintf("%d talents from the %s tree", c.Min, c.Tree)
}

// Describe returns the requirement phrase.
func (c AbilityMinimum) Describe() string {
	return fmt.Sprintf("%s %d", capitalize(c.Ability), c.Min)
}

// Describe returns the requirement phrase.
func (c SkillTrained) Describe() string { return fmt.Sprintf("trained in %s", c.Skill) }

// Describe returns the requirement phrase.
func (c AttackBonusMinimum) Describe() string {
	return fmt.Sprintf("base attack bonus +%d", c.Min)
}

// Describe returns the requirement phrase.
func (c LevelMinimum) Describe() string { return fmt.Sprintf("character level %d", c.Min) }

// Describe returns the requirement phrase.
func (c TraitComparison) Describe() string {
	op := map[CompareOp]string{
		OpEqual:        "equal to",
		OpGreater:      "greater than",
		OpLess:         "less than",
		OpGreaterEqual: "at least",
		OpLessEqual:    "at most",
	}[c.Op]
	return fmt.Sprintf("%s %s %s", c.Left.describe(), op, c.Right.describe())
}

// Describe returns the requirement phrase.
func (c SpeciesMatch) Describe() string { return c.Species }

// Describe returns the requirement phrase.
func (c SpeciesTrait) Describe() string { return fmt.Sprintf("%s species trait", c.Trait) }

// Describe returns the requirement phrase.
func (c DroidRequirement) Describe() string {
	switch c.State {
	case DroidRequired:
		return "droid"
	case DroidExcluded:
		return "non-droid"
	default:
		return fmt.Sprintf("degree %d droid", c.Degree)
	}
}

// Describe returns the requirement phrase.
func (c Proficiency) Describe() string {
	switch c.Rank {
	case RankFocus:
		return fmt.Sprintf("Weapon Focus (%s)", c.Group)
	case RankSpecialization:
		return fmt.Sprintf("Weapon Specialization (%s)", c.Group)
	default:
		if c.Category == ProficiencyArmor {
			return fmt.Sprintf("Armor Proficiency (%s)", c.Group)
		}
		return fmt.Sprintf("Weapon Proficiency (%s)", c.Group)
	}
}

// Describe returns the requirement phrase.
func (c ClassLevelMinimum) Describe() string {
	return fmt.Sprintf("%s level %d", c.Class, c.Min)
}

// Describe returns the requirement phrase.
func (c ForcePossession) Describe() string {
	noun := map[ForceItemKind]string{
		ForcePower:     "Force power",
		ForceTechnique: "Force technique",
		ForceSecret:    "Force secret",
	}[c.Kind]
	switch {
	case c.Name != "":
		return fmt.Sprintf("the %s %s", noun, c.Name)
	case c.Category != "":
		return fmt.Sprintf("a %s %s", c.Category, noun)
	case c.Min > 1:
		return fmt.Sprintf("%d %ss", c.Min, noun)
	default:
		return fmt.Sprintf("a %s", noun)
	}
}

// Describe returns the requirement phrase.
func (c TextPattern) Describe() string { return c.Pattern }

// Describe returns the requirement phrase.
func (c AnyOf) Describe() string {
	parts := make([]string, len(c.Conditions))
	for i, sub := range c.Conditions {
		parts[i] = sub.Describe()
	}
	return strings.Join(parts, " or ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
