package sagarules_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sagaforge/progression-api/internal/content"
	"github.com/sagaforge/progression-api/internal/engine/sagarules"
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

type EvaluatorTestSuite struct {
	suite.Suite
	evaluator *sagarules.Evaluator
	catalog   *content.Catalog
}

func (s *EvaluatorTestSuite) SetupTest() {
	s.catalog = content.Default()
	s.evaluator = sagarules.NewEvaluator(s.catalog)
}

func snapshot(c *saga.Character) *saga.CharacterSnapshot {
	return saga.NewCharacterSnapshot(c, nil)
}

func (s *EvaluatorTestSuite) TestEmptySetSatisfied() {
	snap := snapshot(&saga.Character{ID: "c1", Level: 1})

	s.True(s.evaluator.Evaluate(snap, nil, "").Satisfied)
	s.True(s.evaluator.Evaluate(snap, &saga.PrerequisiteSet{Mode: saga.CombineAll}, "").Satisfied)
}

func (s *EvaluatorTestSuite) TestAllModeCollectsEveryUnmetReason() {
	snap := snapshot(&saga.Character{
		ID:    "c1",
		Level: 2,
		AbilityScores: saga.AbilityScores{
			Strength: 10, Dexterity: 11,
		},
	})

	set := saga.RequireAll(
		saga.AbilityMinimum{Ability: saga.AbilityDexterity, Min: 13},
		saga.FeatureOwned{Feature: "Dodge"},
		saga.AttackBonusMinimum{Min: 2},
		saga.LevelMinimum{Min: 2},
	)

	result := s.evaluator.Evaluate(snap, set, "")
	s.False(result.Satisfied)
	s.Equal([]string{
		"requires Dexterity 13",
		"requires Dodge",
		"requires base attack bonus +2",
	}, result.UnmetReasons)
}

func (s *EvaluatorTestSuite) TestAnyModeSatisfiedByOneBranch() {
	snap := snapshot(&saga.Character{
		ID:    "c1",
		Feats: []string{"Martial Arts I"},
	})

	set := saga.RequireAny(
		saga.FeatureOwned{Feature: "Martial Arts I"},
		saga.Proficiency{Category: saga.ProficiencyWeapon, Rank: saga.RankProficient, Group: "advanced melee weapons"},
	)

	s.True(s.evaluator.Evaluate(snap, set, "").Satisfied)
}

func (s *EvaluatorTestSuite) TestAnyModeUnmetReason() {
	snap := snapshot(&saga.Character{ID: "c1"})

	set := saga.RequireAny(
		saga.FeatureOwned{Feature: "Dodge"},
		saga.AbilityMinimum{Ability: saga.AbilityStrength, Min: 13},
	)

	result := s.evaluator.Evaluate(snap, set, "")
	s.False(result.Satisfied)
	s.Equal([]string{"requires one of: Dodge, Strength 13"}, result.UnmetReasons)
}

func (s *EvaluatorTestSuite) TestTreeTalentCountExcludesCandidate() {
	snap := snapshot(&saga.Character{
		ID: "c1",
		Talents: []saga.OwnedTalent{
			{Name: "Weapon Mastery", Tree: "Weapon Master"},
		},
	})

	set := saga.RequireAll(saga.TreeTalentCount{Tree: "Weapon Master", Min: 1})

	// The candidate's own entry never counts toward its requirement.
	s.False(s.evaluator.Evaluate(snap, set, "Weapon Mastery").Satisfied)
	s.True(s.evaluator.Evaluate(snap, set, "Devastating Attack").Satisfied)
}

func (s *EvaluatorTestSuite) TestSkillLookupIsCaseInsensitive() {
	snap := snapshot(&saga.Character{
		ID:            "c1",
		TrainedSkills: []string{"Use the Force"},
	})

	set := saga.RequireAll(saga.SkillTrained{Skill: "Use The Force"})
	s.True(s.evaluator.Evaluate(snap, set, "").Satisfied)
}

func (s *EvaluatorTestSuite) TestSpeciesMatchIgnoresCase() {
	snap := snapshot(&saga.Character{ID: "c1", Species: "wookiee"})

	set := saga.RequireAll(saga.SpeciesMatch{Species: "Wookiee"})
	s.True(s.evaluator.Evaluate(snap, set, "").Satisfied)
}

func (s *EvaluatorTestSuite) TestDroidStates() {
	droid := snapshot(&saga.Character{ID: "c1", Droid: true, DroidDegree: 4})
	organic := snapshot(&saga.Character{ID: "c2"})

	required := saga.RequireAll(saga.DroidRequirement{State: saga.DroidRequired})
	excluded := saga.RequireAll(saga.DroidRequirement{State: saga.DroidExcluded})
	degree := saga.RequireAll(saga.DroidRequirement{State: saga.DroidDegreeIs, Degree: 4})
	wrongDegree := saga.RequireAll(saga.DroidRequirement{State: saga.DroidDegreeIs, Degree: 2})

	s.True(s.evaluator.Evaluate(droid, required, "").Satisfied)
	s.False(s.evaluator.Evaluate(organic, required, "").Satisfied)
	s.True(s.evaluator.Evaluate(organic, excluded, "").Satisfied)
	s.False(s.evaluator.Evaluate(droid, excluded, "").Satisfied)
	s.True(s.evaluator.Evaluate(droid, degree, "").Satisfied)
	s.False(s.evaluator.Evaluate(droid, wrongDegree, "").Satisfied)
}

func (s *EvaluatorTestSuite) TestProficiencyRanks() {
	snap := snapshot(&saga.Character{
		ID:                    "c1",
		WeaponProficiencies:   []string{"pistols"},
		ArmorProficiencies:    []string{"light"},
		WeaponFocuses:         []string{"lightsabers"},
		WeaponSpecializations: []string{"rifles"},
	})

	cases := []struct {
		cond      saga.Proficiency
		satisfied bool
	}{
		{saga.Proficiency{Category: saga.ProficiencyWeapon, Rank: saga.RankProficient, Group: "pistols"}, true},
		{saga.Proficiency{Category: saga.ProficiencyWeapon, Rank: saga.RankProficient, Group: "rifles"}, false},
		{saga.Proficiency{Category: saga.ProficiencyArmor, Rank: saga.RankProficient, Group: "light"}, true},
		{saga.Proficiency{Category: saga.ProficiencyArmor, Rank: saga.RankProficient, Group: "heavy"}, false},
		{saga.Proficiency{Category: saga.ProficiencyWeapon, Rank: saga.RankFocus, Group: "lightsabers"}, true},
		{saga.Proficiency{Category: saga.ProficiencyWeapon, Rank: saga.RankFocus, Group: "pistols"}, false},
		{saga.Proficiency{Category: saga.ProficiencyWeapon, Rank: saga.RankSpecialization, Group: "rifles"}, true},
	}
	for _, tc := range cases {
		result := s.evaluator.Evaluate(snap, saga.RequireAll(tc.cond), "")
		s.Equal(tc.satisfied, result.Satisfied, "condition %+v", tc.cond)
	}
}

func (s *EvaluatorTestSuite) TestForcePossession() {
	snap := snapshot(&saga.Character{
		ID:              "c1",
		ForcePowers:     []string{"Move Object", "Telekinetic Thrust"},
		ForceTechniques: []string{"Improved Move Object"},
	})

	byName := saga.RequireAll(saga.ForcePossession{Kind: saga.ForcePower, Name: "Move Object"})
	s.True(s.evaluator.Evaluate(snap, byName, "").Satisfied)

	byCategory := saga.RequireAll(saga.ForcePossession{Kind: saga.ForcePower, Category: "telekinetic", Min: 1})
	s.True(s.evaluator.Evaluate(snap, byCategory, "").Satisfied)

	byCategoryTooMany := saga.RequireAll(saga.ForcePossession{Kind: saga.ForcePower, Category: "telekinetic", Min: 2})
	s.False(s.evaluator.Evaluate(snap, byCategoryTooMany, "").Satisfied)

	byCount := saga.RequireAll(saga.ForcePossession{Kind: saga.ForcePower, Min: 2})
	s.True(s.evaluator.Evaluate(snap, byCount, "").Satisfied)

	techniques := saga.RequireAll(saga.ForcePossession{Kind: saga.ForceTechnique})
	s.True(s.evaluator.Evaluate(snap, techniques, "").Satisfied)

	secrets := saga.RequireAll(saga.ForcePossession{Kind: saga.ForceSecret})
	s.False(s.evaluator.Evaluate(snap, secrets, "").Satisfied)
}

func (s *EvaluatorTestSuite) TestTraitComparison() {
	snap := snapshot(&saga.Character{
		ID:            "c1",
		DarkSideScore: 12,
		AbilityScores: saga.AbilityScores{Wisdom: 10},
	})

	dark := saga.RequireAll(saga.TraitComparison{
		Left:  saga.ValueRef{Kind: saga.ValueDarkSideScore},
		Op:    saga.OpGreaterEqual,
		Right: saga.ValueRef{Kind: saga.ValueAbility, Ability: saga.AbilityWisdom},
	})
	s.True(s.evaluator.Evaluate(snap, dark, "").Satisfied)

	literal := saga.RequireAll(saga.TraitComparison{
		Left:  saga.ValueRef{Kind: saga.ValueDarkSideScore},
		Op:    saga.OpLess,
		Right: saga.ValueRef{Kind: saga.ValueLiteral, Literal: 10},
	})
	s.False(s.evaluator.Evaluate(snap, literal, "").Satisfied)
}

func (s *EvaluatorTestSuite) TestTextPattern() {
	snap := snapshot(&saga.Character{
		ID:    "c1",
		Feats: []string{"Weapon Focus (lightsabers)"},
	})

	regex := saga.RequireAll(saga.TextPattern{Pattern: `weapon focus \(lightsabers\)`})
	s.True(s.evaluator.Evaluate(snap, regex, "").Satisfied)

	// A pattern that does not compile falls back to substring matching.
	substring := saga.RequireAll(saga.TextPattern{Pattern: "focus (lightsabers"})
	s.True(s.evaluator.Evaluate(snap, substring, "").Satisfied)

	miss := saga.RequireAll(saga.TextPattern{Pattern: "vibroblade"})
	s.False(s.evaluator.Evaluate(snap, miss, "").Satisfied)
}

func (s *EvaluatorTestSuite) TestClassLevelMinimum() {
	snap := snapshot(&saga.Character{
		ID:      "c1",
		Classes: []saga.ClassLevel{{ClassID: "jedi", Level: 2}},
	})

	s.True(s.evaluator.Evaluate(snap, saga.RequireAll(saga.ClassLevelMinimum{Class: "jedi", Min: 1}), "").Satisfied)
	s.False(s.evaluator.Evaluate(snap, saga.RequireAll(saga.ClassLevelMinimum{Class: "soldier", Min: 1}), "").Satisfied)
}

func (s *EvaluatorTestSuite) TestEvaluateFeatureFallsBackToLegacyText() {
	def, ok := s.catalog.Feature("Deadeye")
	s.Require().True(ok)

	snap := snapshot(&saga.Character{
		ID:              "c1",
		Level:           4,
		BaseAttackBonus: 3,
		AbilityScores:   saga.AbilityScores{Dexterity: 14},
		Feats:           []string{"Point-Blank Shot"},
	})

	result := s.evaluator.EvaluateFeature(snap, def)
	s.False(result.Satisfied)
	s.Equal([]string{"requires Precise Shot"}, result.UnmetReasons)

	snap = snapshot(&saga.Character{
		ID:              "c2",
		Level:           4,
		BaseAttackBonus: 3,
		AbilityScores:   saga.AbilityScores{Dexterity: 14},
		Feats:           []string{"Point-Blank Shot", "Precise Shot"},
	})
	s.True(s.evaluator.EvaluateFeature(snap, def).Satisfied)
}

func (s *EvaluatorTestSuite) TestEvaluateClassLegacyText() {
	def, ok := s.catalog.Class("bounty_hunter")
	s.Require().True(ok)

	snap := snapshot(&saga.Character{
		ID:              "c1",
		Level:           7,
		BaseAttackBonus: 5,
		TrainedSkills:   []string{"Survival"},
	})
	s.True(s.evaluator.EvaluateClass(snap, def).Satisfied)

	low := snapshot(&saga.Character{ID: "c2", Level: 3, BaseAttackBonus: 2})
	result := s.evaluator.EvaluateClass(low, def)
	s.False(result.Satisfied)
	s.Len(result.UnmetReasons, 3)
}

func (s *EvaluatorTestSuite) TestTreeAccess() {
	plain := snapshot(&saga.Character{ID: "c1"})
	sensitive := snapshot(&saga.Character{
		ID:    "c2",
		Feats: []string{saga.ForceSensitivityFeat},
	})
	sith := snapshot(&saga.Character{
		ID:    "c3",
		Feats: []string{saga.ForceSensitivityFeat},
		Talents: []saga.OwnedTalent{
			{Name: "Dark Healing", Tree: "Dark Side", Tradition: "Sith"},
		},
	})

	// Class-granted trees are resolved by class tables, never here.
	s.False(s.evaluator.CanAccessTalentTree(sensitive, "Brawler"))

	// Unconstrained trees are open to everyone.
	s.True(s.evaluator.CanAccessTalentTree(plain, "Fringer"))

	s.False(s.evaluator.CanAccessTalentTree(plain, "Telekinetic"))
	s.True(s.evaluator.CanAccessTalentTree(sensitive, "Telekinetic"))

	s.False(s.evaluator.CanAccessTalentTree(plain, "Dark Side"))
	s.False(s.evaluator.CanAccessTalentTree(sensitive, "Dark Side"))
	s.True(s.evaluator.CanAccessTalentTree(sith, "Dark Side"))
}

func (s *EvaluatorTestSuite) TestTraditionEvidenceFromFeatureName() {
	snap := snapshot(&saga.Character{
		ID:    "c1",
		Feats: []string{saga.ForceSensitivityFeat, "Jedi Heritage"},
	})

	s.True(s.evaluator.CanAccessTalentTree(snap, "Jedi Guardian"))
}

func TestEvaluatorTestSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}
