package sagarules_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sagaforge/progression-api/internal/content"
	"github.com/sagaforge/progression-api/internal/engine/sagarules"
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// rankerCatalog is a small fixture with one candidate per ladder rung plus
// a set of features at varying distances for future estimation.
func rankerCatalog() *content.Catalog {
	return content.New(&content.Tables{
		Features: []content.FeatureDefinition{
			{Name: "Missing Feat", Kind: saga.FeatureKindFeat},
			{Name: "Base Feat", Kind: saga.FeatureKindFeat},
			{
				Name:          "Alpha Strike",
				Kind:          saga.FeatureKindFeat,
				Themes:        []string{saga.ThemeRanged},
				Prerequisites: saga.RequireAll(saga.FeatureOwned{Feature: "Base Feat"}),
			},
			{Name: "Wish Prereq", Kind: saga.FeatureKindFeat},
			{
				Name:          "Wish Target",
				Kind:          saga.FeatureKindFeat,
				Prerequisites: saga.RequireAll(saga.FeatureOwned{Feature: "Wish Prereq"}),
			},
			{Name: "Hook", Kind: saga.FeatureKindFeat},
			{Name: "Combo Feat", Kind: saga.FeatureKindFeat},
			{Name: "Style Feat", Kind: saga.FeatureKindFeat, MartialArtsStyle: true},
			{Name: "Tribal Gift", Kind: saga.FeatureKindFeat, RestrictedSpecies: "Wookiee"},
			{
				Name:              "Tribal Hunt",
				Kind:              saga.FeatureKindFeat,
				RestrictedSpecies: "Wookiee",
				Prerequisites:     saga.RequireAll(saga.SkillTrained{Skill: "survival"}),
			},
			{Name: "Strike Drill", Kind: saga.FeatureKindFeat},
			{
				Name:          "Shadow Ops",
				Kind:          saga.FeatureKindFeat,
				Prerequisites: saga.RequireAll(saga.SkillTrained{Skill: "stealth"}),
			},
			{
				Name:          "Nimble",
				Kind:          saga.FeatureKindFeat,
				Prerequisites: saga.RequireAll(saga.AbilityMinimum{Ability: saga.AbilityDexterity, Min: 13}),
			},
			{Name: "Drill Sergeant", Kind: saga.FeatureKindFeat, BonusFeatClasses: []string{"soldier"}},
			{Name: "Long Shot", Kind: saga.FeatureKindFeat, Themes: []string{saga.ThemeRanged}},
			{Name: "Plain Feat", Kind: saga.FeatureKindFeat},

			{
				Name:          "Near Pick",
				Kind:          saga.FeatureKindFeat,
				Prerequisites: saga.RequireAll(saga.FeatureOwned{Feature: "Absent"}),
			},
			{
				Name:          "Mid Pick",
				Kind:          saga.FeatureKindFeat,
				Prerequisites: saga.RequireAll(saga.LevelMinimum{Min: 5}),
			},
			{
				Name:          "Far Pick",
				Kind:          saga.FeatureKindFeat,
				Prerequisites: saga.RequireAll(saga.AttackBonusMinimum{Min: 5}),
			},
			{
				Name:          "Distant Pick",
				Kind:          saga.FeatureKindFeat,
				Prerequisites: saga.RequireAll(saga.AbilityMinimum{Ability: saga.AbilityStrength, Min: 12}),
			},
			{
				Name: "Soonest Pick",
				Kind: saga.FeatureKindFeat,
				Prerequisites: saga.RequireAll(
					saga.AbilityMinimum{Ability: saga.AbilityStrength, Min: 14},
					saga.FeatureOwned{Feature: "Absent"},
				),
			},
		},
		Classes: []content.ClassDefinition{
			{ID: "soldier", Name: "Soldier", Category: saga.ClassCategoryBase, Themes: []string{saga.ThemeMelee}},
			{ID: "hunter", Name: "Hunter", Category: saga.ClassCategoryPrestige, Themes: []string{saga.ThemeRanged}},
			{
				ID:            "lore",
				Name:          "Lore Keeper",
				Category:      saga.ClassCategoryBase,
				Prerequisites: saga.RequireAll(saga.SkillTrained{Skill: "stealth"}),
			},
			{ID: "aardvark", Name: "Aardvark", Category: saga.ClassCategoryBase},
			{ID: "zebra", Name: "Zebra", Category: saga.ClassCategoryBase},
			{ID: "veteran", Name: "Veteran", Category: saga.ClassCategoryAdvanced},
		},
		Survey: content.SurveyMaps{
			Keywords: map[string][]string{"sniper": {"strike"}},
		},
		SynergyRules: []saga.SynergyRule{
			{
				ID:       "hook_combo",
				Priority: saga.SynergyHigh,
				Trigger:  func(s *saga.CharacterSnapshot) bool { return s.Feats["Hook"] },
				FollowUps: []saga.SynergyFollowUp{
					{Name: "Combo Feat", Kind: saga.FeatureKindFeat},
				},
			},
		},
	})
}

type RankerTestSuite struct {
	suite.Suite
	ranker *sagarules.Ranker
}

func (s *RankerTestSuite) SetupTest() {
	s.ranker = sagarules.NewRanker(rankerCatalog())
}

func (s *RankerTestSuite) TestTierLadderFirstMatchWins() {
	snap := snapshot(&saga.Character{
		ID:            "c1",
		Species:       "Wookiee",
		Level:         3,
		AbilityScores: saga.AbilityScores{Strength: 10, Dexterity: 14},
		Feats:         []string{"Hook", "Base Feat"},
		TrainedSkills: []string{"Stealth", "Survival"},
		Classes:       []saga.ClassLevel{{ClassID: "soldier", Level: 1}},
		SurveyBias:    map[string]float64{"sniper": 1.0},
		Wishlist:      []string{"Wish Target"},
	})
	intent := &saga.BuildIntent{
		PrimaryThemes: []string{saga.ThemeRanged},
		PriorityPrereqs: []saga.PriorityPrereq{
			{Name: "Missing Feat", Kind: saga.SignalFeat, ClassID: "hunter", Confidence: 0.8},
		},
	}

	candidates := []string{
		"Missing Feat", "Wish Prereq", "Combo Feat", "Style Feat",
		"Alpha Strike", "Strike Drill", "Shadow Ops", "Tribal Hunt",
		"Tribal Gift", "Nimble", "Drill Sergeant", "Long Shot",
		"Plain Feat", "Wish Target", "Hook", "Base Feat",
	}

	ranked, future := s.ranker.RankFeatures(snap, candidates, intent, false)
	s.Empty(future)

	type verdict struct {
		tier     float64
		reason   saga.ReasonCode
		sourceID string
	}
	want := []struct {
		name string
		verdict
	}{
		{"Missing Feat", verdict{6, saga.ReasonPrestigePath, "prestige:Hunter"}},
		{"Wish Prereq", verdict{5.5, saga.ReasonWishlistPrereq, "wishlist:Wish Target"}},
		{"Combo Feat", verdict{5, saga.ReasonMetaSynergy, "synergy:hook_combo"}},
		{"Style Feat", verdict{5, saga.ReasonMetaSynergy, "style:Style Feat"}},
		// Alpha Strike also matches the survey keyword, but the chain
		// rung is checked first and wins.
		{"Alpha Strike", verdict{4, saga.ReasonChainContinuation, "chain:Base Feat"}},
		{"Strike Drill", verdict{3.5, saga.ReasonSurveyAlignment, "survey:sniper"}},
		{"Shadow Ops", verdict{3, saga.ReasonSkillMatch, "skill:stealth"}},
		{"Tribal Hunt", verdict{2.75, saga.ReasonSpeciesAffinity, "species:Wookiee"}},
		{"Tribal Gift", verdict{2.25, saga.ReasonSpeciesAffinity, "species:Wookiee"}},
		{"Nimble", verdict{2, saga.ReasonAbilityPrereqMatch, "ability:dexterity"}},
		{"Drill Sergeant", verdict{1, saga.ReasonClassTheme, "class:soldier"}},
		{"Long Shot", verdict{1, saga.ReasonClassTheme, "theme:ranged"}},
		{"Plain Feat", verdict{0, saga.ReasonGeneral, ""}},
	}

	s.Require().Len(ranked, len(want))
	for i, w := range want {
		s.Equal(w.name, ranked[i].Name, "position %d", i)
		s.InDelta(w.tier, ranked[i].Suggestion.Tier, 1e-9, w.name)
		s.Equal(w.reason, ranked[i].Suggestion.Reason, w.name)
		s.Equal(w.sourceID, ranked[i].Suggestion.SourceID, w.name)
	}
}

func (s *RankerTestSuite) TestSpeciesTierDecaysWithLevel() {
	tierAt := func(level int32) float64 {
		snap := snapshot(&saga.Character{
			ID:      "c1",
			Species: "Wookiee",
			Level:   level,
		})
		ranked, _ := s.ranker.RankFeatures(snap, []string{"Tribal Gift"}, &saga.BuildIntent{}, false)
		s.Require().Len(ranked, 1)
		return ranked[0].Suggestion.Tier
	}

	s.InDelta(4.5, tierAt(0), 1e-9)
	s.InDelta(2.25, tierAt(3), 1e-9)
	s.InDelta(1.125, tierAt(6), 1e-9)
	s.Greater(tierAt(0), tierAt(3))
	s.Greater(tierAt(3), tierAt(6))
}

func (s *RankerTestSuite) TestSpeciesSkillBoostIsCapped() {
	snap := snapshot(&saga.Character{
		ID:            "c1",
		Species:       "Wookiee",
		Level:         0,
		TrainedSkills: []string{"Survival"},
	})

	ranked, _ := s.ranker.RankFeatures(snap, []string{"Tribal Hunt"}, &saga.BuildIntent{}, false)
	s.Require().Len(ranked, 1)
	s.InDelta(5.0, ranked[0].Suggestion.Tier, 1e-9)
}

func (s *RankerTestSuite) TestSpeciesConfidenceSnapsToNearestRung() {
	snap := snapshot(&saga.Character{
		ID:      "c1",
		Species: "Wookiee",
		Level:   3,
	})

	ranked, _ := s.ranker.RankFeatures(snap, []string{"Tribal Gift"}, &saga.BuildIntent{}, false)
	s.Require().Len(ranked, 1)
	// 2.25 is closest to the 2.0 rung.
	s.InDelta(0.55, ranked[0].Suggestion.Confidence, 1e-9)
}

func (s *RankerTestSuite) TestUnknownCandidateRanksGeneral() {
	snap := snapshot(&saga.Character{ID: "c1"})

	ranked, _ := s.ranker.RankFeatures(snap, []string{"Mystery Pick"}, &saga.BuildIntent{}, false)
	s.Require().Len(ranked, 1)
	s.Equal("Mystery Pick", ranked[0].Name)
	s.Equal(saga.ReasonGeneral, ranked[0].Suggestion.Reason)
	s.InDelta(0.5, ranked[0].Coherence, 1e-9)
}

func (s *RankerTestSuite) TestOwnedAndIllegalCandidatesSkipped() {
	snap := snapshot(&saga.Character{
		ID:    "c1",
		Feats: []string{"Base Feat"},
	})

	ranked, future := s.ranker.RankFeatures(snap, []string{"Base Feat", "Wish Target"}, &saga.BuildIntent{}, false)
	s.Empty(ranked)
	s.Empty(future)
}

func (s *RankerTestSuite) TestRankClassesAppliesCategoryBias() {
	snap := snapshot(&saga.Character{ID: "c1"})
	intent := &saga.BuildIntent{
		PrestigeAffinities: []saga.PrestigeAffinity{
			{ClassID: "hunter", Confidence: 0.9},
		},
	}

	ranked := s.ranker.RankClasses(snap, []string{"aardvark", "veteran", "hunter"}, intent)
	s.Require().Len(ranked, 3)

	s.Equal("hunter", ranked[0].ClassID)
	s.InDelta(6, ranked[0].Suggestion.Tier, 1e-9)
	s.InDelta(9, ranked[0].SortTier, 1e-9)
	s.Equal("prestige:Hunter", ranked[0].Suggestion.SourceID)

	s.Equal("veteran", ranked[1].ClassID)
	s.InDelta(0, ranked[1].Suggestion.Tier, 1e-9)
	s.InDelta(1, ranked[1].SortTier, 1e-9)

	s.Equal("aardvark", ranked[2].ClassID)
	s.InDelta(0, ranked[2].SortTier, 1e-9)
}

func (s *RankerTestSuite) TestRankClassesTieBreaking() {
	snap := snapshot(&saga.Character{
		ID:            "c1",
		TrainedSkills: []string{"Stealth"},
	})

	ranked := s.ranker.RankClasses(snap, []string{"zebra", "lore", "hunter", "aardvark"}, &saga.BuildIntent{})
	s.Require().Len(ranked, 4)

	// Lore Keeper's skill match and Hunter's prestige bias both land on
	// sort tier 3; exact ties go to the prestige class.
	s.Equal("hunter", ranked[0].ClassID)
	s.Equal("lore", ranked[1].ClassID)

	// Remaining base classes tie at zero and sort by display name.
	s.Equal("aardvark", ranked[2].ClassID)
	s.Equal("zebra", ranked[3].ClassID)
}

func (s *RankerTestSuite) TestRankClassesSkipsIllegal() {
	snap := snapshot(&saga.Character{ID: "c1"})

	ranked := s.ranker.RankClasses(snap, []string{"lore"}, &saga.BuildIntent{})
	s.Empty(ranked)
}

func (s *RankerTestSuite) futureSnapshot() *saga.CharacterSnapshot {
	return snapshot(&saga.Character{
		ID:              "f1",
		Level:           3,
		BaseAttackBonus: 2,
		AbilityScores:   saga.AbilityScores{Strength: 10},
	})
}

func (s *RankerTestSuite) TestFutureBuckets() {
	candidates := []string{"Near Pick", "Mid Pick", "Far Pick", "Distant Pick", "Soonest Pick"}

	ranked, future := s.ranker.RankFeatures(s.futureSnapshot(), candidates, &saga.BuildIntent{}, true)
	s.Empty(ranked)
	s.Require().Len(future, 5)

	want := []struct {
		name string
		tier float64
	}{
		{"Near Pick", 0.6},
		{"Soonest Pick", 0.6}, // minimum across its two unmet conditions
		{"Mid Pick", 0.4},
		{"Far Pick", 0.2},
		{"Distant Pick", 0.05},
	}
	for i, w := range want {
		s.Equal(w.name, future[i].Name, "position %d", i)
		s.InDelta(w.tier, future[i].Suggestion.Tier, 1e-9, w.name)
		s.Equal(saga.ReasonFutureOption, future[i].Suggestion.Reason, w.name)
		s.InDelta(w.tier, future[i].Suggestion.Confidence, 1e-9, w.name)
	}
}

func (s *RankerTestSuite) TestFutureExcludedByDefault() {
	ranked, future := s.ranker.RankFeatures(s.futureSnapshot(), []string{"Near Pick"}, &saga.BuildIntent{}, false)
	s.Empty(ranked)
	s.Empty(future)
}

func (s *RankerTestSuite) TestEstimateAvailability() {
	snap := s.futureSnapshot()

	levels, tier, qualifies := s.ranker.EstimateAvailability(snap, "Near Pick")
	s.False(qualifies)
	s.Equal(int32(1), levels)
	s.InDelta(0.6, tier, 1e-9)

	levels, tier, qualifies = s.ranker.EstimateAvailability(snap, "Mid Pick")
	s.False(qualifies)
	s.Equal(int32(2), levels)
	s.InDelta(0.4, tier, 1e-9)

	_, _, qualifies = s.ranker.EstimateAvailability(snap, "Plain Feat")
	s.True(qualifies)

	_, _, qualifies = s.ranker.EstimateAvailability(snap, "No Such Feature")
	s.True(qualifies)
}

func (s *RankerTestSuite) TestFutureThemeBoost() {
	// Deadeye from the default tables: Precise Shot is the only unmet
	// condition (one level away) and the ranged theme matches the scout
	// class, lifting 0.6 to 0.72.
	ranker := sagarules.NewRanker(content.Default())
	snap := snapshot(&saga.Character{
		ID:              "c1",
		Level:           3,
		BaseAttackBonus: 2,
		AbilityScores:   saga.AbilityScores{Dexterity: 16},
		Feats:           []string{"Point-Blank Shot"},
		Classes:         []saga.ClassLevel{{ClassID: "scout", Level: 3}},
	})

	_, future := ranker.RankFeatures(snap, []string{"Deadeye"}, &saga.BuildIntent{}, true)
	s.Require().Len(future, 1)
	s.Equal("Deadeye", future[0].Name)
	s.InDelta(0.72, future[0].Suggestion.Tier, 1e-9)
}

func (s *RankerTestSuite) TestNilIntentComputedInternally() {
	ranker := sagarules.NewRanker(content.Default())
	snap := snapshot(&saga.Character{
		ID:            "c1",
		Level:         3,
		AbilityScores: saga.AbilityScores{Dexterity: 16},
		Feats:         []string{"Point-Blank Shot"},
	})

	ranked, _ := ranker.RankFeatures(snap, []string{"Precise Shot"}, nil, false)
	s.Require().Len(ranked, 1)
	s.Equal(saga.ReasonPrestigePath, ranked[0].Suggestion.Reason)
	s.Equal("prestige:Bounty Hunter", ranked[0].Suggestion.SourceID)
}

func TestRankerTestSuite(t *testing.T) {
	suite.Run(t, new(RankerTestSuite))
}
