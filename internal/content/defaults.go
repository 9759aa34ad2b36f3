package content

import (
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// Default returns the compiled-in catalog. It is small compared to a full
// rulebook export but covers every condition kind and rule shape, and is
// what the server falls back to when no content path is configured.
func Default() *Catalog {
	return New(DefaultTables())
}

// DefaultTables returns the raw compiled-in tables.
func DefaultTables() *Tables {
	return &Tables{
		Features:          defaultFeatures(),
		Classes:           defaultClasses(),
		PrestigeSignals:   defaultPrestigeSignals(),
		TreeAccess:        defaultTreeAccess(),
		Themes:            defaultThemes(),
		Survey:            defaultSurvey(),
		ArchetypeBias:     defaultArchetypeBias(),
		ArchetypeEmphasis: defaultArchetypeEmphasis(),
		SynergyRules:      defaultSynergyRules(),
	}
}

func defaultFeatures() []FeatureDefinition {
	return []FeatureDefinition{
		{
			Name:   "Point-Blank Shot",
			Kind:   saga.FeatureKindFeat,
			Themes: []string{saga.ThemeRanged},
		},
		{
			Name: "Precise Shot",
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.FeatureOwned{Feature: "Point-Blank Shot"},
			),
			Themes: []string{saga.ThemeRanged},
		},
		{
			Name: "Rapid Shot",
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.FeatureOwned{Feature: "Point-Blank Shot"},
				saga.AbilityMinimum{Ability: saga.AbilityDexterity, Min: 13},
			),
			Themes: []string{saga.ThemeRanged},
		},
		{
			Name: "Deadeye",
			Kind: saga.FeatureKindFeat,
			// Never converted to structured data; exercises the legacy
			// normalizer end to end.
			LegacyPrereq: "Dexterity 13, Point-Blank Shot, Precise Shot, base attack bonus +2",
			Themes:       []string{saga.ThemeRanged},
		},
		{
			Name: "Dodge",
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.AbilityMinimum{Ability: saga.AbilityDexterity, Min: 13},
			),
		},
		{
			Name:         "Mobility",
			Kind:         saga.FeatureKindFeat,
			LegacyPrereq: "Dexterity 13, Dodge",
		},
		{
			Name: "Power Attack",
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.AbilityMinimum{Ability: saga.AbilityStrength, Min: 13},
			),
			Themes: []string{saga.ThemeMelee},
		},
		{
			Name:             "Martial Arts I",
			Kind:             saga.FeatureKindFeat,
			MartialArtsStyle: true,
			BonusFeatClasses: []string{"soldier", "jedi"},
			Themes:           []string{saga.ThemeMelee},
		},
		{
			Name:             "Martial Arts II",
			Kind:             saga.FeatureKindFeat,
			MartialArtsStyle: true,
			Prerequisites: saga.RequireAll(
				saga.FeatureOwned{Feature: "Martial Arts I"},
				saga.AttackBonusMinimum{Min: 3},
			),
			Themes: []string{saga.ThemeMelee},
		},
		{
			Name: "Pin",
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.FeatureOwned{Feature: "Martial Arts I"},
			),
			Themes: []string{saga.ThemeMelee},
		},
		{
			Name:         "Trip",
			Kind:         saga.FeatureKindFeat,
			LegacyPrereq: "Martial Arts I",
			Themes:       []string{saga.ThemeMelee},
		},
		{
			Name: saga.ForceSensitivityFeat,
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.DroidRequirement{State: saga.DroidExcluded},
			),
			Themes: []string{saga.ThemeForce},
		},
		{
			Name: "Force Training",
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.FeatureOwned{Feature: saga.ForceSensitivityFeat},
				saga.SkillTrained{Skill: "use the force"},
			),
			Themes: []string{saga.ThemeForce},
		},
		{
			Name:         "Strong in the Force",
			Kind:         saga.FeatureKindFeat,
			LegacyPrereq: "Force Sensitive",
			Themes:       []string{saga.ThemeForce},
		},
		{
			Name: "Skill Focus (Use the Force)",
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.SkillTrained{Skill: "use the force"},
			),
			Themes: []string{saga.ThemeForce},
		},
		{
			Name:              "Expert Tracker",
			Kind:              saga.FeatureKindFeat,
			RestrictedSpecies: "Wookiee",
			Prerequisites: saga.RequireAll(
				saga.SpeciesMatch{Species: "Wookiee"},
				saga.SkillTrained{Skill: "survival"},
			),
		},
		{
			Name:              "Rage",
			Kind:              saga.FeatureKindFeat,
			RestrictedSpecies: "Wookiee",
			Prerequisites: saga.RequireAll(
				saga.SpeciesMatch{Species: "Wookiee"},
			),
			Themes: []string{saga.ThemeMelee},
		},
		{
			Name: "Heuristic Processor",
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.DroidRequirement{State: saga.DroidRequired},
			),
		},
		{
			Name: "Weapon Focus (lightsabers)",
			Kind: saga.FeatureKindFeat,
			Prerequisites: saga.RequireAll(
				saga.Proficiency{Category: saga.ProficiencyWeapon, Rank: saga.RankProficient, Group: "lightsabers"},
			),
			Themes: []string{saga.ThemeMelee},
		},
		{
			Name: "Crush",
			Kind: saga.FeatureKindTalent,
			Tree: "Brawler",
			Prerequisites: saga.RequireAll(
				saga.FeatureOwned{Feature: "Pin"},
			),
			Themes: []string{saga.ThemeMelee},
		},
		{
			Name:         "Stunning Strike",
			Kind:         saga.FeatureKindTalent,
			Tree:         "Brawler",
			LegacyPrereq: "Martial Arts I, base attack bonus +5",
			Themes:       []string{saga.ThemeMelee},
		},
		{
			Name: "Devastating Attack",
			Kind: saga.FeatureKindTalent,
			Tree: "Weapon Master",
			Prerequisites: saga.RequireAll(
				saga.TreeTalentCount{Tree: "Weapon Master", Min: 1},
			),
			Themes: []string{saga.ThemeMelee},
		},
		{
			Name: "Weapon Mastery",
			Kind: saga.FeatureKindTalent,
			Tree: "Weapon Master",
		},
		{
			Name: "Telekinetic Savant",
			Kind: saga.FeatureKindTalent,
			Tree: "Telekinetic",
			Prerequisites: saga.RequireAll(
				saga.ForcePossession{Kind: saga.ForcePower, Category: "telekinetic", Min: 1},
			),
			Themes: []string{saga.ThemeForce},
		},
		{
			Name: "Dark Presence",
			Kind: saga.FeatureKindTalent,
			Tree: "Dark Side",
			Prerequisites: saga.RequireAll(
				saga.TraitComparison{
					Left:  saga.ValueRef{Kind: saga.ValueDarkSideScore},
					Op:    saga.OpGreaterEqual,
					Right: saga.ValueRef{Kind: saga.ValueAbility, Ability: saga.AbilityWisdom},
				},
			),
			Themes: []string{saga.ThemeForce},
		},
		{
			Name: "Sneak Attack",
			Kind: saga.FeatureKindTalent,
			Tree: "Misfortune",
			Prerequisites: saga.RequireAll(
				saga.SkillTrained{Skill: "stealth"},
			),
		},
	}
}

func defaultClasses() []ClassDefinition {
	return []ClassDefinition{
		{
			ID:       "jedi",
			Name:     "Jedi",
			Category: saga.ClassCategoryBase,
			Themes:   []string{saga.ThemeForce, saga.ThemeMelee},
			BonusFeats: []string{
				saga.ForceSensitivityFeat,
				"Weapon Focus (lightsabers)",
			},
		},
		{
			ID:         "soldier",
			Name:       "Soldier",
			Category:   saga.ClassCategoryBase,
			Themes:     []string{saga.ThemeRanged, saga.ThemeMelee},
			BonusFeats: []string{"Martial Arts I", "Point-Blank Shot"},
		},
		{
			ID:       "scout",
			Name:     "Scout",
			Category: saga.ClassCategoryBase,
			Themes:   []string{saga.ThemeRanged},
		},
		{
			ID:       "scoundrel",
			Name:     "Scoundrel",
			Category: saga.ClassCategoryBase,
			Themes:   []string{saga.ThemeRanged},
		},
		{
			ID:       "noble",
			Name:     "Noble",
			Category: saga.ClassCategoryBase,
		},
		{
			ID:       "officer",
			Name:     "Officer",
			Category: saga.ClassCategoryAdvanced,
			Prerequisites: saga.RequireAll(
				saga.LevelMinimum{Min: 3},
				saga.SkillTrained{Skill: "knowledge (tactics)"},
			),
		},
		{
			ID:       "jedi_knight",
			Name:     "Jedi Knight",
			Category: saga.ClassCategoryPrestige,
			Themes:   []string{saga.ThemeForce},
			Prerequisites: saga.RequireAll(
				saga.LevelMinimum{Min: 7},
				saga.FeatureOwned{Feature: saga.ForceSensitivityFeat},
				saga.ClassLevelMinimum{Class: "jedi", Min: 1},
				saga.AttackBonusMinimum{Min: 5},
			),
		},
		{
			ID:       "bounty_hunter",
			Name:     "Bounty Hunter",
			Category: saga.ClassCategoryPrestige,
			Themes:   []string{saga.ThemeRanged},
			// Legacy text from an old data export, parsed at evaluation
			// time.
			LegacyPrereq: "7th level, trained in Survival, base attack bonus +5",
		},
		{
			ID:       "elite_trooper",
			Name:     "Elite Trooper",
			Category: saga.ClassCategoryPrestige,
			Themes:   []string{saga.ThemeMelee, saga.ThemeRanged},
			Prerequisites: saga.RequireAll(
				saga.LevelMinimum{Min: 7},
				saga.AttackBonusMinimum{Min: 7},
				saga.AnyOf{Conditions: []saga.Condition{
					saga.FeatureOwned{Feature: "Martial Arts I"},
					saga.Proficiency{Category: saga.ProficiencyWeapon, Rank: saga.RankProficient, Group: "advanced melee weapons"},
				}},
			),
		},
	}
}

func defaultPrestigeSignals() []PrestigeSignalTable {
	return []PrestigeSignalTable{
		{
			ClassID:      "jedi_knight",
			Feats:        []string{saga.ForceSensitivityFeat, "Force Training", "Weapon Focus (lightsabers)"},
			FeatWeight:   2,
			Skills:       []string{"use the force"},
			SkillWeight:  1,
			Trees:        []string{"Telekinetic"},
			TalentWeight: 1,
			Abilities: []AbilitySignal{
				{Ability: saga.AbilityWisdom, Min: 13},
			},
			AbilityWeight: 1,
		},
		{
			ClassID:     "bounty_hunter",
			Feats:       []string{"Point-Blank Shot", "Precise Shot", "Deadeye"},
			FeatWeight:  1,
			Skills:      []string{"survival", "gather information"},
			SkillWeight: 1,
			Abilities: []AbilitySignal{
				{Ability: saga.AbilityDexterity, Min: 13},
			},
			AbilityWeight: 1,
		},
		{
			ClassID:      "elite_trooper",
			Feats:        []string{"Martial Arts I", "Martial Arts II", "Power Attack"},
			FeatWeight:   1,
			Skills:       []string{"endurance"},
			SkillWeight:  1,
			Talents:      []string{"Devastating Attack"},
			Trees:        []string{"Brawler"},
			TalentWeight: 2,
		},
	}
}

func defaultTreeAccess() []TreeAccessRule {
	return []TreeAccessRule{
		{Tree: "Brawler", Kind: TreeClassGranted},
		{Tree: "Weapon Master", Kind: TreeClassGranted},
		{Tree: "Misfortune", Kind: TreeClassGranted},
		{Tree: "Telekinetic", Kind: TreeGenericForce},
		{Tree: "Dark Side", Kind: TreeTradition, Tradition: "Sith"},
		{Tree: "Jedi Guardian", Kind: TreeTradition, Tradition: "Jedi"},
	}
}

func defaultThemes() ThemeMaps {
	return ThemeMaps{
		Features: map[string]string{
			saga.ForceSensitivityFeat: saga.ThemeForce,
			"Force Training":          saga.ThemeForce,
			"Point-Blank Shot":        saga.ThemeRanged,
			"Precise Shot":            saga.ThemeRanged,
			"Martial Arts I":          saga.ThemeMelee,
			"Martial Arts II":         saga.ThemeMelee,
			"Power Attack":            saga.ThemeMelee,
		},
		Keywords: map[string]string{
			"force":      saga.ThemeForce,
			"shot":       saga.ThemeRanged,
			"sniper":     saga.ThemeRanged,
			"martial":    saga.ThemeMelee,
			"lightsaber": saga.ThemeMelee,
		},
		Trees: map[string]string{
			"Telekinetic":   saga.ThemeForce,
			"Dark Side":     saga.ThemeForce,
			"Jedi Guardian": saga.ThemeForce,
			"Brawler":       saga.ThemeMelee,
			"Weapon Master": saga.ThemeMelee,
		},
		Skills: map[string]string{
			"use the force": saga.ThemeForce,
			"acrobatics":    saga.ThemeMelee,
		},
		Classes: map[string]string{
			"jedi":      saga.ThemeForce,
			"soldier":   saga.ThemeMelee,
			"scout":     saga.ThemeRanged,
			"scoundrel": saga.ThemeRanged,
		},
	}
}

func defaultSurvey() SurveyMaps {
	return SurveyMaps{
		Themes: map[string]string{
			"mystic":       saga.ThemeForce,
			"sharpshooter": saga.ThemeRanged,
			"duelist":      saga.ThemeMelee,
		},
		Keywords: map[string][]string{
			"mystic":       {"force", "telekinetic", "dark"},
			"sharpshooter": {"shot", "deadeye", "sniper"},
			"duelist":      {"martial", "lightsaber", "weapon"},
		},
	}
}

func defaultArchetypeBias() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"gunslinger": {saga.ThemeRanged: 0.25},
		"duelist":    {saga.ThemeMelee: 0.25},
		"mystic":     {saga.ThemeForce: 0.25},
	}
}

func defaultArchetypeEmphasis() map[string]float64 {
	return map[string]float64{
		"brawler":    1.5,
		"gunslinger": 1.2,
		"mystic":     1.0,
	}
}

func defaultSynergyRules() []saga.SynergyRule {
	return []saga.SynergyRule{
		{
			ID:        "pin_to_crush",
			Archetype: "brawler",
			Priority:  saga.SynergyCritical,
			Trigger: func(s *saga.CharacterSnapshot) bool {
				return s.Feats["Pin"] && !s.Talents["Crush"]
			},
			FollowUps: []saga.SynergyFollowUp{
				{Name: "Crush", Kind: saga.FeatureKindTalent, Reason: "Pin sets up Crush for free damage on grabbed targets"},
			},
		},
		{
			ID:        "martial_arts_chain",
			Archetype: "brawler",
			Priority:  saga.SynergyHigh,
			Trigger: func(s *saga.CharacterSnapshot) bool {
				return s.Feats["Martial Arts I"] && !s.Feats["Martial Arts II"]
			},
			FollowUps: []saga.SynergyFollowUp{
				{Name: "Martial Arts II", Kind: saga.FeatureKindFeat, Reason: "continues the Martial Arts chain"},
				{Name: "Pin", Kind: saga.FeatureKindFeat, Reason: "unarmed builds want a grab option"},
			},
		},
		{
			ID:        "point_blank_chain",
			Archetype: "gunslinger",
			Priority:  saga.SynergyHigh,
			Trigger: func(s *saga.CharacterSnapshot) bool {
				return s.Feats["Point-Blank Shot"] && !s.Feats["Precise Shot"]
			},
			FollowUps: []saga.SynergyFollowUp{
				{Name: "Precise Shot", Kind: saga.FeatureKindFeat, Reason: "removes the firing-into-melee penalty"},
			},
		},
		{
			ID:        "force_training_focus",
			Archetype: "mystic",
			Priority:  saga.SynergyMedium,
			Trigger: func(s *saga.CharacterSnapshot) bool {
				return s.Feats[saga.ForceSensitivityFeat] && s.TrainedSkills["use the force"] &&
					!s.Feats["Skill Focus (Use the Force)"]
			},
			FollowUps: []saga.SynergyFollowUp{
				{Name: "Skill Focus (Use the Force)", Kind: saga.FeatureKindFeat, Reason: "most Force checks key off Use the Force"},
			},
		},
		{
			ID:        "dodge_mobility",
			Archetype: "duelist",
			Priority:  saga.SynergyMedium,
			Trigger: func(s *saga.CharacterSnapshot) bool {
				return s.Feats["Dodge"] && !s.Feats["Mobility"]
			},
			FollowUps: []saga.SynergyFollowUp{
				{Name: "Mobility", Kind: saga.FeatureKindFeat, Reason: "Dodge and Mobility cover repositioning together"},
			},
		},
	}
}
