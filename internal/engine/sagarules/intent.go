package sagarules

import (
	"sort"
	"strings"

	"github.com/sagaforge/progression-api/internal/content"
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// Theme increments by signal source. Fixed: changing one changes every
// profile the analyzer produces.
const (
	incrementFeatureMap  = 0.25
	incrementTreeMember  = 0.2
	incrementClassMap    = 0.15
	incrementKeyword     = 0.1
	incrementSkillMap    = 0.1
	incrementSurveyScale = 0.05
)

// Thresholds for profile summarization.
const (
	primaryThemeFloor    = 0.2
	combatStyleFloor     = 0.2
	forceFocusFloor      = 0.3
	affinityFloor        = 0.1
	affinityNormalizer   = 0.6
	priorityAffinityTopN = 3
)

// IntentAnalyzer infers a character's build direction from weighted
// thematic signals.
type IntentAnalyzer struct {
	catalog *content.Catalog
}

// NewIntentAnalyzer creates an analyzer over the given catalog.
func NewIntentAnalyzer(catalog *content.Catalog) *IntentAnalyzer {
	return &IntentAnalyzer{catalog: catalog}
}

// Analyze builds the full intent profile. Pure; safe to cache keyed on the
// snapshot identity.
func (a *IntentAnalyzer) Analyze(s *saga.CharacterSnapshot) *saga.BuildIntent {
	acc := newThemeAccumulator()
	themes := a.catalog.Themes()

	// Owned features: direct mapping plus keyword substrings. Additive;
	// a feature can score through both paths.
	for _, name := range sortedKeys(s.OwnedPrereqNames) {
		if theme, ok := themes.Features[name]; ok {
			acc.add(theme, incrementFeatureMap)
		}
		lower := strings.ToLower(name)
		for _, keyword := range sortedKeys2(themes.Keywords) {
			if strings.Contains(lower, keyword) {
				acc.add(themes.Keywords[keyword], incrementKeyword)
			}
		}
	}

	// Talent-tree membership scores once per owned talent in the tree.
	for _, tree := range sortedKeysSlice(s.TalentsByTree) {
		if theme, ok := themes.Trees[tree]; ok {
			for range s.TalentsByTree[tree] {
				acc.add(theme, incrementTreeMember)
			}
		}
	}

	for _, skill := range sortedKeys(s.TrainedSkills) {
		if theme, ok := themes.Skills[skill]; ok {
			acc.add(theme, incrementSkillMap)
		}
	}

	for _, classID := range sortedKeysInt32(s.Classes) {
		if theme, ok := themes.Classes[classID]; ok {
			acc.add(theme, incrementClassMap)
		}
	}

	// Optional archetype bias.
	if bias := a.catalog.ArchetypeBias(s.Archetype); bias != nil {
		for _, theme := range sortedKeysFloat(bias) {
			acc.add(theme, bias[theme])
		}
	}

	// Optional mentor-survey bias: positive weights only.
	surveyThemes := a.catalog.Survey().Themes
	for _, dimension := range sortedKeysFloat(s.SurveyBias) {
		weight := s.SurveyBias[dimension]
		if weight <= 0 {
			continue
		}
		if theme, ok := surveyThemes[dimension]; ok {
			acc.add(theme, weight*incrementSurveyScale)
		}
	}

	intent := &saga.BuildIntent{
		ThemeScores: acc.scores,
		ThemeOrder:  acc.order,
	}

	intent.PrimaryThemes = primaryThemes(acc)
	intent.PrestigeAffinities = a.prestigeAffinities(s)
	intent.CombatStyle = combatStyle(acc)
	intent.ForceFocus = acc.scores[saga.ThemeForce] >= forceFocusFloor
	intent.PriorityPrereqs = a.priorityPrereqs(s, intent.PrestigeAffinities)

	return intent
}

// prestigeAffinities scores every prestige class with a declared signal
// table. Classes without a table are simply absent, never an error.
func (a *IntentAnalyzer) prestigeAffinities(s *saga.CharacterSnapshot) []saga.PrestigeAffinity {
	var affinities []saga.PrestigeAffinity

	for _, classID := range a.catalog.PrestigeSignalIDs() {
		table, _ := a.catalog.PrestigeSignals(classID)
		maxScore := table.MaxScore()
		if maxScore == 0 {
			continue
		}

		score := 0
		var matched []string
		for _, feat := range table.Feats {
			if s.Feats[feat] {
				score += table.FeatWeight
				matched = append(matched, feat)
			}
		}
		for _, skill := range table.Skills {
			if s.TrainedSkills[skill] {
				score += table.SkillWeight
				matched = append(matched, skill)
			}
		}
		for _, talent := range table.Talents {
			if s.Talents[talent] {
				score += table.TalentWeight
				matched = append(matched, talent)
			}
		}
		for _, tree := range table.Trees {
			if len(s.TalentsByTree[tree]) > 0 {
				score += table.TalentWeight
				matched = append(matched, tree)
			}
		}
		for _, ability := range table.Abilities {
			if s.Abilities.Get(ability.Ability) >= ability.Min {
				score += table.AbilityWeight
				matched = append(matched, ability.Ability)
			}
		}

		confidence := float64(score) / (float64(maxScore) * affinityNormalizer)
		if confidence > 1 {
			confidence = 1
		}
		if confidence <= affinityFloor {
			continue
		}

		affinities = append(affinities, saga.PrestigeAffinity{
			ClassID:    classID,
			Confidence: confidence,
			Score:      score,
			MaxScore:   maxScore,
			Matched:    matched,
		})
	}

	sort.SliceStable(affinities, func(i, j int) bool {
		return affinities[i].Confidence > affinities[j].Confidence
	})
	return affinities
}

// priorityPrereqs lists the missing feat and skill signals for the top
// affinities, strongest affinity first.
func (a *IntentAnalyzer) priorityPrereqs(s *saga.CharacterSnapshot, affinities []saga.PrestigeAffinity) []saga.PriorityPrereq {
	var prereqs []saga.PriorityPrereq

	top := affinities
	if len(top) > priorityAffinityTopN {
		top = top[:priorityAffinityTopN]
	}

	for _, affinity := range top {
		table, ok := a.catalog.PrestigeSignals(affinity.ClassID)
		if !ok {
			continue
		}
		for _, feat := range table.Feats {
			if !s.Feats[feat] {
				prereqs = append(prereqs, saga.PriorityPrereq{
					Name:       feat,
					Kind:       saga.SignalFeat,
					ClassID:    affinity.ClassID,
					Confidence: affinity.Confidence,
				})
			}
		}
		for _, skill := range table.Skills {
			if !s.TrainedSkills[skill] {
				prereqs = append(prereqs, saga.PriorityPrereq{
					Name:       skill,
					Kind:       saga.SignalSkill,
					ClassID:    affinity.ClassID,
					Confidence: affinity.Confidence,
				})
			}
		}
	}

	sort.SliceStable(prereqs, func(i, j int) bool {
		return prereqs[i].Confidence > prereqs[j].Confidence
	})
	return prereqs
}

// primaryThemes picks the top two themes at or above the floor, ties
// broken by first-insertion order.
func primaryThemes(acc *themeAccumulator) []string {
	type entry struct {
		theme string
		score float64
		index int
	}
	var entries []entry
	for i, theme := range acc.order {
		if acc.scores[theme] >= primaryThemeFloor {
			entries = append(entries, entry{theme, acc.scores[theme], i})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].index < entries[j].index
	})
	if len(entries) > 2 {
		entries = entries[:2]
	}
	primary := make([]string, len(entries))
	for i, e := range entries {
		primary[i] = e.theme
	}
	return primary
}

// combatStyle compares the three combat themes: strict maximum at or
// above the floor wins, tie priority force > ranged > melee, else mixed.
func combatStyle(acc *themeAccumulator) saga.CombatStyle {
	force := acc.scores[saga.ThemeForce]
	ranged := acc.scores[saga.ThemeRanged]
	melee := acc.scores[saga.ThemeMelee]

	switch {
	case force >= combatStyleFloor && force >= ranged && force >= melee:
		return saga.CombatStyleForce
	case ranged >= combatStyleFloor && ranged >= melee:
		return saga.CombatStyleRanged
	case melee >= combatStyleFloor:
		return saga.CombatStyleMelee
	default:
		return saga.CombatStyleMixed
	}
}

// themeAccumulator tracks scores and first-insertion order so downstream
// tie-breaking is deterministic.
type themeAccumulator struct {
	scores map[string]float64
	order  []string
}

func newThemeAccumulator() *themeAccumulator {
	return &themeAccumulator{scores: make(map[string]float64)}
}

func (a *themeAccumulator) add(theme string, increment float64) {
	if _, seen := a.scores[theme]; !seen {
		a.order = append(a.order, theme)
	}
	a.scores[theme] += increment
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys2(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysSlice(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysInt32(m map[string]int32) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysFloat(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
