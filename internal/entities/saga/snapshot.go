package saga

import (
	"sort"
	"strings"
)

// CharacterSnapshot is the immutable view of a character the engine
// evaluates against. It is built once per request from the store document
// plus any pending selections and never mutated afterwards.
type CharacterSnapshot struct {
	CharacterID string
	Name        string

	Species       string
	SpeciesTraits map[string]bool
	Droid         bool
	DroidDegree   int32

	Level           int32
	BaseAttackBonus int32
	DarkSideScore   int32
	Abilities       AbilityScores

	HighestAbility      string
	HighestAbilityScore int32

	TrainedSkills map[string]bool
	Feats         map[string]bool
	Talents       map[string]bool
	// TalentsByTree maps tree name to the talents owned in that tree.
	TalentsByTree map[string][]string
	// TalentTraditions maps talent name to its tagged tradition, when set.
	TalentTraditions map[string]string
	Classes          map[string]int32

	ForcePowers     map[string]bool
	ForceTechniques map[string]bool
	ForceSecrets    map[string]bool

	WeaponProficiencies   map[string]bool
	ArmorProficiencies    map[string]bool
	WeaponFocuses         map[string]bool
	WeaponSpecializations map[string]bool

	// OwnedPrereqNames is Feats ∪ Talents, the set prerequisite name
	// lookups run against.
	OwnedPrereqNames map[string]bool

	Archetype  string
	SurveyBias map[string]float64
	Wishlist   []string
}

// PendingSelections holds in-progress choices from the current progression
// session. They are merged into the snapshot's owned sets before any
// evaluation so that picks made earlier in the session count.
type PendingSelections struct {
	Feats   []string      `json:"feats,omitempty"`
	Talents []OwnedTalent `json:"talents,omitempty"`
	ClassID string        `json:"class_id,omitempty"`
	Skills  []string      `json:"skills,omitempty"`
}

// IsEmpty reports whether no pending selections are present.
func (p *PendingSelections) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Feats) == 0 && len(p.Talents) == 0 && p.ClassID == "" && len(p.Skills) == 0
}

// NewCharacterSnapshot builds a snapshot from a store document and pending
// selections. The document is not retained; all data is copied into sets.
func NewCharacterSnapshot(c *Character, pending *PendingSelections) *CharacterSnapshot {
	s := &CharacterSnapshot{
		CharacterID:     c.ID,
		Name:            c.Name,
		Species:         c.Species,
		Droid:           c.Droid,
		DroidDegree:     c.DroidDegree,
		Level:           c.Level,
		BaseAttackBonus: c.BaseAttackBonus,
		DarkSideScore:   c.DarkSideScore,
		Abilities:       c.AbilityScores,

		SpeciesTraits:    toSet(c.SpeciesTraits),
		TrainedSkills:    toLowerSet(c.TrainedSkills),
		Feats:            toSet(c.Feats),
		Talents:          make(map[string]bool, len(c.Talents)),
		TalentsByTree:    make(map[string][]string),
		TalentTraditions: make(map[string]string),
		Classes:          make(map[string]int32, len(c.Classes)),

		ForcePowers:     toSet(c.ForcePowers),
		ForceTechniques: toSet(c.ForceTechniques),
		ForceSecrets:    toSet(c.ForceSecrets),

		WeaponProficiencies:   toSet(c.WeaponProficiencies),
		ArmorProficiencies:    toSet(c.ArmorProficiencies),
		WeaponFocuses:         toSet(c.WeaponFocuses),
		WeaponSpecializations: toSet(c.WeaponSpecializations),

		Archetype:  c.Archetype,
		SurveyBias: copyWeights(c.SurveyBias),
		Wishlist:   append([]string(nil), c.Wishlist...),
	}

	for _, t := range c.Talents {
		s.addTalent(t)
	}
	for _, cl := range c.Classes {
		s.Classes[cl.ClassID] = cl.Level
	}

	if pending != nil {
		for _, f := range pending.Feats {
			s.Feats[f] = true
		}
		for _, t := range pending.Talents {
			s.addTalent(t)
		}
		if pending.ClassID != "" {
			s.Classes[pending.ClassID]++
		}
		for _, sk := range pending.Skills {
			s.TrainedSkills[strings.ToLower(sk)] = true
		}
	}

	s.OwnedPrereqNames = make(map[string]bool, len(s.Feats)+len(s.Talents))
	for f := range s.Feats {
		s.OwnedPrereqNames[f] = true
	}
	for t := range s.Talents {
		s.OwnedPrereqNames[t] = true
	}

	s.HighestAbility, s.HighestAbilityScore = c.AbilityScores.Highest()

	// Keep per-tree talent lists in a stable order for deterministic output.
	for tree := range s.TalentsByTree {
		sort.Strings(s.TalentsByTree[tree])
	}

	return s
}

// HasOwnedFeature reports whether the named feat or talent is owned.
func (s *CharacterSnapshot) HasOwnedFeature(name string) bool {
	return s.OwnedPrereqNames[name]
}

// TalentCountInTree returns how many owned talents belong to the tree,
// excluding the named candidate if it is among them.
func (s *CharacterSnapshot) TalentCountInTree(tree, excludeCandidate string) int {
	count := 0
	for _, name := range s.TalentsByTree[tree] {
		if name == excludeCandidate {
			continue
		}
		count++
	}
	return count
}

// ClassLevelOf returns the level held in a class, 0 if none.
func (s *CharacterSnapshot) ClassLevelOf(classID string) int32 {
	return s.Classes[classID]
}

func (s *CharacterSnapshot) addTalent(t OwnedTalent) {
	if s.Talents[t.Name] {
		return
	}
	s.Talents[t.Name] = true
	if t.Tree != "" {
		s.TalentsByTree[t.Tree] = append(s.TalentsByTree[t.Tree], t.Name)
	}
	if t.Tradition != "" {
		s.TalentTraditions[t.Name] = t.Tradition
	}
}

// toLowerSet normalizes skill names; skill lookups are case-insensitive.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func copyWeights(weights map[string]float64) map[string]float64 {
	if weights == nil {
		return nil
	}
	out := make(map[string]float64, len(weights))
	for k, v := range weights {
		out[k] = v
	}
	return out
}
