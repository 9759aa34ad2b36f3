// Package saga implements the Saga-edition progression entities.
package saga

// Character is the raw character document supplied by the character store.
// NOTE: This is a data-only struct. All eligibility and ranking logic lives
// in the engine, which consumes an immutable CharacterSnapshot instead.
type Character struct {
	ID       string
	PlayerID string
	Name     string

	Species       string
	SpeciesTraits []string
	Droid         bool
	DroidDegree   int32

	Level           int32
	BaseAttackBonus int32
	DarkSideScore   int32
	AbilityScores   AbilityScores

	TrainedSkills []string
	Feats         []string
	Talents       []OwnedTalent
	Classes       []ClassLevel

	ForcePowers     []string
	ForceTechniques []string
	ForceSecrets    []string

	WeaponProficiencies   []string
	ArmorProficiencies    []string
	WeaponFocuses         []string
	WeaponSpecializations []string

	// Archetype is the applied template, if any (biases build intent).
	Archetype string
	// SurveyBias holds mentor-survey dimension weights, if the player
	// completed one.
	SurveyBias map[string]float64
	// Wishlist holds player-designated long-term acquisition goals.
	Wishlist []string

	CreatedAt int64
	UpdatedAt int64
}

// AbilityScores holds the six ability scores.
type AbilityScores struct {
	Strength     int32 `json:"strength"`
	Dexterity    int32 `json:"dexterity"`
	Constitution int32 `json:"constitution"`
	Intelligence int32 `json:"intelligence"`
	Wisdom       int32 `json:"wisdom"`
	Charisma     int32 `json:"charisma"`
}

// Get returns the score for a named ability, or 0 for an unknown name.
func (a AbilityScores) Get(name string) int32 {
	switch name {
	case AbilityStrength:
		return a.Strength
	case AbilityDexterity:
		return a.Dexterity
	case AbilityConstitution:
		return a.Constitution
	case AbilityIntelligence:
		return a.Intelligence
	case AbilityWisdom:
		return a.Wisdom
	case AbilityCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// Highest returns the single highest-scoring ability. Ties resolve in
// rulebook order (Strength first).
func (a AbilityScores) Highest() (string, int32) {
	best := AbilityNames[0]
	bestScore := a.Get(best)
	for _, name := range AbilityNames[1:] {
		if score := a.Get(name); score > bestScore {
			best = name
			bestScore = score
		}
	}
	return best, bestScore
}

// OwnedTalent is a talent the character has taken, tagged with its tree.
type OwnedTalent struct {
	Name string `json:"name"`
	Tree string `json:"tree,omitempty"`
	// Tradition is set for talents granted by a Force tradition.
	Tradition string `json:"tradition,omitempty"`
}

// ClassLevel records levels held in a single class.
type ClassLevel struct {
	ClassID string
	Level   int32
}
