package saga

// BuildIntent is the inferred direction of a character's build.
type BuildIntent struct {
	// ThemeScores accumulates uncapped, additive evidence per theme.
	ThemeScores map[string]float64 `json:"theme_scores"`
	// ThemeOrder records first-insertion order of theme keys so ties
	// break deterministically.
	ThemeOrder []string `json:"theme_order"`
	// PrimaryThemes holds the top two themes scoring at least 0.2.
	PrimaryThemes []string `json:"primary_themes"`
	// PrestigeAffinities is sorted by confidence descending and only
	// contains entries with confidence above 0.1.
	PrestigeAffinities []PrestigeAffinity `json:"prestige_affinities"`
	CombatStyle        CombatStyle        `json:"combat_style"`
	ForceFocus         bool               `json:"force_focus"`
	// PriorityPrereqs lists missing feat/skill signals for the top
	// prestige affinities, sorted by affinity confidence descending.
	PriorityPrereqs []PriorityPrereq `json:"priority_prereqs"`
}

// Score returns a theme's accumulated score, 0 if the theme never scored.
func (b *BuildIntent) Score(theme string) float64 {
	return b.ThemeScores[theme]
}

// TopAffinity returns the strongest prestige affinity, or nil.
func (b *BuildIntent) TopAffinity() *PrestigeAffinity {
	if len(b.PrestigeAffinities) == 0 {
		return nil
	}
	return &b.PrestigeAffinities[0]
}

// PrestigeAffinity scores how strongly the build points at one prestige
// class.
type PrestigeAffinity struct {
	ClassID string `json:"class_id"`
	// Confidence is min(1, score/(maxScore*0.6)), in [0,1].
	Confidence float64 `json:"confidence"`
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	// Matched lists the signal names that contributed to the score.
	Matched []string `json:"matched"`
}

// PriorityPrereq is a missing signal for a prestige target the build is
// already leaning toward.
type PriorityPrereq struct {
	Name       string     `json:"name"`
	Kind       SignalKind `json:"kind"`
	ClassID    string     `json:"class_id"`
	Confidence float64    `json:"confidence"`
}

// SignalKind tags what sort of signal a priority prerequisite is.
type SignalKind string

// Signal kinds
const (
	SignalFeat  SignalKind = "feat"
	SignalSkill SignalKind = "skill"
)
