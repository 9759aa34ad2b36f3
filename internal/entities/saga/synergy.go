package saga

// SynergyPriority orders synergy rules; higher fires first.
type SynergyPriority int

// Synergy priorities
const (
	SynergyLow SynergyPriority = iota
	SynergyMedium
	SynergyHigh
	SynergyCritical
)

// String returns the lowercase priority name.
func (p SynergyPriority) String() string {
	switch p {
	case SynergyCritical:
		return "critical"
	case SynergyHigh:
		return "high"
	case SynergyMedium:
		return "medium"
	default:
		return "low"
	}
}

// SynergyRule is a declarative "if you have X, you probably want Y" combo.
// Trigger must be a pure predicate over the snapshot; a panic inside one
// trigger is isolated by the detector and treated as non-matching.
type SynergyRule struct {
	ID        string
	Archetype string
	Priority  SynergyPriority
	Trigger   func(*CharacterSnapshot) bool
	FollowUps []SynergyFollowUp
}

// SynergyFollowUp names one suggested next pick for an active combo.
type SynergyFollowUp struct {
	Name   string
	Kind   FeatureKind
	Reason string
}

// SuggestsItem reports whether the rule suggests the named item of the
// given kind, returning the matching follow-up.
func (r *SynergyRule) SuggestsItem(name string, kind FeatureKind) (SynergyFollowUp, bool) {
	for _, f := range r.FollowUps {
		if f.Name == name && f.Kind == kind {
			return f, true
		}
	}
	return SynergyFollowUp{}, false
}
