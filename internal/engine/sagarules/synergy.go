package sagarules

import (
	"log/slog"
	"sort"

	"github.com/sagaforge/progression-api/internal/content"
	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// Detector matches the fixed synergy rule table against a snapshot.
type Detector struct {
	catalog *content.Catalog
}

// NewDetector creates a synergy detector over the given catalog.
func NewDetector(catalog *content.Catalog) *Detector {
	return &Detector{catalog: catalog}
}

// Active returns the rules whose triggers match, sorted by priority
// descending with ties broken by per-archetype emphasis weight descending.
// One broken trigger never aborts the batch.
func (d *Detector) Active(s *saga.CharacterSnapshot) []*saga.SynergyRule {
	rules := d.catalog.SynergyRules()
	var active []*saga.SynergyRule

	for i := range rules {
		rule := &rules[i]
		if d.triggers(rule, s) {
			active = append(active, rule)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority > active[j].Priority
		}
		return d.catalog.ArchetypeEmphasis(active[i].Archetype) >
			d.catalog.ArchetypeEmphasis(active[j].Archetype)
	})
	return active
}

// ForItem returns the first active rule suggesting the named item, in
// active-rule order, or nil when no rule does.
func (d *Detector) ForItem(name string, kind saga.FeatureKind, s *saga.CharacterSnapshot) (*saga.SynergyRule, *saga.SynergyFollowUp) {
	for _, rule := range d.Active(s) {
		if followUp, ok := rule.SuggestsItem(name, kind); ok {
			return rule, &followUp
		}
	}
	return nil, nil
}

// triggers runs one rule's predicate with panic isolation: a throwing
// trigger means the rule does not match.
func (d *Detector) triggers(rule *saga.SynergyRule, s *saga.CharacterSnapshot) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("synergy trigger panicked", "rule", rule.ID, "panic", r)
			matched = false
		}
	}()
	if rule.Trigger == nil {
		return false
	}
	return rule.Trigger(s)
}
