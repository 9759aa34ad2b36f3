package content

import (
	"sort"

	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// Tables is the raw input a Catalog is built from.
type Tables struct {
	Features        []FeatureDefinition
	Classes         []ClassDefinition
	PrestigeSignals []PrestigeSignalTable
	TreeAccess      []TreeAccessRule
	Themes          ThemeMaps
	Survey          SurveyMaps
	// ArchetypeBias maps archetype -> theme -> fixed increment.
	ArchetypeBias map[string]map[string]float64
	// ArchetypeEmphasis weights synergy tie-breaking per archetype.
	ArchetypeEmphasis map[string]float64
	SynergyRules      []saga.SynergyRule
}

// Catalog is the immutable, indexed view of the content tables.
type Catalog struct {
	features     map[string]*FeatureDefinition
	featureNames []string

	classes  map[string]*ClassDefinition
	classIDs []string

	prestigeSignals map[string]*PrestigeSignalTable
	prestigeIDs     []string

	treeAccess map[string]TreeAccessRule

	themes            ThemeMaps
	survey            SurveyMaps
	archetypeBias     map[string]map[string]float64
	archetypeEmphasis map[string]float64
	synergyRules      []saga.SynergyRule
}

// New indexes the tables into a Catalog. Lookup lists come back in sorted
// order so downstream output is deterministic regardless of source order.
func New(tables *Tables) *Catalog {
	c := &Catalog{
		features:          make(map[string]*FeatureDefinition, len(tables.Features)),
		classes:           make(map[string]*ClassDefinition, len(tables.Classes)),
		prestigeSignals:   make(map[string]*PrestigeSignalTable, len(tables.PrestigeSignals)),
		treeAccess:        make(map[string]TreeAccessRule, len(tables.TreeAccess)),
		themes:            tables.Themes,
		survey:            tables.Survey,
		archetypeBias:     tables.ArchetypeBias,
		archetypeEmphasis: tables.ArchetypeEmphasis,
		synergyRules:      tables.SynergyRules,
	}

	for i := range tables.Features {
		f := &tables.Features[i]
		if _, dup := c.features[f.Name]; dup {
			continue
		}
		c.features[f.Name] = f
		c.featureNames = append(c.featureNames, f.Name)
	}
	sort.Strings(c.featureNames)

	for i := range tables.Classes {
		cl := &tables.Classes[i]
		if _, dup := c.classes[cl.ID]; dup {
			continue
		}
		c.classes[cl.ID] = cl
		c.classIDs = append(c.classIDs, cl.ID)
	}
	sort.Strings(c.classIDs)

	for i := range tables.PrestigeSignals {
		t := &tables.PrestigeSignals[i]
		if _, dup := c.prestigeSignals[t.ClassID]; dup {
			continue
		}
		c.prestigeSignals[t.ClassID] = t
		c.prestigeIDs = append(c.prestigeIDs, t.ClassID)
	}
	sort.Strings(c.prestigeIDs)

	for _, rule := range tables.TreeAccess {
		c.treeAccess[rule.Tree] = rule
	}

	return c
}

// Feature looks up a feature definition by name.
func (c *Catalog) Feature(name string) (*FeatureDefinition, bool) {
	f, ok := c.features[name]
	return f, ok
}

// FeatureNames returns all feature names, sorted.
func (c *Catalog) FeatureNames() []string {
	return c.featureNames
}

// Class looks up a class definition by ID.
func (c *Catalog) Class(id string) (*ClassDefinition, bool) {
	cl, ok := c.classes[id]
	return cl, ok
}

// ClassIDs returns all class IDs, sorted.
func (c *Catalog) ClassIDs() []string {
	return c.classIDs
}

// PrestigeSignals looks up the signal table for a prestige class. Missing
// tables are "no constraint" for the caller, never an error.
func (c *Catalog) PrestigeSignals(classID string) (*PrestigeSignalTable, bool) {
	t, ok := c.prestigeSignals[classID]
	return t, ok
}

// PrestigeSignalIDs returns the class IDs with signal tables, sorted.
func (c *Catalog) PrestigeSignalIDs() []string {
	return c.prestigeIDs
}

// TreeAccess returns the access rule for a talent tree.
func (c *Catalog) TreeAccess(tree string) (TreeAccessRule, bool) {
	rule, ok := c.treeAccess[tree]
	return rule, ok
}

// Themes returns the signal-to-theme maps.
func (c *Catalog) Themes() ThemeMaps {
	return c.themes
}

// Survey returns the mentor-survey wiring.
func (c *Catalog) Survey() SurveyMaps {
	return c.survey
}

// ArchetypeBias returns the per-theme increments for an archetype.
func (c *Catalog) ArchetypeBias(archetype string) map[string]float64 {
	return c.archetypeBias[archetype]
}

// ArchetypeEmphasis returns the synergy tie-break weight for an archetype.
func (c *Catalog) ArchetypeEmphasis(archetype string) float64 {
	return c.archetypeEmphasis[archetype]
}

// SynergyRules returns the fixed combo rule table.
func (c *Catalog) SynergyRules() []saga.SynergyRule {
	return c.synergyRules
}
