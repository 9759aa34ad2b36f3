package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// document is the yaml shape of a content file. Synergy rules are code
// (trigger predicates), so they always come from the compiled-in table;
// a content file can replace everything else.
type document struct {
	Features          []featureSpec                 `yaml:"features"`
	Classes           []classSpec                   `yaml:"classes"`
	PrestigeSignals   []prestigeSpec                `yaml:"prestige_signals"`
	TreeAccess        []treeAccessSpec              `yaml:"tree_access"`
	Themes            themesSpec                    `yaml:"themes"`
	Survey            surveySpec                    `yaml:"survey"`
	ArchetypeBias     map[string]map[string]float64 `yaml:"archetype_bias"`
	ArchetypeEmphasis map[string]float64            `yaml:"archetype_emphasis"`
}

type featureSpec struct {
	Name              string      `yaml:"name"`
	Kind              string      `yaml:"kind"`
	Tree              string      `yaml:"tree,omitempty"`
	Prerequisites     *prereqSpec `yaml:"prerequisites,omitempty"`
	Legacy            string      `yaml:"legacy,omitempty"`
	RestrictedSpecies string      `yaml:"restricted_species,omitempty"`
	BonusFeatClasses  []string    `yaml:"bonus_feat_classes,omitempty"`
	MartialArtsStyle  bool        `yaml:"martial_arts_style,omitempty"`
	Themes            []string    `yaml:"themes,omitempty"`
}

type classSpec struct {
	ID            string      `yaml:"id"`
	Name          string      `yaml:"name"`
	Category      string      `yaml:"category"`
	Themes        []string    `yaml:"themes,omitempty"`
	Prerequisites *prereqSpec `yaml:"prerequisites,omitempty"`
	Legacy        string      `yaml:"legacy,omitempty"`
	BonusFeats    []string    `yaml:"bonus_feats,omitempty"`
}

type prestigeSpec struct {
	ClassID       string              `yaml:"class_id"`
	Feats         []string            `yaml:"feats,omitempty"`
	FeatWeight    int                 `yaml:"feat_weight"`
	Skills        []string            `yaml:"skills,omitempty"`
	SkillWeight   int                 `yaml:"skill_weight"`
	Talents       []string            `yaml:"talents,omitempty"`
	Trees         []string            `yaml:"trees,omitempty"`
	TalentWeight  int                 `yaml:"talent_weight"`
	Abilities     []abilitySignalSpec `yaml:"abilities,omitempty"`
	AbilityWeight int                 `yaml:"ability_weight"`
}

type abilitySignalSpec struct {
	Ability string `yaml:"ability"`
	Min     int32  `yaml:"min"`
}

type treeAccessSpec struct {
	Tree      string `yaml:"tree"`
	Kind      string `yaml:"kind"`
	Tradition string `yaml:"tradition,omitempty"`
}

type themesSpec struct {
	Features map[string]string `yaml:"features,omitempty"`
	Keywords map[string]string `yaml:"keywords,omitempty"`
	Trees    map[string]string `yaml:"trees,omitempty"`
	Skills   map[string]string `yaml:"skills,omitempty"`
	Classes  map[string]string `yaml:"classes,omitempty"`
}

type surveySpec struct {
	Themes   map[string]string   `yaml:"themes,omitempty"`
	Keywords map[string][]string `yaml:"keywords,omitempty"`
}

type prereqSpec struct {
	Mode       string          `yaml:"mode"`
	Conditions []conditionSpec `yaml:"conditions"`
}

// conditionSpec is the flat yaml encoding of the Condition sum type. Kind
// selects which fields matter; compile rejects unknown kinds.
type conditionSpec struct {
	Kind string `yaml:"kind"`

	Feature string `yaml:"feature,omitempty"`
	Tree    string `yaml:"tree,omitempty"`
	Min     int    `yaml:"min,omitempty"`
	Ability string `yaml:"ability,omitempty"`
	Skill   string `yaml:"skill,omitempty"`
	Species string `yaml:"species,omitempty"`
	Trait   string `yaml:"trait,omitempty"`

	Op    string     `yaml:"op,omitempty"`
	Left  *valueSpec `yaml:"left,omitempty"`
	Right *valueSpec `yaml:"right,omitempty"`

	State  string `yaml:"state,omitempty"`
	Degree int32  `yaml:"degree,omitempty"`

	Category string `yaml:"category,omitempty"`
	Rank     string `yaml:"rank,omitempty"`
	Group    string `yaml:"group,omitempty"`

	Class         string `yaml:"class,omitempty"`
	Name          string `yaml:"name,omitempty"`
	ForceCategory string `yaml:"force_category,omitempty"`
	Pattern       string `yaml:"pattern,omitempty"`

	AnyOf []conditionSpec `yaml:"any_of,omitempty"`
}

type valueSpec struct {
	Kind    string `yaml:"kind"`
	Ability string `yaml:"ability,omitempty"`
	Literal int32  `yaml:"literal,omitempty"`
}

// Load reads a yaml content file and builds a Catalog from it, keeping the
// compiled-in synergy rule table.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied content path
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse content file: %w", err)
	}

	tables, err := doc.toTables()
	if err != nil {
		return nil, err
	}
	tables.SynergyRules = defaultSynergyRules()
	return New(tables), nil
}

func (d *document) toTables() (*Tables, error) {
	tables := &Tables{
		Themes: ThemeMaps{
			Features: d.Themes.Features,
			Keywords: d.Themes.Keywords,
			Trees:    d.Themes.Trees,
			Skills:   d.Themes.Skills,
			Classes:  d.Themes.Classes,
		},
		Survey: SurveyMaps{
			Themes:   d.Survey.Themes,
			Keywords: d.Survey.Keywords,
		},
		ArchetypeBias:     d.ArchetypeBias,
		ArchetypeEmphasis: d.ArchetypeEmphasis,
	}

	for _, f := range d.Features {
		prereqs, err := compilePrereqs(f.Prerequisites)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", f.Name, err)
		}
		tables.Features = append(tables.Features, FeatureDefinition{
			Name:              f.Name,
			Kind:              saga.FeatureKind(f.Kind),
			Tree:              f.Tree,
			Prerequisites:     prereqs,
			LegacyPrereq:      f.Legacy,
			RestrictedSpecies: f.RestrictedSpecies,
			BonusFeatClasses:  f.BonusFeatClasses,
			MartialArtsStyle:  f.MartialArtsStyle,
			Themes:            f.Themes,
		})
	}

	for _, cl := range d.Classes {
		prereqs, err := compilePrereqs(cl.Prerequisites)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", cl.ID, err)
		}
		tables.Classes = append(tables.Classes, ClassDefinition{
			ID:            cl.ID,
			Name:          cl.Name,
			Category:      saga.ClassCategory(cl.Category),
			Themes:        cl.Themes,
			Prerequisites: prereqs,
			LegacyPrereq:  cl.Legacy,
			BonusFeats:    cl.BonusFeats,
		})
	}

	for _, p := range d.PrestigeSignals {
		table := PrestigeSignalTable{
			ClassID:       p.ClassID,
			Feats:         p.Feats,
			FeatWeight:    p.FeatWeight,
			Skills:        p.Skills,
			SkillWeight:   p.SkillWeight,
			Talents:       p.Talents,
			Trees:         p.Trees,
			TalentWeight:  p.TalentWeight,
			AbilityWeight: p.AbilityWeight,
		}
		for _, a := range p.Abilities {
			table.Abilities = append(table.Abilities, AbilitySignal{Ability: a.Ability, Min: a.Min})
		}
		tables.PrestigeSignals = append(tables.PrestigeSignals, table)
	}

	for _, t := range d.TreeAccess {
		tables.TreeAccess = append(tables.TreeAccess, TreeAccessRule{
			Tree:      t.Tree,
			Kind:      TreeAccessKind(t.Kind),
			Tradition: t.Tradition,
		})
	}

	return tables, nil
}

func compilePrereqs(spec *prereqSpec) (*saga.PrerequisiteSet, error) {
	if spec == nil {
		return nil, nil
	}

	mode := saga.CombineAll
	if spec.Mode == string(saga.CombineAny) {
		mode = saga.CombineAny
	}

	conditions := make([]saga.Condition, 0, len(spec.Conditions))
	for i, cs := range spec.Conditions {
		cond, err := compileCondition(cs)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		conditions = append(conditions, cond)
	}

	return &saga.PrerequisiteSet{Mode: mode, Conditions: conditions}, nil
}

func compileCondition(cs conditionSpec) (saga.Condition, error) {
	switch cs.Kind {
	case "feature":
		return saga.FeatureOwned{Feature: cs.Feature}, nil
	case "tree_talent_count":
		return saga.TreeTalentCount{Tree: cs.Tree, Min: cs.Min}, nil
	case "ability":
		return saga.AbilityMinimum{Ability: cs.Ability, Min: int32(cs.Min)}, nil
	case "skill":
		return saga.SkillTrained{Skill: cs.Skill}, nil
	case "attack_bonus":
		return saga.AttackBonusMinimum{Min: int32(cs.Min)}, nil
	case "level":
		return saga.LevelMinimum{Min: int32(cs.Min)}, nil
	case "trait_comparison":
		left, err := compileValue(cs.Left)
		if err != nil {
			return nil, err
		}
		right, err := compileValue(cs.Right)
		if err != nil {
			return nil, err
		}
		return saga.TraitComparison{Left: left, Op: saga.CompareOp(cs.Op), Right: right}, nil
	case "species":
		return saga.SpeciesMatch{Species: cs.Species}, nil
	case "species_trait":
		return saga.SpeciesTrait{Trait: cs.Trait}, nil
	case "droid":
		return saga.DroidRequirement{State: saga.DroidState(cs.State), Degree: cs.Degree}, nil
	case "proficiency":
		return saga.Proficiency{
			Category: saga.ProficiencyCategory(cs.Category),
			Rank:     saga.ProficiencyRank(cs.Rank),
			Group:    cs.Group,
		}, nil
	case "class_level":
		return saga.ClassLevelMinimum{Class: cs.Class, Min: int32(cs.Min)}, nil
	case "force_power", "force_technique", "force_secret":
		kind := saga.ForcePower
		switch cs.Kind {
		case "force_technique":
			kind = saga.ForceTechnique
		case "force_secret":
			kind = saga.ForceSecret
		}
		return saga.ForcePossession{Kind: kind, Name: cs.Name, Category: cs.ForceCategory, Min: cs.Min}, nil
	case "pattern":
		return saga.TextPattern{Pattern: cs.Pattern}, nil
	case "any_of":
		subs := make([]saga.Condition, 0, len(cs.AnyOf))
		for i, sub := range cs.AnyOf {
			cond, err := compileCondition(sub)
			if err != nil {
				return nil, fmt.Errorf("any_of %d: %w", i, err)
			}
			subs = append(subs, cond)
		}
		return saga.AnyOf{Conditions: subs}, nil
	default:
		return nil, fmt.Errorf("unknown condition kind %q", cs.Kind)
	}
}

func compileValue(spec *valueSpec) (saga.ValueRef, error) {
	if spec == nil {
		return saga.ValueRef{}, fmt.Errorf("trait comparison value is required")
	}
	switch spec.Kind {
	case "dark_side_score":
		return saga.ValueRef{Kind: saga.ValueDarkSideScore}, nil
	case "ability":
		return saga.ValueRef{Kind: saga.ValueAbility, Ability: spec.Ability}, nil
	case "literal":
		return saga.ValueRef{Kind: saga.ValueLiteral, Literal: spec.Literal}, nil
	default:
		return saga.ValueRef{}, fmt.Errorf("unknown value kind %q", spec.Kind)
	}
}
