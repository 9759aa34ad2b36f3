package sagarules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// LegacyParse is the normalizer's output: a structured prerequisite set
// plus the segments no rule recognized. Unrecognized segments are dropped
// from evaluation (treated as satisfied) — the observed behavior of the
// legacy data path, kept as-is; callers may log them.
type LegacyParse struct {
	Set          *saga.PrerequisiteSet
	Unrecognized []string
}

var (
	segmentSplitRe = regexp.MustCompile(`(?i)\s*(?:[,;]|\band\b)\s*`)

	abilityRe = regexp.MustCompile(`(?i)^(strength|str|dexterity|dex|constitution|con|intelligence|int|wisdom|wis|charisma|cha)\s+(\d+)$`)
	babRe     = regexp.MustCompile(`(?i)^(?:base attack bonus|bab)\s*\+\s*(\d+)$`)
	levelRe   = regexp.MustCompile(`(?i)^(?:(?:character\s+)?level\s+(\d+)|(\d+)(?:st|nd|rd|th)\s+level)$`)
	trainedRe = regexp.MustCompile(`(?i)^trained in\s+(.+)$`)

	forceSensitiveRe = regexp.MustCompile(`(?i)^force[\s-]sensitiv(?:e|ity)$`)
	forceSecretRe    = regexp.MustCompile(`(?i)^(?:(\d+|any)\s+)?force secrets?$`)
	forceTechniqueRe = regexp.MustCompile(`(?i)^(?:(\d+|any)\s+)?force techniques?$`)

	droidRe    = regexp.MustCompile(`(?i)^droid$`)
	nonDroidRe = regexp.MustCompile(`(?i)^non[\s-]?droid$`)

	weaponProfRe = regexp.MustCompile(`(?i)^(?:weapon proficiency|proficient with)\s*\(?\s*([^)]+?)\s*\)?$`)
	armorProfRe  = regexp.MustCompile(`(?i)^armor proficiency\s*\(?\s*([^)]+?)\s*\)?$`)

	// Bare feature names in rulebook text start with a capital and stay
	// short; anything else is prose the classifier cannot type.
	bareFeatureRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9'/()\- ]*$`)
)

// abilityAliases maps short ability names to canonical ones.
var abilityAliases = map[string]string{
	"str": saga.AbilityStrength, "strength": saga.AbilityStrength,
	"dex": saga.AbilityDexterity, "dexterity": saga.AbilityDexterity,
	"con": saga.AbilityConstitution, "constitution": saga.AbilityConstitution,
	"int": saga.AbilityIntelligence, "intelligence": saga.AbilityIntelligence,
	"wis": saga.AbilityWisdom, "wisdom": saga.AbilityWisdom,
	"cha": saga.AbilityCharisma, "charisma": saga.AbilityCharisma,
}

// knownSpecies is the fixed species vocabulary the classifier recognizes.
var knownSpecies = map[string]string{
	"human": "Human", "wookiee": "Wookiee", "twi'lek": "Twi'lek",
	"bothan": "Bothan", "duros": "Duros", "zabrak": "Zabrak",
	"rodian": "Rodian", "trandoshan": "Trandoshan",
	"mon calamari": "Mon Calamari", "gungan": "Gungan",
	"ithorian": "Ithorian", "kel dor": "Kel Dor", "cerean": "Cerean",
}

// ParseLegacy normalizes an unstructured prerequisite string into typed
// conditions. Segmentation splits on commas, semicolons, and "and"; each
// segment is classified independently. The result always uses AND mode —
// OR wording inside one segment becomes a nested AnyOf.
func ParseLegacy(text string) *LegacyParse {
	parse := &LegacyParse{
		Set: &saga.PrerequisiteSet{Mode: saga.CombineAll},
	}
	if strings.TrimSpace(text) == "" {
		return parse
	}

	for _, segment := range segmentSplitRe.Split(text, -1) {
		segment = strings.TrimSpace(strings.Trim(segment, "."))
		if segment == "" {
			continue
		}
		if cond, ok := classifySegment(segment); ok {
			parse.Set.Conditions = append(parse.Set.Conditions, cond)
		} else {
			parse.Unrecognized = append(parse.Unrecognized, segment)
		}
	}
	return parse
}

// classifySegment types one segment via the fixed keyword/regex rules.
// Order matters: specific patterns run before the bare-feature fallback.
func classifySegment(segment string) (saga.Condition, bool) {
	// OR wording becomes a nested group of the recognized alternatives.
	if strings.Contains(strings.ToLower(segment), " or ") {
		return classifyOrPhrase(segment)
	}

	if m := abilityRe.FindStringSubmatch(segment); m != nil {
		score, _ := strconv.Atoi(m[2])
		return saga.AbilityMinimum{
			Ability: abilityAliases[strings.ToLower(m[1])],
			Min:     int32(score),
		}, true
	}

	if m := babRe.FindStringSubmatch(segment); m != nil {
		bonus, _ := strconv.Atoi(m[1])
		return saga.AttackBonusMinimum{Min: int32(bonus)}, true
	}

	if m := levelRe.FindStringSubmatch(segment); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		level, _ := strconv.Atoi(raw)
		return saga.LevelMinimum{Min: int32(level)}, true
	}

	if m := trainedRe.FindStringSubmatch(segment); m != nil {
		return saga.SkillTrained{Skill: strings.ToLower(strings.TrimSpace(m[1]))}, true
	}

	if forceSensitiveRe.MatchString(segment) {
		return saga.FeatureOwned{Feature: saga.ForceSensitivityFeat}, true
	}

	if m := forceSecretRe.FindStringSubmatch(segment); m != nil {
		return saga.ForcePossession{Kind: saga.ForceSecret, Min: legacyCount(m[1])}, true
	}

	if m := forceTechniqueRe.FindStringSubmatch(segment); m != nil {
		return saga.ForcePossession{Kind: saga.ForceTechnique, Min: legacyCount(m[1])}, true
	}

	if droidRe.MatchString(segment) {
		return saga.DroidRequirement{State: saga.DroidRequired}, true
	}
	if nonDroidRe.MatchString(segment) {
		return saga.DroidRequirement{State: saga.DroidExcluded}, true
	}

	if m := armorProfRe.FindStringSubmatch(segment); m != nil {
		return saga.Proficiency{
			Category: saga.ProficiencyArmor,
			Rank:     saga.RankProficient,
			Group:    strings.ToLower(m[1]),
		}, true
	}
	if m := weaponProfRe.FindStringSubmatch(segment); m != nil {
		return saga.Proficiency{
			Category: saga.ProficiencyWeapon,
			Rank:     saga.RankProficient,
			Group:    strings.ToLower(m[1]),
		}, true
	}

	if canonical, ok := knownSpecies[strings.ToLower(segment)]; ok {
		return saga.SpeciesMatch{Species: canonical}, true
	}

	// Bare feature name fallback. Prose-looking segments fall out here
	// and are dropped by the caller.
	if bareFeatureRe.MatchString(segment) && len(strings.Fields(segment)) <= 6 {
		return saga.FeatureOwned{Feature: segment}, true
	}

	return nil, false
}

// classifyOrPhrase splits "X or Y" wording and groups the recognized
// alternatives. If no alternative is recognized, the whole segment is
// unrecognized.
func classifyOrPhrase(segment string) (saga.Condition, bool) {
	parts := regexp.MustCompile(`(?i)\s+or\s+`).Split(segment, -1)
	var alternatives []saga.Condition
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if cond, ok := classifySegment(part); ok {
			alternatives = append(alternatives, cond)
		}
	}
	if len(alternatives) == 0 {
		return nil, false
	}
	if len(alternatives) == 1 {
		return alternatives[0], true
	}
	return saga.AnyOf{Conditions: alternatives}, true
}

func legacyCount(raw string) int {
	if raw == "" || strings.EqualFold(raw, "any") {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
