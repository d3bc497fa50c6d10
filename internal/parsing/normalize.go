package parsing

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// skillStopPhrases are lead-ins stripped from the front of a skill token.
// Longer phrases come first so "working knowledge of" wins over "knowledge of".
var skillStopPhrases = []string{
	"good working knowledge of",
	"working knowledge of",
	"deep understanding of",
	"good understanding of",
	"solid understanding of",
	"strong understanding of",
	"hands-on experience with",
	"hands on experience with",
	"professional experience with",
	"understanding of",
	"proficient in",
	"proficient with",
	"proficiency in",
	"proficiency with",
	"experienced in",
	"experienced with",
	"experience in",
	"experience with",
	"experience using",
	"expertise in",
	"expertise with",
	"expert in",
	"knowledge of",
	"familiar with",
	"familiarity with",
	"skilled in",
	"skilled with",
	"ability to use",
	"excellent",
	"advanced",
	"strong",
	"solid",
	"good",
	"basic",
}

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	endorsementRe   = regexp.MustCompile(`^(?:\d+\+?\s+endorsements?|endorsed by .*|endorsement.*)$`)
	skillSplitRe    = regexp.MustCompile(`[,;|\n•·●▪]`)
)

// skillEdgeCutset is trimmed from both ends of a skill; + and # survive
// because they are meaningful in names like C++ and C#.
const skillEdgeCutset = " \t,;:|*-–—\"'`[]{}!?"

// FoldText applies Unicode compatibility normalization, strips combining
// marks, lower-cases, and collapses whitespace. A fresh transformer is built
// per call because transform chains are not safe for concurrent use.
func FoldText(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(folded, " "))
}

// NormalizeSkill canonicalizes a skill token for exact matching: case and
// whitespace are normalized and stop-phrases such as "proficient in" are
// removed. Returns "" when nothing meaningful remains.
func NormalizeSkill(skill string) string {
	normalized := FoldText(skill)
	if normalized == "" {
		return ""
	}

	normalized = parentheticalRe.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(whitespaceRe.ReplaceAllString(normalized, " "))
	normalized = strings.Trim(normalized, skillEdgeCutset)
	normalized = strings.TrimRight(normalized, ".")

	for stripped := true; stripped; {
		stripped = false
		for _, phrase := range skillStopPhrases {
			if normalized == phrase {
				return ""
			}
			if strings.HasPrefix(normalized, phrase+" ") {
				normalized = strings.TrimSpace(strings.TrimPrefix(normalized, phrase))
				stripped = true
				break
			}
		}
	}

	normalized = strings.Trim(normalized, skillEdgeCutset)
	if endorsementRe.MatchString(normalized) {
		return ""
	}
	return normalized
}

// TokenizeSkills splits a skills fragment on commas, semicolons, pipes,
// bullets and newlines and normalizes each token. Duplicates after
// normalization are dropped; first occurrence order is kept.
func TokenizeSkills(fragment string) []string {
	parts := skillSplitRe.Split(fragment, -1)
	return DedupeSkills(parts)
}

// DedupeSkills normalizes each skill and removes empties and exact duplicates
func DedupeSkills(skills []string) []string {
	result := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		normalized := NormalizeSkill(skill)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

// SkillSet returns the normalized, deduplicated skills in sorted order
func SkillSet(skills []string) []string {
	set := DedupeSkills(skills)
	sort.Strings(set)
	return set
}
