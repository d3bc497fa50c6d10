package ranking

import "github.com/jonathan/candidate-matcher/internal/parsing"

// SkillMatcher reduces a skill to the key used for comparison. Two skills
// match when their keys are equal.
type SkillMatcher interface {
	Canonical(skill string) string
}

// ExactMatcher matches skills that are identical after normalization
type ExactMatcher struct{}

// Canonical implements SkillMatcher
func (ExactMatcher) Canonical(skill string) string {
	return parsing.NormalizeSkill(skill)
}

// DefaultSynonyms maps common aliases to one canonical skill name
var DefaultSynonyms = map[string]string{
	"golang":                "go",
	"js":                    "javascript",
	"ecmascript":            "javascript",
	"ts":                    "typescript",
	"k8s":                   "kubernetes",
	"postgres":              "postgresql",
	"psql":                  "postgresql",
	"reactjs":               "react",
	"react.js":              "react",
	"nodejs":                "node.js",
	"node":                  "node.js",
	"vuejs":                 "vue",
	"vue.js":                "vue",
	"amazon web services":   "aws",
	"google cloud platform": "gcp",
	"google cloud":          "gcp",
	"microsoft azure":       "azure",
	"py":                    "python",
	"python3":               "python",
	"ml":                    "machine learning",
	"tf":                    "terraform",
}

// SynonymMatcher matches skills through an alias table after normalization
type SynonymMatcher struct {
	synonyms map[string]string
}

// NewSynonymMatcher creates a matcher from alias → canonical pairs. Both sides
// are normalized; a nil map uses DefaultSynonyms.
func NewSynonymMatcher(synonyms map[string]string) *SynonymMatcher {
	if synonyms == nil {
		synonyms = DefaultSynonyms
	}
	normalized := make(map[string]string, len(synonyms))
	for alias, canonical := range synonyms {
		a, c := parsing.NormalizeSkill(alias), parsing.NormalizeSkill(canonical)
		if a == "" || c == "" {
			continue
		}
		normalized[a] = c
	}
	return &SynonymMatcher{synonyms: normalized}
}

// Canonical implements SkillMatcher
func (m *SynonymMatcher) Canonical(skill string) string {
	normalized := parsing.NormalizeSkill(skill)
	if canonical, ok := m.synonyms[normalized]; ok {
		return canonical
	}
	return normalized
}
