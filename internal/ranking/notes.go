package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Explain creates a brief human-readable explanation of a match result
func Explain(r types.MatchResult) string {
	var parts []string

	switch {
	case len(r.MatchedRequired) == 0 && len(r.MissingRequired) == 0:
		parts = append(parts, "No required skills listed")
	case len(r.MatchedRequired) == 0:
		parts = append(parts, "No required skill matches")
	case r.SkillScore >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", strings.Join(r.MatchedRequired, ", ")))
	case r.SkillScore >= 0.4:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", strings.Join(r.MatchedRequired, ", ")))
	default:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", strings.Join(r.MatchedRequired, ", ")))
	}

	if len(r.MissingRequired) > 0 {
		parts = append(parts, fmt.Sprintf("Missing %s", strings.Join(r.MissingRequired, ", ")))
	}

	years := float64(r.TotalExperienceMonths) / 12.0
	switch {
	case r.ExperienceScore >= 1.0:
		parts = append(parts, fmt.Sprintf("Meets experience bar (%.1f yrs)", years))
	default:
		parts = append(parts, fmt.Sprintf("Below experience bar (%.1f yrs)", years))
	}
	if !r.ExperienceConfidence {
		parts = append(parts, "Some dates unresolved")
	}

	if r.KeywordScore >= 0.5 {
		parts = append(parts, "Good keyword overlap")
	} else if r.KeywordScore > 0 {
		parts = append(parts, "Some keyword overlap")
	}

	return strings.Join(parts, ". ")
}
