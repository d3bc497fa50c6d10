// Package types provides type definitions for structured data used throughout the candidate-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// JobRequirement represents a structured job description.
// Required and Preferred are disjoint; MinYears is nil when the posting states no bar.
type JobRequirement struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title,omitempty"`
	Required  []string  `json:"required_skills"`
	Preferred []string  `json:"preferred_skills"`
	MinYears  *float64  `json:"min_years,omitempty"`
	Keywords  []string  `json:"keywords"`
}

// SkillCount returns the number of required and preferred skills combined
func (r *JobRequirement) SkillCount() int {
	return len(r.Required) + len(r.Preferred)
}
