// Package types provides type definitions for structured data used throughout the candidate-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// MatchResult represents the score of one profile against one job requirement
type MatchResult struct {
	CandidateID           string    `json:"candidate_id"`
	RequirementID         uuid.UUID `json:"requirement_id"`
	SkillScore            float64   `json:"skill_score"`
	ExperienceScore       float64   `json:"experience_score"`
	KeywordScore          float64   `json:"keyword_score"`
	Composite             float64   `json:"composite_score"`
	MatchedRequired       []string  `json:"matched_required_skills"`
	MissingRequired       []string  `json:"missing_required_skills"`
	MatchedPreferred      []string  `json:"matched_preferred_skills,omitempty"`
	TotalExperienceMonths int       `json:"total_experience_months"`
	// ExperienceConfidence is false when at least one experience entry had
	// unresolvable dates, making TotalExperienceMonths a lower bound.
	ExperienceConfidence bool `json:"experience_confidence"`
}

// RankedList is an ordered collection of match results for a single requirement
type RankedList struct {
	RequirementID uuid.UUID     `json:"requirement_id"`
	Results       []MatchResult `json:"results"`
}

// Len returns the number of ranked results
func (l RankedList) Len() int {
	return len(l.Results)
}

// CandidateIDs returns candidate ids in ranked order
func (l RankedList) CandidateIDs() []string {
	ids := make([]string, 0, len(l.Results))
	for _, r := range l.Results {
		ids = append(ids, r.CandidateID)
	}
	return ids
}

// AboveThreshold returns a new list holding the results whose composite
// score is at least minScore, in the same order.
func (l RankedList) AboveThreshold(minScore float64) RankedList {
	filtered := make([]MatchResult, 0, len(l.Results))
	for _, r := range l.Results {
		if r.Composite >= minScore {
			filtered = append(filtered, r)
		}
	}
	return RankedList{RequirementID: l.RequirementID, Results: filtered}
}
