package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Run represents a stored ranking run
type Run struct {
	ID             uuid.UUID `json:"id"`
	RequirementID  uuid.UUID `json:"requirement_id"`
	JobTitle       string    `json:"job_title"`
	Threshold      float64   `json:"threshold"`
	CandidateCount int       `json:"candidate_count"`
	MatchedCount   int       `json:"matched_count"`
	FailedCount    int       `json:"failed_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// RunInput is everything SaveRun persists for one run
type RunInput struct {
	Requirement *types.JobRequirement
	Ranked      types.RankedList
	Threshold   float64
	FailedCount int
}

// StoredResult is one ranked row of a stored run
type StoredResult struct {
	Rank                 int      `json:"rank"`
	CandidateID          string   `json:"candidate_id"`
	CompositeScore       float64  `json:"composite_score"`
	SkillScore           float64  `json:"skill_score"`
	ExperienceScore      float64  `json:"experience_score"`
	KeywordScore         float64  `json:"keyword_score"`
	MatchedRequired      []string `json:"matched_required_skills"`
	MissingRequired      []string `json:"missing_required_skills"`
	ExperienceConfidence bool     `json:"experience_confidence"`
	Matched              bool     `json:"matched"`
}

// resultRows turns a ranked list into rows in rank order, marking those at or above threshold
func resultRows(list types.RankedList, threshold float64) []StoredResult {
	rows := make([]StoredResult, 0, len(list.Results))
	for i, r := range list.Results {
		rows = append(rows, StoredResult{
			Rank:                 i + 1,
			CandidateID:          r.CandidateID,
			CompositeScore:       r.Composite,
			SkillScore:           r.SkillScore,
			ExperienceScore:      r.ExperienceScore,
			KeywordScore:         r.KeywordScore,
			MatchedRequired:      nonNil(r.MatchedRequired),
			MissingRequired:      nonNil(r.MissingRequired),
			ExperienceConfidence: r.ExperienceConfidence,
			Matched:              r.Composite >= threshold,
		})
	}
	return rows
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
