// Package profile provides functionality to turn segmented profile text into a structured Profile.
package profile

import (
	"strings"
	"time"

	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/segment"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Options controls normalization
type Options struct {
	// AsOf is the month "Present" resolves to
	AsOf types.YearMonth
}

// OptionsAsOf returns Options that resolve ongoing roles up to the month of t
func OptionsAsOf(t time.Time) Options {
	return Options{AsOf: types.YearMonthOf(t)}
}

// Normalize builds a Profile from segmented text. It never fails: fields that
// cannot be extracted are left empty and experience entries with unreadable
// dates keep a nil duration.
func Normalize(candidateID string, s *segment.Sections, opts Options) *types.Profile {
	p := &types.Profile{
		CandidateID: strings.TrimSpace(candidateID),
		Experience:  []types.ExperienceEntry{},
		Education:   []types.EducationEntry{},
	}

	for fragment := range s.Fragments(segment.Experience) {
		for _, role := range SplitRoles(fragment) {
			p.Experience = append(p.Experience, ParseExperience(role, opts.AsOf))
		}
	}

	for fragment := range s.Fragments(segment.Education) {
		p.Education = append(p.Education, ParseEducation(fragment))
	}

	var skills []string
	for fragment := range s.Fragments(segment.Skills) {
		skills = append(skills, parsing.TokenizeSkills(fragment)...)
	}
	p.Skills = parsing.SkillSet(skills)

	var summary []string
	for fragment := range s.Fragments(segment.Summary) {
		summary = append(summary, fragment)
	}
	for fragment := range s.Fragments(segment.Unclassified) {
		p.Unclassified = append(p.Unclassified, fragment)
	}
	if len(summary) == 0 {
		summary = p.Unclassified
	}
	p.Summary = strings.Join(summary, "\n\n")

	return p
}

// NormalizeText segments raw text and normalizes the result
func NormalizeText(candidateID, raw string, opts Options) (*types.Profile, error) {
	s, err := segment.Segment(raw)
	if err != nil {
		return nil, err
	}
	return Normalize(candidateID, s, opts), nil
}
