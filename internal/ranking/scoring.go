// Package ranking provides functionality to score candidate profiles against a job requirement and rank the results.
package ranking

import (
	"strings"

	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Policy weights for the composite score
const (
	skillWeight      = 0.5
	experienceWeight = 0.3
	keywordWeight    = 0.2
)

// preferredFactor is how much a preferred skill counts relative to a required one
const preferredFactor = 0.5

// Weights holds the composite score weights
type Weights struct {
	Skill      float64
	Experience float64
	Keyword    float64
}

// PolicyWeights returns the fixed composite weights. Rankings are only
// comparable across runs because every Engine uses these.
func PolicyWeights() Weights {
	return Weights{Skill: skillWeight, Experience: experienceWeight, Keyword: keywordWeight}
}

// Engine scores profiles against job requirements. The zero value is not
// usable; construct one with NewEngine.
type Engine struct {
	weights Weights
	matcher SkillMatcher
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithSkillMatcher replaces the default exact skill matcher
func WithSkillMatcher(m SkillMatcher) EngineOption {
	return func(e *Engine) {
		if m != nil {
			e.matcher = m
		}
	}
}

// NewEngine creates an Engine using the policy weights and exact skill matching
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		weights: PolicyWeights(),
		matcher: ExactMatcher{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the engine's composite weights
func (e *Engine) Weights() Weights {
	return e.weights
}

// Match scores one profile against one requirement. It never fails: a
// profile with no overlap at all gets a composite of 0.
func (e *Engine) Match(p *types.Profile, req *types.JobRequirement) types.MatchResult {
	result := types.MatchResult{
		CandidateID:   p.CandidateID,
		RequirementID: req.ID,
	}

	result.SkillScore, result.MatchedRequired, result.MissingRequired, result.MatchedPreferred =
		e.computeSkillScore(p, req)
	result.ExperienceScore, result.TotalExperienceMonths, result.ExperienceConfidence =
		computeExperienceScore(p, req)
	result.KeywordScore = computeKeywordScore(p, req)

	result.Composite = clamp(e.weights.Skill*result.SkillScore +
		e.weights.Experience*result.ExperienceScore +
		e.weights.Keyword*result.KeywordScore)
	return result
}

// computeSkillScore compares profile skills with the requirement's skills.
// Unlike a plain weighted ratio over every listed skill, an unmatched
// preferred skill is left out of the denominator: required skills always
// count, a preferred skill counts only once the candidate has it, so
// preferred skills raise a score and never lower it. With no required skills
// the preferred list is scored on its own, and with no skills at all the
// constraint is vacuously met.
func (e *Engine) computeSkillScore(p *types.Profile, req *types.JobRequirement) (score float64, matched, missing, matchedPreferred []string) {
	matched = []string{}
	missing = []string{}
	matchedPreferred = []string{}

	if len(req.Required) == 0 && len(req.Preferred) == 0 {
		return 1.0, matched, missing, matchedPreferred
	}

	have := make(map[string]struct{}, len(p.Skills))
	for _, skill := range p.Skills {
		if key := e.matcher.Canonical(skill); key != "" {
			have[key] = struct{}{}
		}
	}

	for _, skill := range req.Required {
		if _, ok := have[e.matcher.Canonical(skill)]; ok {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	for _, skill := range req.Preferred {
		if _, ok := have[e.matcher.Canonical(skill)]; ok {
			matchedPreferred = append(matchedPreferred, skill)
		}
	}

	preferredHits := preferredFactor * float64(len(matchedPreferred))
	if len(req.Required) == 0 {
		return clamp(preferredHits / (preferredFactor * float64(len(req.Preferred)))), matched, missing, matchedPreferred
	}

	score = (float64(len(matched)) + preferredHits) / (float64(len(req.Required)) + preferredHits)
	return clamp(score), matched, missing, matchedPreferred
}

// computeExperienceScore sums resolvable durations. Entries without a
// duration are left out of the total rather than counted as zero, so the
// total is a lower bound and confidence reports whether it is exact.
func computeExperienceScore(p *types.Profile, req *types.JobRequirement) (score float64, totalMonths int, confident bool) {
	confident = true
	for _, entry := range p.Experience {
		if !entry.HasResolvedDuration() {
			confident = false
			continue
		}
		totalMonths += *entry.DurationMonths
	}

	if req.MinYears == nil || *req.MinYears <= 0 {
		return 1.0, totalMonths, confident
	}

	totalYears := float64(totalMonths) / 12.0
	if totalYears >= *req.MinYears {
		return 1.0, totalMonths, confident
	}
	return clamp(totalYears / *req.MinYears), totalMonths, confident
}

// computeKeywordScore returns the fraction of keywords found in the profile
// summary or experience titles, ignoring case and accents.
func computeKeywordScore(p *types.Profile, req *types.JobRequirement) float64 {
	if len(req.Keywords) == 0 {
		return 1.0
	}

	var text strings.Builder
	text.WriteString(p.Summary)
	for _, entry := range p.Experience {
		text.WriteString("\n")
		text.WriteString(entry.Title)
	}
	haystack := parsing.FoldText(text.String())

	matches := 0
	for _, keyword := range req.Keywords {
		if strings.Contains(haystack, parsing.FoldText(keyword)) {
			matches++
		}
	}
	return clamp(float64(matches) / float64(len(req.Keywords)))
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
