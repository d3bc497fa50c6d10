package ranking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/types"
)

func months(n int) *int { return &n }

func years(n float64) *float64 { return &n }

func TestMatch_SkillAndExperienceScenario(t *testing.T) {
	p := &types.Profile{
		CandidateID: "cand-1",
		Skills:      []string{"python", "sql"},
		Experience: []types.ExperienceEntry{
			{Title: "Data Engineer", DurationMonths: months(24)},
		},
	}
	req := &types.JobRequirement{
		ID:        uuid.New(),
		Required:  []string{"python", "sql", "aws"},
		Preferred: []string{"docker"},
		MinYears:  years(1),
		Keywords:  []string{"engineer"},
	}

	result := NewEngine().Match(p, req)

	assert.InDelta(t, 2.0/3.0, result.SkillScore, 1e-9)
	assert.Equal(t, 1.0, result.ExperienceScore)
	assert.Equal(t, 1.0, result.KeywordScore)
	assert.InDelta(t, 0.5*(2.0/3.0)+0.3*1.0+0.2*1.0, result.Composite, 1e-9)
	assert.Equal(t, []string{"python", "sql"}, result.MatchedRequired)
	assert.Equal(t, []string{"aws"}, result.MissingRequired)
	assert.Empty(t, result.MatchedPreferred)
	assert.Equal(t, 24, result.TotalExperienceMonths)
	assert.True(t, result.ExperienceConfidence)
	assert.Equal(t, req.ID, result.RequirementID)
}

func TestMatch_PreferredSkillRaisesScore(t *testing.T) {
	req := &types.JobRequirement{
		Required:  []string{"python", "sql", "aws"},
		Preferred: []string{"docker"},
	}
	without := &types.Profile{Skills: []string{"python", "sql"}}
	with := &types.Profile{Skills: []string{"docker", "python", "sql"}}

	engine := NewEngine()
	base := engine.Match(without, req)
	bonus := engine.Match(with, req)

	assert.InDelta(t, 2.0/3.0, base.SkillScore, 1e-9, "an unmatched preferred skill stays out of the denominator")
	assert.InDelta(t, 2.5/3.5, bonus.SkillScore, 1e-9)
	assert.Greater(t, bonus.SkillScore, base.SkillScore)
	assert.Equal(t, []string{"docker"}, bonus.MatchedPreferred)
}

func TestMatch_PreferredOnlyRequirement(t *testing.T) {
	req := &types.JobRequirement{Preferred: []string{"go", "rust"}}

	result := NewEngine().Match(&types.Profile{Skills: []string{"go"}}, req)
	assert.InDelta(t, 0.5, result.SkillScore, 1e-9)

	result = NewEngine().Match(&types.Profile{}, req)
	assert.Equal(t, 0.0, result.SkillScore)
}

func TestMatch_NoSkillsIsVacuouslySatisfied(t *testing.T) {
	req := &types.JobRequirement{Keywords: []string{"analyst"}}

	result := NewEngine().Match(&types.Profile{Skills: []string{"excel"}}, req)

	assert.Equal(t, 1.0, result.SkillScore)
	assert.Empty(t, result.MatchedRequired)
	assert.Empty(t, result.MissingRequired)
	assert.NotNil(t, result.MatchedRequired)
	assert.NotNil(t, result.MissingRequired)
}

func TestMatch_SkillMatchingIgnoresCase(t *testing.T) {
	req := &types.JobRequirement{Required: []string{"PostgreSQL", "Go"}}
	p := &types.Profile{Skills: []string{"postgresql", " GO "}}

	result := NewEngine().Match(p, req)

	assert.Equal(t, 1.0, result.SkillScore)
	assert.Empty(t, result.MissingRequired)
}

func TestMatch_UnresolvedDatesLowerConfidence(t *testing.T) {
	p := &types.Profile{
		Experience: []types.ExperienceEntry{
			{Title: "Engineer", DurationMonths: months(12)},
			{Title: "Consultant", DurationMonths: nil},
		},
	}
	req := &types.JobRequirement{Required: []string{"go"}, MinYears: years(2)}

	result := NewEngine().Match(p, req)

	assert.Equal(t, 12, result.TotalExperienceMonths)
	assert.False(t, result.ExperienceConfidence)
	assert.InDelta(t, 0.5, result.ExperienceScore, 1e-9)
}

func TestMatch_ExperienceScore(t *testing.T) {
	tests := []struct {
		name     string
		months   []int
		minYears *float64
		want     float64
	}{
		{"no bar", []int{3}, nil, 1.0},
		{"meets bar", []int{24, 12}, years(3), 1.0},
		{"partial", []int{18}, years(3), 0.5},
		{"no experience", nil, years(2), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &types.Profile{}
			for _, m := range tt.months {
				p.Experience = append(p.Experience, types.ExperienceEntry{DurationMonths: months(m)})
			}
			req := &types.JobRequirement{Required: []string{"go"}, MinYears: tt.minYears}

			result := NewEngine().Match(p, req)
			assert.InDelta(t, tt.want, result.ExperienceScore, 1e-9)
		})
	}
}

func TestMatch_NoExperienceEntriesIsConfident(t *testing.T) {
	result := NewEngine().Match(&types.Profile{}, &types.JobRequirement{Required: []string{"go"}})

	assert.True(t, result.ExperienceConfidence)
	assert.Equal(t, 0, result.TotalExperienceMonths)
}

func TestMatch_KeywordScore(t *testing.T) {
	p := &types.Profile{
		Summary:    "Backend developer focused on Payments.",
		Experience: []types.ExperienceEntry{{Title: "Senior Engineer"}},
	}
	req := &types.JobRequirement{Keywords: []string{"senior", "payments", "staff", "engineer"}}

	result := NewEngine().Match(p, req)

	assert.InDelta(t, 0.75, result.KeywordScore, 1e-9)
}

func TestMatch_ZeroOverlapIsValid(t *testing.T) {
	p := &types.Profile{CandidateID: "nobody", Skills: []string{"cobol"}}
	req := &types.JobRequirement{Required: []string{"go"}, MinYears: years(5), Keywords: []string{"platform"}}

	result := NewEngine().Match(p, req)

	assert.Equal(t, 0.0, result.Composite)
	assert.Equal(t, []string{"go"}, result.MissingRequired)
}

func TestMatch_CompositeWithinBounds(t *testing.T) {
	profiles := []*types.Profile{
		{},
		{Skills: []string{"go", "sql", "docker"}, Summary: "platform engineer"},
		{Experience: []types.ExperienceEntry{{DurationMonths: months(600)}}},
	}
	reqs := []*types.JobRequirement{
		{},
		{Required: []string{"go"}, Preferred: []string{"docker"}, MinYears: years(1), Keywords: []string{"platform"}},
		{Preferred: []string{"sql"}, MinYears: years(40)},
	}

	engine := NewEngine()
	for _, p := range profiles {
		for _, req := range reqs {
			r := engine.Match(p, req)
			for _, score := range []float64{r.SkillScore, r.ExperienceScore, r.KeywordScore, r.Composite} {
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 1.0)
			}
		}
	}
}

func TestMatch_SynonymsOnlyWhenInjected(t *testing.T) {
	p := &types.Profile{Skills: []string{"golang", "k8s"}}
	req := &types.JobRequirement{Required: []string{"go", "kubernetes"}}

	exact := NewEngine().Match(p, req)
	assert.Equal(t, 0.0, exact.SkillScore)

	synonyms := NewEngine(WithSkillMatcher(NewSynonymMatcher(nil))).Match(p, req)
	assert.Equal(t, 1.0, synonyms.SkillScore)
	assert.Equal(t, []string{"go", "kubernetes"}, synonyms.MatchedRequired)
}

func TestPolicyWeights(t *testing.T) {
	w := PolicyWeights()

	assert.Equal(t, Weights{Skill: 0.5, Experience: 0.3, Keyword: 0.2}, w)
	assert.InDelta(t, 1.0, w.Skill+w.Experience+w.Keyword, 1e-12)
	assert.Equal(t, w, NewEngine(WithSkillMatcher(nil)).Weights())
}

func TestMatch_DoesNotMutateInputs(t *testing.T) {
	p := &types.Profile{CandidateID: "a", Skills: []string{"go"}}
	req := &types.JobRequirement{Required: []string{"Go", "SQL"}}

	_ = NewEngine().Match(p, req)

	require.Equal(t, []string{"go"}, p.Skills)
	require.Equal(t, []string{"Go", "SQL"}, req.Required)
}
