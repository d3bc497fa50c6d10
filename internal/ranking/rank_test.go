package ranking

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/types"
)

func TestRank_SortsByCompositeDescending(t *testing.T) {
	reqID := uuid.New()
	results := []types.MatchResult{
		{CandidateID: "low", RequirementID: reqID, Composite: 0.2},
		{CandidateID: "high", RequirementID: reqID, Composite: 0.9},
		{CandidateID: "mid", RequirementID: reqID, Composite: 0.5},
	}

	list, err := Rank(results)
	require.NoError(t, err)

	assert.Equal(t, []string{"high", "mid", "low"}, list.CandidateIDs())
	assert.Equal(t, reqID, list.RequirementID)
}

func TestRank_TiesBrokenByCandidateID(t *testing.T) {
	reqID := uuid.New()
	results := []types.MatchResult{
		{CandidateID: "zoe", RequirementID: reqID, Composite: 0.80},
		{CandidateID: "adam", RequirementID: reqID, Composite: 0.80},
		{CandidateID: "mia", RequirementID: reqID, Composite: 0.5*0.6 + 0.3*1.0 + 0.2*1.0},
	}

	list, err := Rank(results)
	require.NoError(t, err)

	assert.Equal(t, []string{"adam", "mia", "zoe"}, list.CandidateIDs())
}

func TestRank_Idempotent(t *testing.T) {
	reqID := uuid.New()
	results := []types.MatchResult{
		{CandidateID: "b", RequirementID: reqID, Composite: 0.4},
		{CandidateID: "a", RequirementID: reqID, Composite: 0.4},
		{CandidateID: "c", RequirementID: reqID, Composite: 0.7},
	}

	first, err := Rank(results)
	require.NoError(t, err)
	second, err := Rank(first.Results)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	reqID := uuid.New()
	results := []types.MatchResult{
		{CandidateID: "b", RequirementID: reqID, Composite: 0.1},
		{CandidateID: "a", RequirementID: reqID, Composite: 0.9},
	}

	_, err := Rank(results)
	require.NoError(t, err)

	assert.Equal(t, "b", results[0].CandidateID)
	assert.Equal(t, "a", results[1].CandidateID)
}

func TestRank_MixedRequirement(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	results := []types.MatchResult{
		{CandidateID: "a", RequirementID: first},
		{CandidateID: "b", RequirementID: second},
	}

	_, err := Rank(results)

	var mixedErr *MixedRequirementError
	require.True(t, errors.As(err, &mixedErr))
	assert.Equal(t, first, mixedErr.Expected)
	assert.Equal(t, second, mixedErr.Found)
	assert.Contains(t, err.Error(), "mixed requirement")
}

func TestRank_DuplicateCandidate(t *testing.T) {
	reqID := uuid.New()
	results := []types.MatchResult{
		{CandidateID: "a", RequirementID: reqID},
		{CandidateID: "a", RequirementID: reqID},
	}

	_, err := Rank(results)

	var dupErr *DuplicateCandidateError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "a", dupErr.CandidateID)
}

func TestRank_Empty(t *testing.T) {
	list, err := Rank(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, list.Len())
	assert.NotNil(t, list.Results)
}

func TestRank_EndToEndWithEngine(t *testing.T) {
	req := &types.JobRequirement{ID: uuid.New(), Required: []string{"go", "sql"}}
	profiles := []*types.Profile{
		{CandidateID: "partial", Skills: []string{"go"}},
		{CandidateID: "full", Skills: []string{"go", "sql"}},
		{CandidateID: "none"},
	}

	engine := NewEngine()
	results := make([]types.MatchResult, 0, len(profiles))
	for _, p := range profiles {
		results = append(results, engine.Match(p, req))
	}

	list, err := Rank(results)
	require.NoError(t, err)
	assert.Equal(t, []string{"full", "partial", "none"}, list.CandidateIDs())
}
