package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-matcher/internal/types"
)

func sampleList() types.RankedList {
	reqID := uuid.New()
	return types.RankedList{
		RequirementID: reqID,
		Results: []types.MatchResult{
			{
				CandidateID:          "jane",
				RequirementID:        reqID,
				SkillScore:           2.0 / 3.0,
				ExperienceScore:      1,
				KeywordScore:         1,
				Composite:            0.5*(2.0/3.0) + 0.3 + 0.2,
				MatchedRequired:      []string{"python", "sql"},
				MissingRequired:      []string{"aws"},
				ExperienceConfidence: true,
			},
			{
				CandidateID:   "joe",
				RequirementID: reqID,
				Composite:     0,
			},
		},
	}
}

func TestToRecords(t *testing.T) {
	list := sampleList()

	records := ToRecords(list)

	require.Len(t, records, 2)
	assert.Equal(t, "jane", records[0].CandidateID)
	assert.Equal(t, 0.833, records[0].CompositeScore)
	assert.InDelta(t, 2.0/3.0, records[0].SkillScore, 1e-12)
	assert.Equal(t, []string{"python", "sql"}, records[0].MatchedRequiredSkills)
	assert.NotNil(t, records[1].MatchedRequiredSkills)
	assert.NotNil(t, records[1].MissingRequiredSkills)
}

func TestToRecords_DoesNotShareSlices(t *testing.T) {
	list := sampleList()

	records := ToRecords(list)
	records[0].MatchedRequiredSkills[0] = "changed"

	assert.Equal(t, "python", list.Results[0].MatchedRequired[0])
	assert.InDelta(t, 0.8333333, list.Results[0].Composite, 1e-6)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleList()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	keys := make([]string, 0, len(decoded[0]))
	for key := range decoded[0] {
		keys = append(keys, key)
	}
	assert.ElementsMatch(t, Columns, keys)
	assert.Equal(t, 0.833, decoded[0]["composite_score"])
	assert.Equal(t, []any{}, decoded[1]["missing_required_skills"])
}

func TestWriteJSON_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, types.RankedList{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleList()))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "jane", rows[1][0])
	assert.Equal(t, "0.833", rows[1][1])
	assert.Equal(t, "python;sql", rows[1][5])
	assert.Equal(t, "aws", rows[1][6])
	assert.Equal(t, "true", rows[1][7])
	assert.Equal(t, []string{"joe", "0", "0", "0", "0", "", "", "false"}, rows[2])
}

func TestWrite_DispatchesOnFormat(t *testing.T) {
	var jsonBuf, csvBuf bytes.Buffer

	require.NoError(t, Write(&jsonBuf, FormatJSON, sampleList()))
	require.NoError(t, Write(&csvBuf, FormatCSV, sampleList()))

	assert.True(t, strings.HasPrefix(jsonBuf.String(), "["))
	assert.True(t, strings.HasPrefix(csvBuf.String(), "candidate_id,"))
	assert.Error(t, Write(&bytes.Buffer{}, Format("xml"), sampleList()))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}
