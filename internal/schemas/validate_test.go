package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validExport = `[
  {
    "candidate_id": "jane",
    "composite_score": 0.833,
    "skill_score": 0.667,
    "experience_score": 1,
    "keyword_score": 1,
    "matched_required_skills": ["python", "sql"],
    "missing_required_skills": ["aws"],
    "experience_confidence": true
  }
]`

func TestNames(t *testing.T) {
	assert.Equal(t, []string{JobRequirement, MatchExport, Profile}, Names())
}

func TestValidate_ValidExport(t *testing.T) {
	assert.NoError(t, Validate(MatchExport, []byte(validExport)))
	assert.NoError(t, Validate(MatchExport, []byte(`[]`)))
}

func TestValidate_MissingField(t *testing.T) {
	doc := `[{"candidate_id": "jane", "composite_score": 0.5}]`

	err := Validate(MatchExport, []byte(doc))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, MatchExport, validationErr.Schema)
	assert.Greater(t, len(validationErr.Errors), 0)
	assert.Contains(t, err.Error(), "match_export")
}

func TestValidate_ScoreOutOfRange(t *testing.T) {
	doc := `[{
		"candidate_id": "jane", "composite_score": 1.5, "skill_score": 0, "experience_score": 0,
		"keyword_score": 0, "matched_required_skills": [], "missing_required_skills": [],
		"experience_confidence": false
	}]`

	err := Validate(MatchExport, []byte(doc))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "0.composite_score", validationErr.Errors[0].Field)
}

func TestValidate_ExtraFieldRejected(t *testing.T) {
	doc := `[{
		"candidate_id": "jane", "composite_score": 0.5, "skill_score": 0, "experience_score": 0,
		"keyword_score": 0, "matched_required_skills": [], "missing_required_skills": [],
		"experience_confidence": false, "rank": 1
	}]`

	assert.Error(t, Validate(MatchExport, []byte(doc)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateValue_Requirement(t *testing.T) {
	req := map[string]any{
		"id":               "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		"required_skills":  []string{"go"},
		"preferred_skills": []string{},
		"keywords":         []string{"engineer"},
		"min_years":        3,
	}
	assert.NoError(t, ValidateValue(JobRequirement, req))

	req["min_years"] = 0
	assert.Error(t, ValidateValue(JobRequirement, req))
}

func TestValidateValue_ProfileAllowsNullDuration(t *testing.T) {
	profile := map[string]any{
		"candidate_id": "jane",
		"experience": []map[string]any{
			{"title": "Engineer", "organization": "Acme", "duration_months": nil},
		},
		"education": []any{},
		"skills":    []string{"go"},
		"summary":   "",
	}
	assert.NoError(t, ValidateValue(Profile, profile))
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(path, []byte(validExport), 0644))

	assert.NoError(t, ValidateFile(MatchExport, path))

	err := ValidateFile(MatchExport, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"]}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}
