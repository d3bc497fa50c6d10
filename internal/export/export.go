// Package export provides functionality to serialize ranked match results into export records.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/schemas"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Format is an export encoding
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// listSeparator joins skill lists inside a CSV cell
const listSeparator = ";"

// Columns is the fixed field order of an export record
var Columns = []string{
	"candidate_id",
	"composite_score",
	"skill_score",
	"experience_score",
	"keyword_score",
	"matched_required_skills",
	"missing_required_skills",
	"experience_confidence",
}

// Record is one exported ranking row
type Record struct {
	CandidateID           string   `json:"candidate_id"`
	CompositeScore        float64  `json:"composite_score"`
	SkillScore            float64  `json:"skill_score"`
	ExperienceScore       float64  `json:"experience_score"`
	KeywordScore          float64  `json:"keyword_score"`
	MatchedRequiredSkills []string `json:"matched_required_skills"`
	MissingRequiredSkills []string `json:"missing_required_skills"`
	ExperienceConfidence  bool     `json:"experience_confidence"`
}

// ParseFormat converts a format name to a Format
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected json or csv)", name)
	}
}

// ToRecords converts a ranked list to export records in ranked order. The
// composite score is rounded to three decimals; the list is not modified.
func ToRecords(list types.RankedList) []Record {
	records := make([]Record, 0, len(list.Results))
	for _, r := range list.Results {
		records = append(records, Record{
			CandidateID:           r.CandidateID,
			CompositeScore:        roundScore(r.Composite),
			SkillScore:            r.SkillScore,
			ExperienceScore:       r.ExperienceScore,
			KeywordScore:          r.KeywordScore,
			MatchedRequiredSkills: cloneList(r.MatchedRequired),
			MissingRequiredSkills: cloneList(r.MissingRequired),
			ExperienceConfidence:  r.ExperienceConfidence,
		})
	}
	return records
}

// Write encodes list to w in the given format
func Write(w io.Writer, format Format, list types.RankedList) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, list)
	case FormatCSV:
		return WriteCSV(w, list)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteJSON writes the records as an indented JSON array, checked against the
// match_export schema before anything is written.
func WriteJSON(w io.Writer, list types.RankedList) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ToRecords(list)); err != nil {
		return fmt.Errorf("failed to encode export records: %w", err)
	}

	if err := schemas.Validate(schemas.MatchExport, buf.Bytes()); err != nil {
		return fmt.Errorf("export does not match schema: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteCSV writes a header row followed by one row per record. Skill lists
// are joined with semicolons.
func WriteCSV(w io.Writer, list types.RankedList) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range ToRecords(list) {
		row := []string{
			rec.CandidateID,
			formatScore(rec.CompositeScore),
			formatScore(rec.SkillScore),
			formatScore(rec.ExperienceScore),
			formatScore(rec.KeywordScore),
			strings.Join(rec.MatchedRequiredSkills, listSeparator),
			strings.Join(rec.MissingRequiredSkills, listSeparator),
			strconv.FormatBool(rec.ExperienceConfidence),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", rec.CandidateID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func roundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func cloneList(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
