// Package types provides type definitions for structured data used throughout the candidate-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Profile represents one candidate's normalized professional history
type Profile struct {
	CandidateID  string            `json:"candidate_id"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []string          `json:"skills"`
	Summary      string            `json:"summary"`
	Unclassified []string          `json:"unclassified,omitempty"`
}

// ExperienceEntry represents a single role. DurationMonths is nil when the
// dates could not be resolved; it is never defaulted to zero.
type ExperienceEntry struct {
	Title          string     `json:"title"`
	Organization   string     `json:"organization"`
	Start          *YearMonth `json:"start,omitempty"`
	End            *YearMonth `json:"end,omitempty"`
	Ongoing        bool       `json:"ongoing,omitempty"`
	DurationMonths *int       `json:"duration_months"`
	Description    string     `json:"description,omitempty"`
}

// EducationEntry represents a degree or course of study
type EducationEntry struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution"`
	Field       string     `json:"field"`
	End         *YearMonth `json:"end,omitempty"`
}

// HasResolvedDuration reports whether the entry carries a usable duration
func (e ExperienceEntry) HasResolvedDuration() bool {
	return e.DurationMonths != nil
}

// YearMonth is a calendar month without a day component
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth builds a YearMonth, returning false for out-of-range values
func NewYearMonth(year int, month time.Month) (YearMonth, bool) {
	if year < 1900 || year > 2200 || month < time.January || month > time.December {
		return YearMonth{}, false
	}
	return YearMonth{Year: year, Month: month}, true
}

// YearMonthOf returns the month containing t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// index returns a monotonically increasing month number
func (ym YearMonth) index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.index() < other.index()
}

// MonthsThrough counts the months from ym to end, both inclusive.
// "Jan 2020 - Dec 2021" is 24 months.
func (ym YearMonth) MonthsThrough(end YearMonth) int {
	return end.index() - ym.index() + 1
}

// String formats as YYYY-MM
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// MarshalJSON encodes as "YYYY-MM"
func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return json.Marshal(ym.String())
}

// UnmarshalJSON decodes "YYYY-MM"
func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	*ym = YearMonthOf(t)
	return nil
}
