package profile

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/types"
)

var (
	degreeRe      = regexp.MustCompile(`(?i)\b(?:b\.?\s?sc?|b\.?\s?a|b\.?\s?eng|b\.?\s?tech|bachelor(?:'s)?|m\.?\s?sc?|m\.?\s?a|m\.?\s?eng|m\.?\s?tech|mba|master(?:'s)?|ph\.?\s?d|doctor(?:ate)?|associate(?:'s)?|diploma|high school|ged)\b\.?`)
	institutionRe = regexp.MustCompile(`(?i)\b(?:universit|college|institut|school|academy|polytechnic|hochschule|ecole|école)`)
	// educationPartRe separates "BSc Computer Science, MIT, 2016" and "MIT | MSc"
	educationPartRe = regexp.MustCompile(`\s*(?:,|;|\||·|\s[–—-]\s)\s*`)
	yearTokenRe     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// ParseEducation decomposes an education fragment into degree, institution and
// field using keyword cues, falling back to position. A fragment with neither a
// degree nor an institution cue is kept verbatim as the degree.
func ParseEducation(fragment string) types.EducationEntry {
	text := strings.TrimSpace(fragment)
	if !degreeRe.MatchString(text) && !institutionRe.MatchString(text) {
		return types.EducationEntry{Degree: text}
	}

	var entry types.EducationEntry
	for _, line := range nonEmptyLines(text) {
		if r, matched, found := parsing.FindDateRange(line); found {
			if r.End != nil {
				entry.End = r.End
			}
			line = strings.Replace(line, matched, " ", 1)
		} else if year, ok := parsing.FindYear(line); ok && entry.End == nil {
			if ym, valid := types.NewYearMonth(year, time.December); valid {
				entry.End = &ym
			}
		}
		line = yearTokenRe.ReplaceAllString(line, " ")

		for _, part := range educationPartRe.Split(line, -1) {
			part = cleanHeader(part)
			if part == "" {
				continue
			}
			assignEducationPart(&entry, part)
		}
	}

	if entry.Degree == "" && entry.Institution == "" {
		return types.EducationEntry{Degree: text}
	}
	return entry
}

func assignEducationPart(entry *types.EducationEntry, part string) {
	switch {
	case institutionRe.MatchString(part) && !degreeRe.MatchString(part):
		if entry.Institution == "" {
			entry.Institution = part
		}
	case degreeRe.MatchString(part):
		if entry.Degree == "" {
			entry.Degree, entry.Field = splitDegreeField(part)
		}
	case entry.Degree != "" && entry.Field == "":
		entry.Field = part
	case entry.Institution == "":
		entry.Institution = part
	case entry.Field == "":
		entry.Field = part
	}
}

// splitDegreeField separates "BSc Computer Science" and "Bachelor of Science
// in Physics" into degree and field.
func splitDegreeField(part string) (degree, field string) {
	if before, after, ok := strings.Cut(part, " in "); ok {
		return cleanHeader(before), cleanHeader(after)
	}

	loc := degreeRe.FindStringIndex(part)
	if loc == nil || loc[0] != 0 {
		return part, ""
	}
	rest := strings.TrimSpace(part[loc[1]:])
	if rest == "" || strings.HasPrefix(strings.ToLower(rest), "of ") || strings.HasPrefix(strings.ToLower(rest), "degree") {
		return part, ""
	}
	return cleanHeader(part[:loc[1]]), cleanHeader(rest)
}
