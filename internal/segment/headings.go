package segment

import (
	"regexp"
	"strings"
)

// maxHeadingWords bounds how long a line may be and still count as a heading
const maxHeadingWords = 5

var headingNoiseRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// headingKeywords maps normalized heading text to its section label.
// Headings for sections the matcher does not use (projects, languages, ...)
// map to Unclassified so they close the previous section.
var headingKeywords = map[string]Label{
	"experience":              Experience,
	"experiences":             Experience,
	"work experience":         Experience,
	"professional experience": Experience,
	"relevant experience":     Experience,
	"employment":              Experience,
	"employment history":      Experience,
	"work history":            Experience,
	"career history":          Experience,

	"education":              Education,
	"education history":      Education,
	"education and training": Education,
	"academic background":    Education,
	"academics":              Education,

	"skills":                  Skills,
	"skill":                   Skills,
	"technical skills":        Skills,
	"core skills":             Skills,
	"key skills":              Skills,
	"top skills":              Skills,
	"skills endorsements":     Skills,
	"skills and endorsements": Skills,
	"core competencies":       Skills,
	"competencies":            Skills,
	"technologies":            Skills,
	"tech stack":              Skills,
	"tools":                   Skills,
	"expertise":               Skills,

	"summary":              Summary,
	"professional summary": Summary,
	"career summary":       Summary,
	"about":                Summary,
	"about me":             Summary,
	"profile":              Summary,
	"overview":             Summary,
	"objective":            Summary,
	"career objective":     Summary,

	"projects":                    Unclassified,
	"certifications":              Unclassified,
	"licenses certifications":     Unclassified,
	"licenses and certifications": Unclassified,
	"languages":                   Unclassified,
	"interests":                   Unclassified,
	"hobbies":                     Unclassified,
	"awards":                      Unclassified,
	"honors awards":               Unclassified,
	"honors and awards":           Unclassified,
	"publications":                Unclassified,
	"volunteering":                Unclassified,
	"volunteer experience":        Unclassified,
	"recommendations":             Unclassified,
	"references":                  Unclassified,
	"courses":                     Unclassified,
	"activities":                  Unclassified,
	"contact":                     Unclassified,
	"contact info":                Unclassified,
}

// normalizeHeading lower-cases text and replaces punctuation with spaces
func normalizeHeading(text string) string {
	text = strings.ToLower(text)
	text = headingNoiseRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// matchHeading reports whether line is a section heading. When the heading
// carries inline content ("Skills: Go, SQL") the remainder is returned.
func matchHeading(line string) (label Label, remainder string, ok bool) {
	if label, ok := lookupHeading(line); ok {
		return label, "", true
	}

	idx := strings.IndexAny(line, ":：")
	if idx <= 0 {
		return Unclassified, "", false
	}
	if label, ok := lookupHeading(line[:idx]); ok {
		sep := ":"
		if strings.HasPrefix(line[idx:], "：") {
			sep = "："
		}
		return label, strings.TrimSpace(line[idx+len(sep):]), true
	}
	return Unclassified, "", false
}

func lookupHeading(text string) (Label, bool) {
	normalized := normalizeHeading(text)
	if normalized == "" || len(strings.Fields(normalized)) > maxHeadingWords {
		return Unclassified, false
	}
	label, ok := headingKeywords[normalized]
	return label, ok
}
