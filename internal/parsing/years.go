package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// maxPlausibleYears discards matches such as "founded 150 years ago"
const maxPlausibleYears = 50

var numberWords = map[string]float64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "fifteen": 15, "twenty": 20,
}

var yearsRe = regexp.MustCompile(`(?i)(at\s+least\s+|minimum\s+(?:of\s+)?|min\.?\s+|over\s+|more\s+than\s+)?` +
	`\b(\d+(?:\.\d+)?|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|fifteen|twenty)` +
	`\s*(\+|plus)?\s*(?:(?:-|–|to)\s*\d+(?:\.\d+)?\s*\+?\s*)?(?:\(\d+\)\s*)?(?:years?|yrs?)\b` +
	`(?:\s+(\w+))?`)

// yearsContextWords may follow "N years" when the phrase states an experience bar
var yearsContextWords = map[string]struct{}{
	"of": {}, "experience": {}, "professional": {}, "relevant": {}, "hands": {},
	"industry": {}, "in": {}, "with": {}, "working": {}, "commercial": {},
	"building": {}, "developing": {}, "using": {}, "as": {},
}

// ExtractMinYears returns the strictest minimum-experience bar stated in text.
// "N+ years", "at least N years", "minimum of N years", "N-M years" (lower
// bound) and small number words are recognized.
func ExtractMinYears(text string) *float64 {
	var best *float64
	for _, line := range strings.Split(text, "\n") {
		lineHasExperience := strings.Contains(strings.ToLower(line), "experience")
		for _, m := range yearsRe.FindAllStringSubmatch(line, -1) {
			qualified := m[1] != "" || m[3] != ""
			_, contextual := yearsContextWords[strings.ToLower(m[4])]
			if !qualified && !contextual && !lineHasExperience {
				continue
			}
			value, ok := parseYearsNumber(m[2])
			if !ok || value <= 0 || value > maxPlausibleYears {
				continue
			}
			if best == nil || value > *best {
				v := value
				best = &v
			}
		}
	}
	return best
}

func parseYearsNumber(s string) (float64, bool) {
	if v, ok := numberWords[strings.ToLower(s)]; ok {
		return v, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// stripYearsPhrases removes experience-length phrases from a skill item
func stripYearsPhrases(text string) string {
	return yearsRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := yearsRe.FindStringSubmatch(match)
		switch strings.ToLower(sub[4]) {
		case "", "of", "in", "with", "using", "as":
			return ""
		default:
			return sub[4]
		}
	})
}
