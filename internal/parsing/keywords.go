package parsing

import (
	"regexp"
	"strings"
)

var (
	titlePrefixRe = regexp.MustCompile(`(?i)^(?:job\s+title|position|role|title|job)\s*[:：-]\s*`)
	// titleSeparatorRe splits "Role at Company" and "Role - Company" title lines
	titleSeparatorRe = regexp.MustCompile(`(?i)^(.+?)\s+(?:at|@|[-–—|])\s+(.+)$`)
	titleTokenRe     = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}+#.]*`)
	capitalPhraseRe  = regexp.MustCompile(`\b[A-Z][\p{L}\p{N}+#]*(?:\s+[A-Z][\p{L}\p{N}+#]*)+`)
)

// titleStopWords are title tokens that say nothing about the role itself
var titleStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "of": {}, "for": {}, "in": {}, "with": {},
	"to": {}, "or": {}, "on": {}, "remote": {}, "hybrid": {}, "onsite": {}, "on-site": {},
	"full-time": {}, "part-time": {}, "full": {}, "part": {}, "time": {}, "contract": {},
	"m": {}, "f": {}, "d": {}, "w": {}, "x": {}, "we're": {}, "hiring": {},
}

// phraseLeadWords open sentences and are dropped from the front of a phrase
var phraseLeadWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "our": {}, "we": {}, "you": {}, "your": {},
	"this": {}, "as": {}, "if": {}, "at": {}, "in": {}, "join": {}, "i": {},
}

// RoleTitle returns the role part of a job description's title line
func RoleTitle(line string) string {
	title := strings.TrimSpace(line)
	title = strings.TrimLeft(title, "#* ")
	title = strings.TrimRight(title, "*: ")
	title = titlePrefixRe.ReplaceAllString(title, "")
	title = parentheticalRe.ReplaceAllString(title, " ")
	if m := titleSeparatorRe.FindStringSubmatch(title); m != nil {
		title = m[1]
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(title, " "))
}

// TitleKeywords tokenizes a role title into folded keywords, dropping filler
func TitleKeywords(title string) []string {
	var keywords []string
	for _, token := range titleTokenRe.FindAllString(FoldText(title), -1) {
		token = strings.TrimRight(token, ".")
		if len([]rune(token)) < 2 {
			continue
		}
		if _, stop := titleStopWords[token]; stop {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}

// CapitalizedPhrases returns folded multi-word capitalized phrases in text,
// such as "Machine Learning" or "Site Reliability".
func CapitalizedPhrases(text string) []string {
	var phrases []string
	for _, match := range capitalPhraseRe.FindAllString(text, -1) {
		words := strings.Fields(match)
		for len(words) > 0 {
			if _, lead := phraseLeadWords[strings.ToLower(words[0])]; !lead {
				break
			}
			words = words[1:]
		}
		if len(words) < 2 {
			continue
		}
		phrases = append(phrases, FoldText(strings.Join(words, " ")))
	}
	return phrases
}

// dedupeKeywords folds keywords and removes empties and duplicates, keeping order
func dedupeKeywords(keywords []string) []string {
	result := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		folded := FoldText(keyword)
		if folded == "" {
			continue
		}
		if _, exists := seen[folded]; exists {
			continue
		}
		seen[folded] = struct{}{}
		result = append(result, folded)
	}
	return result
}
