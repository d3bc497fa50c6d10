// Package ingestion reads collector hand-off files and cleans raw text before segmentation.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	inlineSpaceRe  = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2007}\x{202F}]+`)
	blankLineRunRe = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings and spacing while preserving line and
// paragraph structure. Blank lines are kept (collapsed to one) because they
// separate fragments downstream.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLineRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of horizontal whitespace and trims the line
func cleanLine(line string) string {
	return strings.TrimSpace(inlineSpaceRe.ReplaceAllString(line, " "))
}

// IsBulletLine checks if a line is a bullet list item
func IsBulletLine(line string) bool {
	_, ok := StripBullet(line)
	return ok
}

// StripBullet removes a leading bullet marker, reporting whether one was present
func StripBullet(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"- ", "* ", "• ", "· ", "● ", "▪ ", "– ", "+ "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, marker)), true
		}
	}
	for _, marker := range []string{"•", "●", "▪"} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, marker)), true
		}
	}
	return trimmed, false
}
