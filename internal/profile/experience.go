package profile

import (
	"regexp"
	"slices"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/ingestion"
	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// maxHeaderWords bounds title and organization lines
const maxHeaderWords = 10

var (
	// roleSeparatorRe splits "Title at Org", "Title @ Org", "Title | Org" and "Title - Org"
	roleSeparatorRe = regexp.MustCompile(`^(.+?)\s+(?:at|@|[|–—-])\s+(.+)$`)
	// tenureRe matches LinkedIn tenure suffixes such as "4 yrs 6 mos"
	tenureRe       = regexp.MustCompile(`(?i)\b\d+\s*(?:yrs?|years?|mos?|months?)\b`)
	emptyBracketRe = regexp.MustCompile(`[(\[]\s*[)\]]`)
)

// employmentTypes are LinkedIn labels appended to an organization ("Acme · Full-time")
var employmentTypes = map[string]struct{}{
	"full-time": {}, "part-time": {}, "contract": {}, "internship": {}, "freelance": {},
	"self-employed": {}, "temporary": {}, "apprenticeship": {}, "seasonal": {},
}

const headerCutset = " \t|,;:·•–—-()[]"

// SplitRoles breaks a fragment that lists several dated roles back to back into
// one fragment per role. A later date line starts a new role together with the
// title and organization lines directly above it.
func SplitRoles(fragment string) []string {
	lines := nonEmptyLines(fragment)

	var starts []int
	prevDated := -1
	for i, line := range lines {
		_, matched, found := parsing.FindDateRange(line)
		if !found {
			continue
		}
		if prevDated < 0 {
			prevDated = i
			continue
		}

		start := i
		if cleanHeader(strings.Replace(line, matched, " ", 1)) == "" {
			for start-1 > prevDated && i-start < 2 && isHeaderLine(lines[start-1]) {
				start--
				if isSplittable(lines[start]) {
					break
				}
			}
		}
		starts = append(starts, start)
		prevDated = i
	}
	if len(starts) == 0 {
		return []string{fragment}
	}

	roles := make([]string, 0, len(starts)+1)
	from := 0
	for _, start := range append(starts, len(lines)) {
		roles = append(roles, strings.Join(lines[from:start], "\n"))
		from = start
	}
	return roles
}

// ParseExperience turns one experience fragment into an entry. The first date
// range found supplies the dates; lines before it (and any text left on the
// date line) supply title and organization; the rest is the description.
func ParseExperience(fragment string, asOf types.YearMonth) types.ExperienceEntry {
	var entry types.ExperienceEntry
	lines := nonEmptyLines(fragment)

	var header, body []string
	dated := false
	for i, line := range lines {
		r, matched, found := parsing.FindDateRange(line)
		if !found {
			continue
		}
		dated = true
		entry.Start, entry.End, entry.Ongoing = r.Start, r.End, r.Ongoing
		entry.DurationMonths = r.Months(asOf)

		header = append(header, lines[:i]...)
		if rest := cleanHeader(strings.Replace(line, matched, " ", 1)); rest != "" {
			header = append(header, rest)
		}
		body = lines[i+1:]
		break
	}
	if !dated {
		body = lines
	}

	// undated fragments, or a date on the first line, take the header from the top
	if len(header) == 0 {
		for len(body) > 0 && len(header) < 2 && isHeaderLine(body[0]) {
			header = append(header, body[0])
			body = body[1:]
			if isSplittable(header[0]) {
				break
			}
		}
	}

	title, organization, used := splitTitleOrganization(header)
	entry.Title, entry.Organization = title, organization
	body = slices.Concat(header[used:], body)

	description := make([]string, 0, len(body))
	for _, line := range body {
		content, _ := ingestion.StripBullet(line)
		description = append(description, content)
	}
	entry.Description = strings.Join(description, "\n")
	return entry
}

// splitTitleOrganization reads title and organization from the header lines
// and reports how many lines it consumed.
func splitTitleOrganization(header []string) (title, organization string, used int) {
	if len(header) == 0 {
		return "", "", 0
	}

	first := cleanHeader(header[0])
	if m := roleSeparatorRe.FindStringSubmatch(first); m != nil {
		return cleanHeader(m[1]), stripEmploymentType(m[2]), 1
	}
	if before, after, ok := strings.Cut(first, ", "); ok && len(header) == 1 {
		return cleanHeader(before), stripEmploymentType(after), 1
	}
	if len(header) > 1 && isHeaderLine(header[1]) {
		return first, stripEmploymentType(header[1]), 2
	}
	return first, "", 1
}

// stripEmploymentType drops a trailing "· Full-time" style label
func stripEmploymentType(org string) string {
	parts := strings.Split(org, "·")
	kept := parts[:0]
	for _, part := range parts {
		if _, label := employmentTypes[strings.ToLower(strings.TrimSpace(part))]; label {
			continue
		}
		kept = append(kept, part)
	}
	return cleanHeader(strings.Join(kept, "·"))
}

// isSplittable reports whether a single line carries both title and organization
func isSplittable(line string) bool {
	line = cleanHeader(line)
	return roleSeparatorRe.MatchString(line) || strings.Contains(line, ", ")
}

func cleanHeader(text string) string {
	text = tenureRe.ReplaceAllString(text, " ")
	text = emptyBracketRe.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")
	return strings.Trim(text, headerCutset)
}

func isHeaderLine(line string) bool {
	if ingestion.IsBulletLine(line) {
		return false
	}
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && len(strings.Fields(trimmed)) <= maxHeaderWords && !strings.HasSuffix(trimmed, ".")
}

func nonEmptyLines(fragment string) []string {
	var lines []string
	for _, line := range strings.Split(fragment, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
