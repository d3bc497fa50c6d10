package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-matcher/internal/ingestion"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// requirementNamespace scopes the content-derived requirement IDs
var requirementNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/jonathan/candidate-matcher/job-requirement"))

// maxHeadingWords bounds how long a line may be and still count as a heading
const maxHeadingWords = 6

// maxTitleWords bounds the first line when it is read as the role title
const maxTitleWords = 8

// Skill tokens longer than this are prose, not skills
const (
	maxSkillWords = 4
	maxSkillRunes = 40
)

// jdSection is the kind of job-description section a line belongs to
type jdSection int

const (
	sectionNone jdSection = iota
	sectionRequired
	sectionPreferred
	sectionSkills
	sectionDuties
	sectionCompany
)

// sectionMarkers are checked in order; preferred comes before required so
// "Preferred Qualifications" lands in the preferred bucket.
var sectionMarkers = []struct {
	section jdSection
	phrases []string
}{
	{sectionPreferred, []string{"nice to have", "nice-to-have", "good to have", "preferred", "bonus", "plus", "desirable", "optional", "extra credit"}},
	{sectionRequired, []string{"must have", "must-have", "required", "requirements", "requirement", "qualifications", "what you need", "what you'll need", "what we're looking for", "what we are looking for", "you have", "you bring"}},
	{sectionSkills, []string{"skills", "tech stack", "technologies", "technology", "tools", "stack"}},
	{sectionDuties, []string{"responsibilities", "what you'll do", "what you will do", "duties", "the role", "your role", "day to day", "role overview"}},
	{sectionCompany, []string{"about", "benefits", "perks", "we offer", "compensation", "salary", "how to apply", "location", "equal opportunity", "why join"}},
}

// headingFillerWords may surround a marker phrase inside a heading
var headingFillerWords = map[string]struct{}{
	"the": {}, "us": {}, "our": {}, "company": {}, "team": {}, "points": {}, "you": {},
	"we": {}, "to": {}, "your": {}, "of": {}, "and": {}, "&": {}, "a": {}, "key": {},
}

var (
	labelPrefixRe = regexp.MustCompile(`^[\p{L}\s/&-]{1,30}:\s+`)
	headingLineRe = regexp.MustCompile(`^([\p{L}'’&/ -]{2,60}?)\s*[:：]\s*(.*)$`)
	// preferredItemRe marks a single item as preferred regardless of its section
	preferredItemRe  = regexp.MustCompile(`(?i)\(?\b(?:(?:is|are|would be|will be)\s+)?(?:(?:a|an)\s+)?(?:(?:big|huge|strong|definite|nice)\s+)?(?:nice[- ]to[- ]have|good[- ]to[- ]have|preferred|preferably|desirable|optional|bonus(?:\s+points)?|plus)\b\)?[:!.]?`)
	requiredItemRe   = regexp.MustCompile(`(?i)\(?\b(?:(?:is|are)\s+)?(?:must[- ]haves?|required|mandatory|essential)\b\)?[:!.]?`)
	experienceLeadRe = regexp.MustCompile(`(?i)^(?:[\p{L}-]+\s+){0,5}?experience\s+(?:with|in|using|of|on|building)\s+`)
	itemSplitRe      = regexp.MustCompile(`(?i)\s*(?:[,;]|\s/\s|\band\b|\bor\b|&|\.\s|\be\.g\.?|\bsuch as\b|\bincluding\b|\blike\b)\s*`)
	disqualifyingRe  = regexp.MustCompile(`(?i)\b(?:degree|bachelor'?s?|master'?s?|ph\.?d|equivalent|related field|years?|experience|ability|team|etc)\b`)
	digitsOnlyRe     = regexp.MustCompile(`^[\d.+\s]+$`)
	// leadFillerRe matches what may precede a leading marker: "You must have"
	leadFillerRe    = regexp.MustCompile(`(?i)^[\s,;]*(?:(?:you|you'll|we|candidates?|applicants?|should|will|also|ideally|and)(?:\s+|$))*$`)
	trailingRuleRe  = regexp.MustCompile(`\s+[-#=]+\s*$`)
	sentenceBreakRe = regexp.MustCompile(`[.!?]\s`)
)

// proseWords never appear inside a skill name
var proseWords = map[string]struct{}{
	"we": {}, "you": {}, "our": {}, "your": {}, "the": {}, "is": {}, "are": {},
	"will": {}, "be": {}, "this": {}, "who": {},
}

// ExtractRequirement parses a free-text job description into a JobRequirement.
// Skills under required/qualification headings, or marked "must have", go to
// Required; skills marked "nice to have", "preferred" or "plus" go to
// Preferred; unmarked skill lists default to Required. It fails with
// *EmptyRequirementError when no skills and no keywords can be found.
func ExtractRequirement(jdText string) (*types.JobRequirement, error) {
	text := ingestion.CleanText(jdText)
	if text == "" {
		return nil, &EmptyRequirementError{Message: "job description is empty"}
	}

	lines := strings.Split(text, "\n")
	title, first := "", 0
	// a posting that opens straight into "Must have: ..." has no title line,
	// while "Tools Engineer" is still a title
	if _, rest, heading := parseHeading(lines[0]); !heading ||
		(rest == "" && markerResidue(strings.Trim(lines[0], "#*_=-–—: ")) > 0) {
		title, first = RoleTitle(lines[0]), 1
		if len(strings.Fields(title)) > maxTitleWords {
			title, first = "", 0
		}
	}
	keywords := TitleKeywords(title)

	var skills skillBuckets
	section := sectionNone
	for _, line := range lines[first:] {
		if line == "" {
			continue
		}

		if heading, rest, ok := parseHeading(line); ok {
			// "Tools: Docker" inside a preferred list labels the line, not a new section
			listLabel := heading == sectionSkills && rest != "" &&
				(section == sectionRequired || section == sectionPreferred)
			if !listLabel {
				section = heading
			}
			if rest == "" {
				continue
			}
			line = rest
		}

		content, bulleted := ingestion.StripBullet(line)

		switch {
		case section == sectionCompany:
		case section == sectionDuties:
			keywords = append(keywords, CapitalizedPhrases(content)...)
		case bulleted || section != sectionNone || looksLikeSkillList(content):
			for _, segment := range splitSegments(content) {
				bucket, item, _ := classifyItem(segment, section)
				skills.add(bucket, skillsFromItem(item))
			}
		default:
			// prose outside any section only yields the skills it marks
			var prose []string
			anyMarked := false
			for _, segment := range splitSegments(content) {
				bucket, item, marked := classifyItem(segment, sectionNone)
				if !marked {
					prose = append(prose, segment)
					continue
				}
				anyMarked = true
				skills.add(bucket, skillsFromItem(item))
			}
			if anyMarked {
				content = strings.Join(prose, ". ")
			}
			keywords = append(keywords, CapitalizedPhrases(content)...)
		}
	}

	return NewJobRequirement(title, skills.required, skills.preferred, ExtractMinYears(text), keywords)
}

// NewJobRequirement builds a JobRequirement from already-extracted parts. Skills
// are normalized and deduplicated, preferred skills that are also required are
// dropped from Preferred, and the ID is derived from the canonical content.
func NewJobRequirement(title string, required, preferred []string, minYears *float64, keywords []string) (*types.JobRequirement, error) {
	req := DedupeSkills(required)
	requiredSet := make(map[string]struct{}, len(req))
	for _, skill := range req {
		requiredSet[skill] = struct{}{}
	}

	pref := make([]string, 0, len(preferred))
	for _, skill := range DedupeSkills(preferred) {
		if _, dup := requiredSet[skill]; !dup {
			pref = append(pref, skill)
		}
	}

	kw := dedupeKeywords(keywords)

	if len(req) == 0 && len(pref) == 0 && len(kw) == 0 {
		return nil, &EmptyRequirementError{}
	}

	var years *float64
	if minYears != nil && *minYears > 0 {
		v := *minYears
		years = &v
	}

	requirement := &types.JobRequirement{
		Title:     strings.TrimSpace(title),
		Required:  req,
		Preferred: pref,
		MinYears:  years,
		Keywords:  kw,
	}
	requirement.ID = requirementID(requirement)
	return requirement, nil
}

// requirementID derives a UUIDv5 from the requirement's content so the same
// posting always yields the same ID.
func requirementID(r *types.JobRequirement) uuid.UUID {
	var b strings.Builder
	b.WriteString(FoldText(r.Title))
	b.WriteString("\x1e")
	b.WriteString(strings.Join(r.Required, "\x1f"))
	b.WriteString("\x1e")
	b.WriteString(strings.Join(r.Preferred, "\x1f"))
	b.WriteString("\x1e")
	if r.MinYears != nil {
		b.WriteString(strconv.FormatFloat(*r.MinYears, 'f', -1, 64))
	}
	b.WriteString("\x1e")
	b.WriteString(strings.Join(r.Keywords, "\x1f"))
	return uuid.NewSHA1(requirementNamespace, []byte(b.String()))
}

// parseHeading recognizes section headings such as "Requirements:",
// "## Nice to have" or "Must have: Go, SQL". rest holds any inline content.
func parseHeading(line string) (section jdSection, rest string, ok bool) {
	if ingestion.IsBulletLine(line) {
		return sectionNone, "", false
	}
	text := strings.TrimLeft(line, "#*_=-–— ")
	text = strings.TrimRight(trailingRuleRe.ReplaceAllString(text, ""), "*_=–— ")

	if m := headingLineRe.FindStringSubmatch(text); m != nil {
		if s, found := classifyHeading(m[1]); found {
			return s, strings.TrimSpace(m[2]), true
		}
		return sectionNone, "", false
	}

	if strings.ContainsAny(text, ".,;") {
		return sectionNone, "", false
	}
	section, found := classifyHeading(text)
	if !found || markerResidue(text) > 1 {
		return sectionNone, "", false
	}
	return section, "", true
}

// classifyHeading maps heading text to the first section whose marker it contains
func classifyHeading(text string) (jdSection, bool) {
	folded := foldHeading(text)
	if len(strings.Fields(folded)) > maxHeadingWords {
		return sectionNone, false
	}
	for _, group := range sectionMarkers {
		for _, phrase := range group.phrases {
			if containsPhrase(folded, phrase) {
				return group.section, true
			}
		}
	}
	return sectionNone, false
}

// markerResidue counts the words of a heading candidate that are neither
// marker phrases nor filler. "Preferred Qualifications" leaves 0, while a
// skill line such as "Strong Go skills" leaves 2 and is not a heading.
func markerResidue(text string) int {
	folded := foldHeading(text)
	for _, group := range sectionMarkers {
		for _, phrase := range group.phrases {
			folded = strings.ReplaceAll(folded, " "+phrase+"s ", " ")
			folded = strings.ReplaceAll(folded, " "+phrase+" ", " ")
		}
	}
	residue := 0
	for _, word := range strings.Fields(folded) {
		if _, filler := headingFillerWords[word]; !filler {
			residue++
		}
	}
	return residue
}

func foldHeading(text string) string {
	return " " + FoldText(strings.ReplaceAll(text, "’", "'")) + " "
}

func containsPhrase(folded, phrase string) bool {
	return strings.Contains(folded, " "+phrase+" ") || strings.Contains(folded, " "+phrase+"s ")
}

// skillBuckets collects extracted skills by the bucket they were filed under
type skillBuckets struct {
	required, preferred []string
}

func (b *skillBuckets) add(bucket jdSection, skills []string) {
	if bucket == sectionPreferred {
		b.preferred = append(b.preferred, skills...)
	} else {
		b.required = append(b.required, skills...)
	}
}

// itemMarkers are checked in order against a single segment
var itemMarkers = []struct {
	re     *regexp.Regexp
	bucket jdSection
}{
	{preferredItemRe, sectionPreferred},
	{requiredItemRe, sectionRequired},
}

// classifyItem applies an item-level marker ("Docker is a plus", "Kafka
// (preferred)", "must have Go") to the segment it sits in and keeps the side
// of the marker that names the skill. A bare "plus" between two skills joins
// them and leaves the section's bucket in place. marked reports whether a
// marker decided the bucket.
func classifyItem(item string, section jdSection) (bucket jdSection, rest string, marked bool) {
	bucket = sectionRequired
	if section == sectionPreferred {
		bucket = sectionPreferred
	}

	for _, marker := range itemMarkers {
		loc := marker.re.FindStringIndex(item)
		if loc == nil {
			continue
		}
		before, after := item[:loc[0]], item[loc[1]:]
		if strings.EqualFold(strings.Trim(item[loc[0]:loc[1]], " ()[]:!."), "plus") && strings.TrimSpace(after) != "" {
			return classifyItem(before+", "+after, section)
		}
		return marker.bucket, markedSide(before, after), true
	}
	return bucket, item, false
}

// markedSide keeps the text after a leading marker ("you must have Go") and
// the text before a trailing one ("Go is required").
func markedSide(before, after string) string {
	after = strings.Trim(after, " .,:;!-")
	if after != "" && leadFillerRe.MatchString(before) {
		return after
	}
	return before
}

// splitSegments cuts a line at commas, semicolons, pipes and sentence breaks
// that sit outside brackets.
func splitSegments(text string) []string {
	var segments []string
	depth, from := 0, 0
	flush := func(to int) {
		if segment := strings.TrimRight(strings.TrimSpace(text[from:to]), ". "); segment != "" {
			segments = append(segments, segment)
		}
	}
	for i, r := range text {
		switch {
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			depth = max(depth-1, 0)
		case depth > 0:
		case r == ',' || r == ';' || r == '|',
			r == '.' && i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t'):
			flush(i)
			from = i + 1
		}
	}
	flush(len(text))
	return segments
}

// looksLikeSkillList reports whether an unsectioned line is a bare separated
// list such as "Python, SQL, AWS" rather than a sentence.
func looksLikeSkillList(text string) bool {
	if sentenceBreakRe.MatchString(text) {
		return false
	}
	segments := splitSegments(text)
	if len(segments) < 2 {
		return false
	}
	for _, segment := range segments {
		_, item, _ := classifyItem(segment, sectionNone)
		words := strings.Fields(strings.ToLower(item))
		if len(words) == 0 || len(words) > maxSkillWords {
			return false
		}
		for _, word := range words {
			if _, prose := proseWords[word]; prose {
				return false
			}
		}
	}
	return true
}

// skillsFromItem splits a requirement item into candidate skill tokens and
// drops anything that reads like prose rather than a skill name.
func skillsFromItem(item string) []string {
	item = labelPrefixRe.ReplaceAllString(strings.TrimSpace(item), "")
	item = stripYearsPhrases(item)
	item = strings.NewReplacer("(", ",", ")", ",", "[", ",", "]", ",").Replace(item)

	var skills []string
	for _, part := range itemSplitRe.Split(item, -1) {
		part = strings.TrimSpace(part)
		part = experienceLeadRe.ReplaceAllString(part, "")
		skill := NormalizeSkill(part)
		if skill == "" || digitsOnlyRe.MatchString(skill) {
			continue
		}
		if len(strings.Fields(skill)) > maxSkillWords || len([]rune(skill)) > maxSkillRunes {
			continue
		}
		if disqualifyingRe.MatchString(skill) {
			continue
		}
		skills = append(skills, skill)
	}
	return skills
}
