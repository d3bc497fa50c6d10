package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	monthNamePattern = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`
	yearPattern      = `(?:19|20)\d{2}`
	// dateTokenPattern matches "Jan 2020", "January, 2020", "01/2020", "2020-01" and "2020"
	dateTokenPattern = `(?:(?:` + monthNamePattern + `)\.?,?\s+` + yearPattern +
		`|(?:0?[1-9]|1[0-2])/` + yearPattern +
		`|` + yearPattern + `-(?:0[1-9]|1[0-2])\b` +
		`|` + yearPattern + `)`
	ongoingPattern = `present|current(?:ly)?|now|today|ongoing|to date|date`
	rangeSeparator = `\s*(?:-|–|—|~|to|until|till)\s*`
)

var (
	dateRangeRe = regexp.MustCompile(`(?i)\b(` + dateTokenPattern + `)` + rangeSeparator +
		`(` + dateTokenPattern + `|` + ongoingPattern + `)\b`)
	monthYearRe   = regexp.MustCompile(`(?i)^(` + monthNamePattern + `)\.?,?\s+(` + yearPattern + `)$`)
	slashDateRe   = regexp.MustCompile(`^(0?[1-9]|1[0-2])/(` + yearPattern + `)$`)
	isoMonthRe    = regexp.MustCompile(`^(` + yearPattern + `)-(0[1-9]|1[0-2])$`)
	bareYearRe    = regexp.MustCompile(`^(` + yearPattern + `)$`)
	singleYearRe  = regexp.MustCompile(`\b(` + yearPattern + `)\b`)
	ongoingWordRe = regexp.MustCompile(`(?i)^(?:` + ongoingPattern + `)$`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// DateRange is the result of parsing a date range. Start and End are nil
// when the text could not be resolved; Ongoing marks "– Present" ranges.
type DateRange struct {
	Start   *types.YearMonth
	End     *types.YearMonth
	Ongoing bool
}

// Resolved reports whether the range has a start and either an end or is ongoing
func (r DateRange) Resolved() bool {
	return r.Start != nil && (r.End != nil || r.Ongoing)
}

// Months returns the inclusive length of the range in months, measuring
// ongoing ranges up to asOf. Returns nil for unresolved or inverted ranges.
func (r DateRange) Months(asOf types.YearMonth) *int {
	if !r.Resolved() {
		return nil
	}
	end := asOf
	if r.End != nil {
		end = *r.End
	}
	if end.Before(*r.Start) {
		return nil
	}
	months := r.Start.MonthsThrough(end)
	return &months
}

// FindDateRange locates the first date range in text. found is true when
// the text contains something shaped like a range, even if the range is
// inverted and therefore left unresolved. matched is the range text.
//
// Bare years are read as whole years: "2019 - 2021" spans January 2019
// through December 2021.
func FindDateRange(text string) (r DateRange, matched string, found bool) {
	loc := dateRangeRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return DateRange{}, "", false
	}
	matched = text[loc[0]:loc[1]]
	startText := text[loc[2]:loc[3]]
	endText := text[loc[4]:loc[5]]

	start, ok := parseDateToken(startText, false)
	if !ok {
		return DateRange{}, matched, true
	}

	if ongoingWordRe.MatchString(strings.TrimSpace(endText)) {
		return DateRange{Start: &start, Ongoing: true}, matched, true
	}

	end, ok := parseDateToken(endText, true)
	if !ok || end.Before(start) {
		return DateRange{}, matched, true
	}
	return DateRange{Start: &start, End: &end}, matched, true
}

// ParseDateRange parses text that should consist of a single date range
func ParseDateRange(text string) (DateRange, bool) {
	r, _, found := FindDateRange(text)
	if !found || !r.Resolved() {
		return DateRange{}, false
	}
	return r, true
}

// FindYear returns the last four-digit year mentioned in text
func FindYear(text string) (int, bool) {
	matches := singleYearRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return 0, false
	}
	year, err := strconv.Atoi(matches[len(matches)-1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// parseDateToken parses one side of a range. A bare year resolves to
// January when it opens a range and December when it closes one.
func parseDateToken(token string, closing bool) (types.YearMonth, bool) {
	token = strings.TrimSpace(token)

	if m := monthYearRe.FindStringSubmatch(token); m != nil {
		month := monthsByPrefix[strings.ToLower(m[1])[:3]]
		return yearMonth(m[2], month)
	}
	if m := slashDateRe.FindStringSubmatch(token); m != nil {
		month, _ := strconv.Atoi(m[1])
		return yearMonth(m[2], time.Month(month))
	}
	if m := isoMonthRe.FindStringSubmatch(token); m != nil {
		month, _ := strconv.Atoi(m[2])
		return yearMonth(m[1], time.Month(month))
	}
	if m := bareYearRe.FindStringSubmatch(token); m != nil {
		if closing {
			return yearMonth(m[1], time.December)
		}
		return yearMonth(m[1], time.January)
	}
	return types.YearMonth{}, false
}

func yearMonth(yearText string, month time.Month) (types.YearMonth, bool) {
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return types.YearMonth{}, false
	}
	return types.NewYearMonth(year, month)
}
