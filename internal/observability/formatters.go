// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/db"
	"github.com/jonathan/candidate-matcher/internal/pipeline"
	"github.com/jonathan/candidate-matcher/internal/ranking"
	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to limit runes, ending in "..." when cut
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items as bullets, with a remainder line
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintJobRequirement outputs a human-readable summary of the extracted requirement.
func (p *Printer) PrintJobRequirement(req *types.JobRequirement) {
	if req == nil {
		return
	}

	var sb strings.Builder
	title := req.Title
	if title == "" {
		title = "(untitled)"
	}
	sb.WriteString(fmt.Sprintf("Role:     %s\n", title))
	if req.MinYears != nil {
		sb.WriteString(fmt.Sprintf("Min exp:  %g years\n", *req.MinYears))
	}
	sb.WriteString(fmt.Sprintf("ID:       %s\n", req.ID))
	sb.WriteString("\n")

	writeList(&sb, "Required Skills", req.Required, maxItemsToShow)
	writeList(&sb, "Preferred Skills", req.Preferred, 3)
	writeList(&sb, "Keywords", req.Keywords, 3)

	p.printBox("PARSED JOB REQUIREMENT", strings.TrimRight(sb.String(), "\n"))
}

// PrintProfile outputs a human-readable summary of a normalized profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n\n", profile.CandidateID))

	roles := make([]string, 0, len(profile.Experience))
	for _, e := range profile.Experience {
		role := e.Title
		if e.Organization != "" {
			role += " @ " + e.Organization
		}
		if e.DurationMonths != nil {
			role += fmt.Sprintf(" (%d mo)", *e.DurationMonths)
		} else {
			role += " (dates unresolved)"
		}
		roles = append(roles, role)
	}
	writeList(&sb, "Experience", roles, maxItemsToShow)

	degrees := make([]string, 0, len(profile.Education))
	for _, e := range profile.Education {
		degrees = append(degrees, strings.TrimSpace(strings.Join([]string{e.Degree, e.Field, e.Institution}, " ")))
	}
	writeList(&sb, "Education", degrees, 3)
	writeList(&sb, "Skills", profile.Skills, maxItemsToShow)

	p.printBox("NORMALIZED PROFILE", strings.TrimRight(sb.String(), "\n"))
}

// PrintRankedList outputs the top ranked candidates with scores and an explanation.
func (p *Printer) PrintRankedList(list types.RankedList, threshold float64) {
	if list.Len() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", list.Len()))

	count := min(list.Len(), maxItemsToShow)
	for i, r := range list.Results[:count] {
		marker := " "
		if r.Composite >= threshold {
			marker = "✓"
		}
		sb.WriteString(fmt.Sprintf("#%d %s %s\n", i+1, marker, r.CandidateID))
		sb.WriteString(fmt.Sprintf("    Score: %.3f (skills %.2f, exp %.2f, kw %.2f)\n",
			r.Composite, r.SkillScore, r.ExperienceScore, r.KeywordScore))
		sb.WriteString(fmt.Sprintf("    %s\n", ranking.Explain(r)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if list.Len() > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", list.Len()-maxItemsToShow))
	}

	p.printBox("TOP RANKED CANDIDATES", strings.TrimRight(sb.String(), "\n"))
}

// PrintFailures outputs profiles that could not be scored.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFailures(failures []pipeline.Failure) {
	if len(failures) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL PROFILES PROCESSED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skipped %d profiles:\n\n", len(failures)))

	for i, f := range failures {
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", f.CandidateID, f.Stage))
		sb.WriteString(fmt.Sprintf("  %s\n", f.Message))
		if i < len(failures)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("FAILED PROFILES", strings.TrimRight(sb.String(), "\n"))
}

// PrintFilteredByExperience outputs candidates dropped by the minimum-experience filter.
func (p *Printer) PrintFilteredByExperience(results []types.MatchResult, minYears float64) {
	if len(results) == 0 {
		return
	}

	items := make([]string, 0, len(results))
	for _, r := range results {
		items = append(items, fmt.Sprintf("%s (%.1f yrs)", r.CandidateID, float64(r.TotalExperienceMonths)/12))
	}

	var sb strings.Builder
	writeList(&sb, fmt.Sprintf("Below %g years", minYears), items, maxItemsToShow)
	p.printBox("FILTERED BY EXPERIENCE", strings.TrimRight(sb.String(), "\n"))
}

// PrintStoredRun outputs a run read back from the database.
func (p *Printer) PrintStoredRun(run *db.Run, results []db.StoredResult) {
	if run == nil {
		return
	}

	var sb strings.Builder
	title := run.JobTitle
	if title == "" {
		title = "(untitled)"
	}
	sb.WriteString(fmt.Sprintf("Run:      %s\n", run.ID))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", title))
	sb.WriteString(fmt.Sprintf("Stored:   %s\n", run.CreatedAt.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("Matched:  %d of %d (threshold %.2f, %d failed)\n\n",
		run.MatchedCount, run.CandidateCount, run.Threshold, run.FailedCount))

	items := make([]string, 0, len(results))
	for _, r := range results {
		marker := " "
		if r.Matched {
			marker = "✓"
		}
		items = append(items, fmt.Sprintf("#%d %s %s %.3f", r.Rank, marker, r.CandidateID, r.CompositeScore))
	}
	writeList(&sb, "Results", items, maxItemsToShow)

	p.printBox("STORED RUN", strings.TrimRight(sb.String(), "\n"))
}
