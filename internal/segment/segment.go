package segment

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/candidate-matcher/internal/ingestion"
)

// Sections holds the fragments of one profile keyed by label
type Sections struct {
	fragments map[Label][]string
}

// Fragments yields the fragments recorded under label in source order
func (s *Sections) Fragments(label Label) iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == nil {
			return
		}
		for _, fragment := range s.fragments[label] {
			if !yield(fragment) {
				return
			}
		}
	}
}

// Count returns the number of fragments under label
func (s *Sections) Count(label Label) int {
	if s == nil {
		return 0
	}
	return len(s.fragments[label])
}

// Has reports whether any fragment was recorded under label
func (s *Sections) Has(label Label) bool {
	return s.Count(label) > 0
}

// Segment splits raw text into labeled sections using heading keywords.
// Text that precedes any recognized heading is Unclassified. Unrecognized
// structure never fails; only empty or undecodable input does.
func Segment(raw string) (*Sections, error) {
	if !utf8.ValidString(raw) {
		return nil, &SegmentationError{Message: "input is not valid UTF-8 text"}
	}
	text := ingestion.CleanText(raw)
	if text == "" {
		return nil, &SegmentationError{Message: "input is empty"}
	}

	s := &Sections{fragments: make(map[Label][]string)}
	current := Unclassified
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		s.fragments[current] = append(s.fragments[current], strings.Join(block, "\n"))
		block = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			flush()
			continue
		}
		if label, remainder, ok := matchHeading(line); ok {
			flush()
			current = label
			if remainder != "" {
				block = append(block, remainder)
			}
			continue
		}
		block = append(block, line)
	}
	flush()

	return s, nil
}
