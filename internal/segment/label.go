// Package segment splits raw profile text into labeled sections.
package segment

import "fmt"

// Label identifies the kind of section a fragment belongs to.
// The set is closed: every switch over Label should handle all five values.
type Label int

const (
	Unclassified Label = iota
	Experience
	Education
	Skills
	Summary
)

// Labels returns every label in declaration order
func Labels() []Label {
	return []Label{Unclassified, Experience, Education, Skills, Summary}
}

func (l Label) String() string {
	switch l {
	case Unclassified:
		return "unclassified"
	case Experience:
		return "experience"
	case Education:
		return "education"
	case Skills:
		return "skills"
	case Summary:
		return "summary"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

// MarshalText encodes the label by name
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLabel parses a label name
func ParseLabel(name string) (Label, error) {
	for _, l := range Labels() {
		if l.String() == name {
			return l, nil
		}
	}
	return Unclassified, fmt.Errorf("unknown section label %q", name)
}
