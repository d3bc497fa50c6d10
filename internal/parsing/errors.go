package parsing

import "fmt"

// EmptyRequirementError represents a job description with nothing to match
// against: no required skills, no preferred skills, and no keywords.
type EmptyRequirementError struct {
	Message string
}

func (e *EmptyRequirementError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("empty requirement: %s", e.Message)
	}
	return "empty requirement: no skills or keywords could be extracted"
}
