package ranking

import (
	"fmt"

	"github.com/google/uuid"
)

// MixedRequirementError represents a ranking call whose results were scored
// against more than one JobRequirement.
type MixedRequirementError struct {
	Expected uuid.UUID
	Found    uuid.UUID
}

func (e *MixedRequirementError) Error() string {
	return fmt.Sprintf("mixed requirement: results reference both %s and %s", e.Expected, e.Found)
}

// DuplicateCandidateError represents a ranking call with two results for one candidate
type DuplicateCandidateError struct {
	CandidateID string
}

func (e *DuplicateCandidateError) Error() string {
	return fmt.Sprintf("duplicate candidate: %q appears more than once", e.CandidateID)
}
