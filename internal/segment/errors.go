package segment

import "fmt"

// SegmentationError represents input that is too degenerate to segment:
// empty text or bytes that are not valid UTF-8.
type SegmentationError struct {
	Message string
	Cause   error
}

func (e *SegmentationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("segmentation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("segmentation error: %s", e.Message)
}

func (e *SegmentationError) Unwrap() error {
	return e.Cause
}
