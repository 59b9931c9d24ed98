package contentgen

import (
	"errors"
	"fmt"
)

// ErrGeneration wraps every failure to turn a model response into usable
// content: provider errors, undecodable output and shape violations.
var ErrGeneration = errors.New("content generation failed")

// ValidationError describes generated content that decoded but is not
// usable.
type ValidationError struct {
	Kind    string // "summary", "quiz" or "flashcards"
	Index   int    // item position, -1 when not item-specific
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s item %d: %s", e.Kind, e.Index, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func generationError(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrGeneration, stage, err)
}
