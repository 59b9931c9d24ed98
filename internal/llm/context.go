package llm

import "context"

// Purpose labels recorded with each request event.
const (
	PurposeSummary    = "summary"
	PurposeQuizGen    = "quiz-gen"
	PurposeFlashcards = "flashcards"
	PurposeUnknown    = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx so the logging decorator can attribute the call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
