package llm

import "context"

type purposeKey struct{}

// WithPurpose tags the context with the interview operation this call
// serves (question generation, answer scoring, summarization). The logging
// middleware persists the tag so token usage can be grouped per purpose.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom reads the purpose tag, "unknown" for untagged calls.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
