package llm

import "context"

type contextKey string

const (
	purposeKey     contextKey = "llm_purpose"
	correlationKey contextKey = "llm_correlation"
)

const unknownPurpose = "unknown"

// WithPurpose labels requests made with ctx for logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label on ctx.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return unknownPurpose
}

// WithCorrelationID ties requests made with ctx to an assessment.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey, id)
}

// CorrelationIDFrom returns the correlation ID on ctx, or "".
func CorrelationIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(correlationKey).(string)
	return v
}
