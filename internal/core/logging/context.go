package logging

import "context"

type contextKey string

const (
	noticeIDKey contextKey = "notice_id"
	producerKey contextKey = "producer"
)

// WithNoticeID adds a notice ID to the context.
func WithNoticeID(ctx context.Context, noticeID string) context.Context {
	return context.WithValue(ctx, noticeIDKey, noticeID)
}

// WithProducer records which flow (booking, matchmaking, announcer, ...)
// is acting in the context.
func WithProducer(ctx context.Context, producer string) context.Context {
	return context.WithValue(ctx, producerKey, producer)
}

// GetNoticeID retrieves the notice ID from the context.
// Returns empty string if not present.
func GetNoticeID(ctx context.Context) string {
	if id, ok := ctx.Value(noticeIDKey).(string); ok {
		return id
	}
	return ""
}

// GetProducer retrieves the producer name from the context.
// Returns empty string if not present.
func GetProducer(ctx context.Context) string {
	if p, ok := ctx.Value(producerKey).(string); ok {
		return p
	}
	return ""
}
