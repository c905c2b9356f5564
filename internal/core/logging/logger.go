package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Field names shared by every notice related log event.
const (
	FieldComponent = "cmp"
	FieldNoticeID  = "notice_id"
	FieldProducer  = "producer"
)

// Component returns the global logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return log.With().Str(FieldComponent, name).Logger()
}

// ForNotice returns a child of l bound to one notice. The producer recorded in
// ctx, if any, is carried along so events logged later from timer or
// subscriber goroutines still name the flow that raised the notice.
func ForNotice(ctx context.Context, l zerolog.Logger, noticeID string) zerolog.Logger {
	c := l.With().Str(FieldNoticeID, noticeID)
	if producer := GetProducer(ctx); producer != "" {
		c = c.Str(FieldProducer, producer)
	}
	return c.Logger()
}
