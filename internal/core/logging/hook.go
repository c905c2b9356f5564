package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts notice_id and producer from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if noticeID := GetNoticeID(ctx); noticeID != "" {
		e.Str(FieldNoticeID, noticeID)
	}

	if producer := GetProducer(ctx); producer != "" {
		e.Str(FieldProducer, producer)
	}
}
