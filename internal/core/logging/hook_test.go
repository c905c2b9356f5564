package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "notice_id and producer",
			setupCtx: func() context.Context {
				ctx := WithNoticeID(context.Background(), "n-123")
				return WithProducer(ctx, "bookings")
			},
			wantKeys: []string{"notice_id", "producer"},
		},
		{
			name: "only notice_id",
			setupCtx: func() context.Context {
				return WithNoticeID(context.Background(), "n-123")
			},
			wantKeys:  []string{"notice_id"},
			wantEmpty: []string{"producer"},
		},
		{
			name: "only producer",
			setupCtx: func() context.Context {
				return WithProducer(context.Background(), "announcer")
			},
			wantKeys:  []string{"producer"},
			wantEmpty: []string{"notice_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"notice_id", "producer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for _, key := range tt.wantKeys {
				assert.Contains(t, entry, key)
			}
			for _, key := range tt.wantEmpty {
				assert.NotContains(t, entry, key)
			}
		})
	}
}
