package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithNoticeID(t *testing.T) {
	ctx := WithNoticeID(context.Background(), "notice-123")
	assert.Equal(t, "notice-123", GetNoticeID(ctx))
}

func TestWithProducer(t *testing.T) {
	ctx := WithProducer(context.Background(), "bookings")
	assert.Equal(t, "bookings", GetProducer(ctx))
}

func TestContextValues_NotPresent(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetNoticeID(ctx))
	assert.Empty(t, GetProducer(ctx))
}

func TestContextValues_Both(t *testing.T) {
	ctx := WithNoticeID(context.Background(), "n-1")
	ctx = WithProducer(ctx, "announcer")

	assert.Equal(t, "n-1", GetNoticeID(ctx))
	assert.Equal(t, "announcer", GetProducer(ctx))
}
