package share

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify/notifytest"
)

type fakeClipboard struct {
	err  error
	text string
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		notice  notify.Notice
		baseURL string
		want    Payload
	}{
		{
			name: "match link",
			notice: notify.Notice{
				ID: "m-1", Category: notify.CategoryMatch, Title: "Match Confirmed",
				Body: "Tennis with Sarah Martinez", Shareable: true,
			},
			baseURL: "https://unisports.app",
			want: Payload{
				Title: "Match Confirmed",
				Text:  "Match Confirmed: Tennis with Sarah Martinez",
				URL:   "https://unisports.app/?match=m-1",
			},
		},
		{
			name: "general notice with trailing slash base",
			notice: notify.Notice{
				ID: "n 2", Category: notify.CategoryGeneral, Title: "Tournament Alert", Shareable: true,
			},
			baseURL: "https://sports.example.edu/app/",
			want: Payload{
				Title: "Tournament Alert",
				Text:  "Tournament Alert",
				URL:   "https://sports.example.edu/app/?notice=n+2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.notice, tt.baseURL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_NotShareable(t *testing.T) {
	_, err := Build(notify.Notice{ID: "x", Title: "Field Booked"}, "https://unisports.app")
	require.ErrorIs(t, err, ErrNotShareable)
}

func newStore(t *testing.T) *notify.Store {
	t.Helper()
	store := notify.New(notify.WithClock(notifytest.NewClock(notifytest.Epoch)))
	t.Cleanup(store.Close)
	return store
}

func TestSharer_Share_Copied(t *testing.T) {
	store := newStore(t)
	clip := &fakeClipboard{}
	s := NewSharer(clip, store, "https://unisports.app")

	match, err := store.Publish(notify.Draft{Category: notify.CategoryMatch, Title: "Match Confirmed", Shareable: true})
	require.NoError(t, err)

	res, err := s.Share(match)
	require.NoError(t, err)

	assert.True(t, res.Copied)
	assert.Equal(t, "https://unisports.app/?match="+match.ID, clip.text)

	snap := store.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "Link Copied! 🔗", snap[0].Title)
	assert.True(t, snap[0].Transient)
}

func TestSharer_Share_Fallback(t *testing.T) {
	store := newStore(t)
	s := NewSharer(&fakeClipboard{err: errors.New("no display")}, store, "https://unisports.app")

	match, err := store.Publish(notify.Draft{
		Category: notify.CategoryMatch, Title: "Match Confirmed", Body: "MIT vs Harvard", Shareable: true,
	})
	require.NoError(t, err)

	res, err := s.Share(match)
	require.NoError(t, err)
	assert.False(t, res.Copied)

	head := store.Snapshot()[0]
	assert.Equal(t, "Share Match", head.Title)
	assert.Contains(t, head.Body, "Match Confirmed: MIT vs Harvard")
	assert.Contains(t, head.Body, res.Payload.URL)
}

func TestSharer_Share_NotShareable(t *testing.T) {
	store := newStore(t)
	clip := &fakeClipboard{}
	s := NewSharer(clip, store, "https://unisports.app")

	n, err := store.Publish(notify.Draft{Category: notify.CategoryBooking, Title: "Field Booked"})
	require.NoError(t, err)

	_, err = s.Share(n)
	require.ErrorIs(t, err, ErrNotShareable)
	assert.Empty(t, clip.text)
	assert.Equal(t, 1, store.Len())
}
