package sports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify/notifytest"
)

type failingPublisher struct {
	err   error
	calls int
}

func (f *failingPublisher) Publish(notify.Draft) (notify.Notice, error) {
	f.calls++
	return notify.Notice{}, f.err
}

func newStore(t *testing.T) *notify.Store {
	t.Helper()
	store := notify.New(notify.WithClock(notifytest.NewClock(notifytest.Epoch)))
	t.Cleanup(store.Close)
	return store
}

func TestProducers_Drafts(t *testing.T) {
	ctx := context.Background()
	match := Match{ID: "m-42", Sport: "Basketball", Team1: "MIT Engineers", Team2: "Harvard Crimson"}

	tests := []struct {
		name      string
		raise     func(p *Producers) (notify.Notice, error)
		category  notify.Category
		title     string
		body      string
		transient bool
		shareable bool
	}{
		{
			name: "match confirmed",
			raise: func(p *Producers) (notify.Notice, error) {
				return p.MatchConfirmed(ctx, "Sarah Martinez", "Tennis", "today at 3:00 PM")
			},
			category:  notify.CategoryMatch,
			title:     "Match Confirmed",
			body:      "Your tennis match with Sarah Martinez is confirmed for today at 3:00 PM",
			shareable: true,
		},
		{
			name:     "player request",
			raise:    func(p *Producers) (notify.Notice, error) { return p.PlayerRequest(ctx, "David Kim", "Basketball") },
			category: notify.CategoryMatch,
			title:    "New Player Request",
			body:     "David Kim wants to schedule a basketball game with you",
		},
		{
			name: "field booked",
			raise: func(p *Producers) (notify.Notice, error) {
				return p.FieldBooked(ctx, "MIT Recreation Center", "Basketball", "today 2:00 PM - 4:00 PM")
			},
			category: notify.CategoryBooking,
			title:    "Field Booked",
			body:     "MIT Recreation Center basketball court booked for today 2:00 PM - 4:00 PM",
		},
		{
			name: "booking cancelled",
			raise: func(p *Producers) (notify.Notice, error) {
				return p.BookingCancelled(ctx, KindField, "Charles River Fields")
			},
			category:  notify.CategoryBooking,
			title:     "Booking Cancelled 🚫",
			body:      `Your field booking "Charles River Fields" has been cancelled and removed.`,
			transient: true,
		},
		{
			name:      "opening location",
			raise:     func(p *Producers) (notify.Notice, error) { return p.OpeningLocation(ctx, "BU Gym") },
			category:  notify.CategoryBooking,
			title:     "Opening Location 📍",
			body:      "Opening BU Gym in Google Maps",
			transient: true,
		},
		{
			name:      "getting directions",
			raise:     func(p *Producers) (notify.Notice, error) { return p.GettingDirections(ctx, "Main Field") },
			category:  notify.CategoryBooking,
			title:     "Getting Directions 🗺️",
			body:      "Opening directions to Main Field",
			transient: true,
		},
		{
			name:      "team followed",
			raise:     func(p *Producers) (notify.Notice, error) { return p.TeamFollowed(ctx, match) },
			category:  notify.CategoryGeneral,
			title:     "Team Followed",
			body:      "You are now following updates for MIT Engineers and Harvard Crimson",
			transient: true,
		},
		{
			name:      "team unfollowed",
			raise:     func(p *Producers) (notify.Notice, error) { return p.TeamUnfollowed(ctx, "Stanford Soccer Club") },
			category:  notify.CategoryGeneral,
			title:     "Team Unfollowed",
			body:      "You will no longer receive updates for Stanford Soccer Club",
			transient: true,
		},
		{
			name: "tournament alert",
			raise: func(p *Producers) (notify.Notice, error) {
				return p.TournamentAlert(ctx, "Tournament Alert", "Registration is open")
			},
			category:  notify.CategoryGeneral,
			title:     "Tournament Alert",
			body:      "Registration is open",
			shareable: true,
		},
		{
			name:      "payment success",
			raise:     func(p *Producers) (notify.Notice, error) { return p.PaymentSuccess(ctx) },
			category:  notify.CategoryGeneral,
			title:     "Payment Successful! 🎉",
			body:      "Welcome to Premium Coaching! You now have access to expert trainers and nutritionists.",
			transient: true,
		},
		{
			name:      "subscription welcome",
			raise:     func(p *Producers) (notify.Notice, error) { return p.SubscriptionWelcome(ctx) },
			category:  notify.CategoryGeneral,
			title:     "Welcome to Premium Coaching! 🎉",
			body:      "You now have access to expert trainers and nutritionists.",
			transient: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			p := NewProducers(store)

			n, err := tt.raise(p)
			require.NoError(t, err)

			assert.Equal(t, tt.category, n.Category)
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, tt.body, n.Body)
			assert.Equal(t, tt.transient, n.Transient)
			assert.Equal(t, tt.shareable, n.Shareable)

			got, ok := store.Get(n.ID)
			require.True(t, ok)
			assert.Equal(t, n, got)
		})
	}
}

func TestProducers_TournamentAlert_InvalidTitle(t *testing.T) {
	store := newStore(t)
	p := NewProducers(store)

	_, err := p.TournamentAlert(context.Background(), "   ", "body")
	require.ErrorIs(t, err, notify.ErrInvalidNotice)
	assert.Equal(t, 0, store.Len())
}

func TestProducers_WrapsPublishError(t *testing.T) {
	pub := &failingPublisher{err: notify.ErrClosed}
	p := NewProducers(pub)

	_, err := p.PaymentSuccess(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, notify.ErrClosed))
	assert.Contains(t, err.Error(), "payments")
	assert.Equal(t, 1, pub.calls)
}

func TestSampleNotices(t *testing.T) {
	clock := notifytest.NewClock(notifytest.Epoch)
	store := notify.New(notify.WithClock(clock), notify.WithSeed(SampleNotices()...))
	t.Cleanup(store.Close)

	snap := store.Snapshot()
	require.Len(t, snap, 4)

	titles := make([]string, len(snap))
	for i, n := range snap {
		titles[i] = n.Title
	}
	assert.Equal(t, []string{"Match Confirmed", "Field Booked", "New Player Request", "Tournament Alert"}, titles)
	assert.Equal(t, 3, store.UnreadCount())
	assert.Equal(t, "30m ago", notify.RelativeTime(clock.Now(), snap[0].CreatedAt))
	assert.Equal(t, "1d ago", notify.RelativeTime(clock.Now(), snap[3].CreatedAt))
	assert.Equal(t, 0, store.PendingExpiries())
}
