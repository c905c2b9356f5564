// Package sports holds the notification producers of the unisports flows:
// bookings, matchmaking, followed teams, announcements and payments. Each
// producer turns a domain event into a notify.Draft and publishes it.
package sports

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// Publisher is the part of notify.Store that producers need.
type Publisher interface {
	Publish(d notify.Draft) (notify.Notice, error)
}

// Producers publishes the notices raised by the sports flows.
type Producers struct {
	pub Publisher
	log zerolog.Logger
}

// NewProducers creates producers publishing into pub.
func NewProducers(pub Publisher) *Producers {
	return &Producers{
		pub: pub,
		log: logging.Component("sports"),
	}
}

// Match is the subset of a match listing that notices refer to.
type Match struct {
	ID    string
	Sport string
	Team1 string
	Team2 string
}

// Versus renders "Team1 vs Team2".
func (m Match) Versus() string {
	return m.Team1 + " vs " + m.Team2
}

func (p *Producers) publish(ctx context.Context, producer string, d notify.Draft) (notify.Notice, error) {
	ctx = logging.WithProducer(ctx, producer)

	n, err := p.pub.Publish(d)
	if err != nil {
		p.log.Warn().Ctx(ctx).Err(err).Str("title", d.Title).Msg("publish failed")
		return notify.Notice{}, fmt.Errorf("%s: publish %q: %w", producer, d.Title, err)
	}

	nlog := logging.ForNotice(ctx, p.log, n.ID)
	nlog.Debug().Str("title", n.Title).Msg("notice raised")
	return n, nil
}

// MatchConfirmed announces a confirmed match against opponent.
func (p *Producers) MatchConfirmed(ctx context.Context, opponent, sport, when string) (notify.Notice, error) {
	return p.publish(ctx, "matchmaking", notify.Draft{
		Category:  notify.CategoryMatch,
		Title:     "Match Confirmed",
		Body:      fmt.Sprintf("Your %s match with %s is confirmed for %s", strings.ToLower(sport), opponent, when),
		Shareable: true,
	})
}

// PlayerRequest announces that player wants to schedule a game.
func (p *Producers) PlayerRequest(ctx context.Context, player, sport string) (notify.Notice, error) {
	return p.publish(ctx, "matchmaking", notify.Draft{
		Category: notify.CategoryMatch,
		Title:    "New Player Request",
		Body:     fmt.Sprintf("%s wants to schedule a %s game with you", player, strings.ToLower(sport)),
	})
}

// FieldBooked confirms a field reservation.
func (p *Producers) FieldBooked(ctx context.Context, field, sport, slot string) (notify.Notice, error) {
	return p.publish(ctx, "bookings", notify.Draft{
		Category: notify.CategoryBooking,
		Title:    "Field Booked",
		Body:     fmt.Sprintf("%s %s court booked for %s", field, strings.ToLower(sport), slot),
	})
}

// BookingCancelled raises the toast shown once a booking or scheduled match
// has been cancelled.
func (p *Producers) BookingCancelled(ctx context.Context, kind Kind, name string) (notify.Notice, error) {
	return p.publish(ctx, "bookings", notify.Draft{
		Category:  notify.CategoryBooking,
		Title:     "Booking Cancelled 🚫",
		Body:      fmt.Sprintf("Your %s %q has been cancelled and removed.", strings.ToLower(string(kind)), name),
		Transient: true,
	})
}

// OpeningLocation raises the toast shown when a venue is opened in maps.
func (p *Producers) OpeningLocation(ctx context.Context, location string) (notify.Notice, error) {
	return p.publish(ctx, "bookings", notify.Draft{
		Category:  notify.CategoryBooking,
		Title:     "Opening Location 📍",
		Body:      "Opening " + location + " in Google Maps",
		Transient: true,
	})
}

// GettingDirections raises the toast shown when directions are requested.
func (p *Producers) GettingDirections(ctx context.Context, location string) (notify.Notice, error) {
	return p.publish(ctx, "bookings", notify.Draft{
		Category:  notify.CategoryBooking,
		Title:     "Getting Directions 🗺️",
		Body:      "Opening directions to " + location,
		Transient: true,
	})
}

// TeamFollowed confirms that both teams of m are followed.
func (p *Producers) TeamFollowed(ctx context.Context, m Match) (notify.Notice, error) {
	return p.publish(ctx, "teams", notify.Toast(
		"Team Followed",
		fmt.Sprintf("You are now following updates for %s and %s", m.Team1, m.Team2),
	))
}

// TeamUnfollowed confirms that team is no longer followed.
func (p *Producers) TeamUnfollowed(ctx context.Context, team string) (notify.Notice, error) {
	return p.publish(ctx, "teams", notify.Toast(
		"Team Unfollowed",
		"You will no longer receive updates for "+team,
	))
}

// TournamentAlert publishes a persistent, shareable general announcement.
func (p *Producers) TournamentAlert(ctx context.Context, title, body string) (notify.Notice, error) {
	return p.publish(ctx, "announcements", notify.Draft{
		Category:  notify.CategoryGeneral,
		Title:     title,
		Body:      body,
		Shareable: true,
	})
}

// PaymentSuccess raises the toast shown after a premium coaching purchase.
func (p *Producers) PaymentSuccess(ctx context.Context) (notify.Notice, error) {
	return p.publish(ctx, "payments", notify.Toast(
		"Payment Successful! 🎉",
		"Welcome to Premium Coaching! You now have access to expert trainers and nutritionists.",
	))
}

// SubscriptionWelcome raises the toast shown when coaching access starts.
func (p *Producers) SubscriptionWelcome(ctx context.Context) (notify.Notice, error) {
	return p.publish(ctx, "payments", notify.Toast(
		"Welcome to Premium Coaching! 🎉",
		"You now have access to expert trainers and nutritionists.",
	))
}
