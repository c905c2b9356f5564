package sports

import (
	"time"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// SampleNotices returns the notices shown on a fresh dashboard.
func SampleNotices() []notify.Seed {
	return []notify.Seed{
		{
			Draft: notify.Draft{
				Category:  notify.CategoryMatch,
				Title:     "Match Confirmed",
				Body:      "Your tennis match with Sarah Martinez is confirmed for today at 3:00 PM",
				Shareable: true,
			},
			Age: 30 * time.Minute,
		},
		{
			Draft: notify.Draft{
				Category: notify.CategoryBooking,
				Title:    "Field Booked",
				Body:     "MIT Recreation Center basketball court booked for today 2:00 PM - 4:00 PM",
			},
			Age: 2 * time.Hour,
		},
		{
			Draft: notify.Draft{
				Category: notify.CategoryMatch,
				Title:    "New Player Request",
				Body:     "David Kim wants to schedule a basketball game with you",
			},
			Age:  4 * time.Hour,
			Read: true,
		},
		{
			Draft: notify.Draft{
				Category:  notify.CategoryGeneral,
				Title:     "Tournament Alert",
				Body:      "Spring Tennis Tournament registration is now open!",
				Shareable: true,
			},
			Age: 24 * time.Hour,
		},
	}
}
