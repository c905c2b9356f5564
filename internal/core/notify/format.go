package notify

import (
	"fmt"
	"time"
)

// RelativeTime renders the age of t as seen from now: minutes below an hour,
// hours below a day, days otherwise. Future times render as "0m ago".
func RelativeTime(now, t time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	}
}

// CountUnread returns the number of unread notices in list.
func CountUnread(list []Notice) int {
	n := 0
	for _, item := range list {
		if !item.Read {
			n++
		}
	}
	return n
}
