// Package reminder matches the current wall-clock minute against feeding times.
package reminder

import (
	"strings"
	"time"

	"github.com/maloquacious/dogcenter/internal/store"
)

// ClockLayout is the HH:mm layout feeding times are stored in.
const ClockLayout = "15:04"

const prefix = "Time to feed: "

// Reminder is either empty or "Time to feed: " followed by comma-separated names.
type Reminder string

// Empty is the no-match reminder.
const Empty Reminder = ""

// IsActive reports whether any dog is due.
func (r Reminder) IsActive() bool {
	return r != Empty
}

func (r Reminder) String() string {
	return string(r)
}

// Scan returns the reminder for now. A record matches only when its feeding
// time string-equals now formatted as HH:mm in now's location.
func Scan(records []store.DogRecord, now time.Time) Reminder {
	current := now.Format(ClockLayout)

	var due []string
	for _, rec := range records {
		if rec.FeedingTime == current {
			due = append(due, rec.Name)
		}
	}
	if len(due) == 0 {
		return Empty
	}
	return Reminder(prefix + strings.Join(due, ", "))
}

// NextDue returns the start of the next minute, strictly after now's minute
// and within 24 hours, at which some record is due. Records whose feeding
// time names no real clock minute (e.g. "99:99") can never match and are
// skipped.
func NextDue(records []store.DogRecord, now time.Time) (time.Time, bool) {
	minute := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())

	var (
		best  time.Time
		found bool
	)
	for _, rec := range records {
		at, err := time.ParseInLocation(ClockLayout, rec.FeedingTime, now.Location())
		if err != nil {
			continue
		}
		next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
		if !next.After(minute) {
			next = next.AddDate(0, 0, 1)
		}
		if !found || next.Before(best) {
			best, found = next, true
		}
	}
	return best, found
}
