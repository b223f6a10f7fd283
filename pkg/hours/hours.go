// Package hours implements the business-hours policy for inbound calls.
//
// The policy is a pure function of a timestamp: callers are inside business
// hours iff the local weekday is Monday through Friday and the local hour is
// within the open window. It is evaluated fresh for every inbound event, so
// a call that straddles the boundary changes behavior mid-call.
package hours

import (
	"fmt"
	"time"
)

const (
	// DefaultZone is the reference timezone used when none is configured.
	DefaultZone = "America/New_York"

	// DefaultOpenHour and DefaultCloseHour bound the default weekday
	// window [open, close).
	DefaultOpenHour  = 8
	DefaultCloseHour = 18
)

// Schedule is a weekly business-hours window in a fixed reference timezone.
// The zero value is not usable; construct with New or Default.
type Schedule struct {
	loc   *time.Location
	open  int
	close int
}

// New creates a schedule for the IANA zone with the window [open, close).
func New(zone string, open, close int) (Schedule, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Schedule{}, fmt.Errorf("hours: load zone %q: %w", zone, err)
	}
	if open < 0 || close > 24 || open >= close {
		return Schedule{}, fmt.Errorf("hours: invalid window [%d, %d)", open, close)
	}
	return Schedule{loc: loc, open: open, close: close}, nil
}

// Default returns the Monday-Friday 8:00-18:00 schedule in DefaultZone.
func Default() Schedule {
	s, err := New(DefaultZone, DefaultOpenHour, DefaultCloseHour)
	if err != nil {
		panic(err) // DefaultZone is in the tzdata shipped with the runtime
	}
	return s
}

// Within reports whether t falls inside business hours.
func (s Schedule) Within(t time.Time) bool {
	lt := t.In(s.loc)
	switch lt.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	h := lt.Hour()
	return h >= s.open && h < s.close
}

// Location returns the schedule's reference timezone.
func (s Schedule) Location() *time.Location {
	return s.loc
}
