package schedule

import (
	"fmt"
	"time"

	"github.com/hkoren/free-slots/internal/interval"
)

// ReferenceZone is the fixed timezone the business-hours policy is defined
// in. Busy events are normalized into this zone before any set algebra runs.
const ReferenceZone = "America/Denver"

// Weekday window starts in the reference zone. Wednesdays open an hour
// later than the rest of the week.
var (
	weekdayStart   = ClockTime{Hour: 8, Minute: 30}
	wednesdayStart = ClockTime{Hour: 9, Minute: 30}
)

// DefaultDayEnd is the daily cutoff applied when none is configured.
var DefaultDayEnd = ClockTime{Hour: 17}

// ClockTime is a wall-clock time of day, independent of any date or zone.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a "HH:MM" string.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q (want HH:MM): %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// on anchors the clock time to a calendar date in loc. Going through
// time.Date keeps the result correct across DST transitions.
func (c ClockTime) on(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, c.Hour, c.Minute, 0, 0, loc)
}

// Policy converts calendar dates into allowed working-hours windows.
// The zero value is not usable; build one with NewPolicy.
type Policy struct {
	loc    *time.Location
	dayEnd ClockTime
}

// NewPolicy returns a policy anchored to the reference zone with the given
// daily cutoff. A zero cutoff means DefaultDayEnd.
func NewPolicy(dayEnd ClockTime) (Policy, error) {
	loc, err := time.LoadLocation(ReferenceZone)
	if err != nil {
		return Policy{}, fmt.Errorf("load reference zone %s: %w", ReferenceZone, err)
	}
	if dayEnd == (ClockTime{}) {
		dayEnd = DefaultDayEnd
	}
	return Policy{loc: loc, dayEnd: dayEnd}, nil
}

// Location returns the reference zone location the policy operates in.
func (p Policy) Location() *time.Location {
	return p.loc
}

// DayWindow returns the allowed working window for the calendar date that
// contains day in the reference zone. Weekend dates collapse to a
// zero-length interval at local midnight, which downstream subtraction
// treats as "no availability".
func (p Policy) DayWindow(day time.Time) interval.Interval {
	year, month, date := day.In(p.loc).Date()
	midnight := time.Date(year, month, date, 0, 0, 0, 0, p.loc)

	switch midnight.Weekday() {
	case time.Saturday, time.Sunday:
		return interval.Interval{Start: midnight, End: midnight}
	}

	start := weekdayStart
	if midnight.Weekday() == time.Wednesday {
		start = wednesdayStart
	}

	windowStart := start.on(year, month, date, p.loc)
	windowEnd := p.dayEnd.on(year, month, date, p.loc)
	if !windowEnd.After(windowStart) {
		// Misconfigured cutoff before the opening time; treat the day
		// as closed rather than producing an inverted interval.
		return interval.Interval{Start: midnight, End: midnight}
	}
	return interval.Interval{Start: windowStart, End: windowEnd}
}
