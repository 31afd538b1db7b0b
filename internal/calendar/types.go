package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// BusyEvent is a busy span read from the upstream calendar, resolved to
// absolute time. All-day events are anchored to local midnight in the
// fallback zone, spanning to the (exclusive) end date's midnight.
type BusyEvent struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// toBusyEvent converts a raw API event to a BusyEvent. The boolean result
// is false for events that cannot contribute busy time: cancelled events
// and events with missing or unparseable start/end fields. Those are
// dropped silently; a partially malformed feed must not fail the query.
func toBusyEvent(ev *calendar.Event, fallback *time.Location) (BusyEvent, bool) {
	if ev == nil || ev.Status == "cancelled" {
		return BusyEvent{}, false
	}

	start, allDay, ok := parseEventTime(ev.Start, fallback)
	if !ok {
		return BusyEvent{}, false
	}
	end, _, ok := parseEventTime(ev.End, fallback)
	if !ok {
		return BusyEvent{}, false
	}

	return BusyEvent{Start: start, End: end, AllDay: allDay}, true
}

// parseEventTime resolves a Google Calendar start/end field. Timed events
// carry an RFC3339 dateTime; all-day events carry a bare date, which maps
// to midnight in the fallback zone.
func parseEventTime(d *calendar.EventDateTime, fallback *time.Location) (t time.Time, allDay, ok bool) {
	if d == nil {
		return time.Time{}, false, false
	}
	switch {
	case d.DateTime != "":
		parsed, err := time.Parse(time.RFC3339, d.DateTime)
		if err != nil {
			return time.Time{}, false, false
		}
		return parsed, false, true
	case d.Date != "":
		parsed, err := time.ParseInLocation("2006-01-02", d.Date, fallback)
		if err != nil {
			return time.Time{}, false, false
		}
		return parsed, true, true
	}
	return time.Time{}, false, false
}
