package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hkoren/free-slots/internal/interval"
)

// ErrInvalidTimezone is returned when the attendee timezone identifier does
// not name a known IANA zone. The failure happens before any busy events
// are fetched.
var ErrInvalidTimezone = errors.New("invalid attendee time zone")

// Pipeline constants. The buffers widen every busy event before merging;
// MinWindow is an absolute floor on emitted windows and slots, independent
// of any requested slot size.
const (
	PreBuffer  = 15 * time.Minute
	PostBuffer = 15 * time.Minute
	MinWindow  = 45 * time.Minute

	DefaultCalendarID = "primary"
	DefaultDays       = 7
)

// BusyEvent is a raw busy span supplied by the upstream calendar source,
// already resolved to absolute time. All-day events arrive as
// midnight-to-midnight spans in the reference zone.
type BusyEvent struct {
	Start time.Time
	End   time.Time
}

// BusyFetcher is the single upstream collaborator of the pipeline: fetch
// all busy events for a calendar over an absolute [timeMin, timeMax) range.
// Implementations own pagination and authentication; a failure here fails
// the whole computation.
type BusyFetcher interface {
	BusyEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]BusyEvent, error)
}

// BusyFunc adapts a plain function to the BusyFetcher interface.
type BusyFunc func(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]BusyEvent, error)

// BusyEvents calls f.
func (f BusyFunc) BusyEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]BusyEvent, error) {
	return f(ctx, calendarID, timeMin, timeMax)
}

// Options configures a single availability computation.
type Options struct {
	// AttendeeZone is the IANA zone results are translated into. Required.
	AttendeeZone string

	// CalendarID selects the upstream calendar; empty means DefaultCalendarID.
	CalendarID string

	// Days is the look-ahead window; zero or negative means DefaultDays.
	Days int

	// SlotMinutes > 0 discretizes free windows into fixed slots of
	// max(45, SlotMinutes) minutes. Zero keeps continuous windows.
	SlotMinutes int

	// TimeFormat is "auto", "12" or "24". Empty means "auto".
	TimeFormat string

	// DayEnd overrides the daily policy cutoff (default 17:00).
	DayEnd ClockTime

	// Now overrides the computation's current time for deterministic
	// testing. Zero means time.Now().
	Now time.Time
}

// Result is a computed availability listing. Free windows are expressed in
// the attendee zone, sorted by start, and already filtered to MinWindow
// (and tiled into slots when discretization was requested).
type Result struct {
	CalendarID   string
	AttendeeZone string
	WindowStart  time.Time // reference zone
	WindowEnd    time.Time // reference zone
	SlotMinutes  int
	Use24Hour    bool
	Free         []interval.Interval
}

// Compute runs the availability pipeline: normalize busy events into the
// reference zone, buffer-expand and merge them, clamp each day to the
// policy window, subtract busy time, translate to the attendee zone, apply
// the minimum-duration floor and optionally tile into fixed slots.
func Compute(ctx context.Context, fetcher BusyFetcher, opts Options) (*Result, error) {
	// Fail fast on a bad zone, before any fetch happens.
	attendeeLoc, err := time.LoadLocation(opts.AttendeeZone)
	if err != nil || opts.AttendeeZone == "" {
		return nil, fmt.Errorf("%w %q", ErrInvalidTimezone, opts.AttendeeZone)
	}

	use24, err := resolveTimeFormat(opts.TimeFormat, opts.AttendeeZone)
	if err != nil {
		return nil, err
	}

	policy, err := NewPolicy(opts.DayEnd)
	if err != nil {
		return nil, err
	}

	calendarID := opts.CalendarID
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	days := opts.Days
	if days <= 0 {
		days = DefaultDays
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	timeMin := now.In(policy.Location())
	timeMax := timeMin.AddDate(0, 0, days)

	events, err := fetcher.BusyEvents(ctx, calendarID, timeMin, timeMax)
	if err != nil {
		return nil, fmt.Errorf("fetch busy events for %s: %w", calendarID, err)
	}

	// Normalize into the reference zone, dropping malformed events with
	// non-positive duration.
	busyRaw := make([]interval.Interval, 0, len(events))
	for _, ev := range events {
		start := ev.Start.In(policy.Location())
		end := ev.End.In(policy.Location())
		if !end.After(start) {
			continue
		}
		busyRaw = append(busyRaw, interval.Interval{Start: start, End: end})
	}
	busy := interval.ExpandWithBuffer(busyRaw, PreBuffer, PostBuffer)

	free := freeWindows(policy, busy, timeMin, timeMax)

	for i := range free {
		free[i] = free[i].In(attendeeLoc)
	}
	free = interval.FilterMinDuration(free, MinWindow)

	if opts.SlotMinutes > 0 {
		free = tileSlots(free, opts.SlotMinutes, attendeeLoc)
		// The slot floor already guarantees this, but keep the filter as a
		// backstop so the invariant holds locally.
		free = interval.FilterMinDuration(free, MinWindow)
	}

	return &Result{
		CalendarID:   calendarID,
		AttendeeZone: opts.AttendeeZone,
		WindowStart:  timeMin,
		WindowEnd:    timeMax,
		SlotMinutes:  opts.SlotMinutes,
		Use24Hour:    use24,
		Free:         free,
	}, nil
}

// freeWindows walks every calendar date in [timeMin, timeMax] inclusive,
// clamps the day's policy window to the requested absolute range and
// subtracts the busy intervals overlapping it.
func freeWindows(policy Policy, busy []interval.Interval, timeMin, timeMax time.Time) []interval.Interval {
	loc := policy.Location()
	startY, startM, startD := timeMin.In(loc).Date()
	endY, endM, endD := timeMax.In(loc).Date()

	dayCursor := time.Date(startY, startM, startD, 0, 0, 0, 0, loc)
	lastDay := time.Date(endY, endM, endD, 0, 0, 0, 0, loc)

	var free []interval.Interval
	for ; !dayCursor.After(lastDay); dayCursor = dayCursor.AddDate(0, 0, 1) {
		window := policy.DayWindow(dayCursor)
		if window.IsZero() {
			continue // weekend
		}

		// Clamp to the requested absolute range.
		if window.Start.Before(timeMin) {
			window.Start = timeMin
		}
		if window.End.After(timeMax) {
			window.End = timeMax
		}
		if !window.End.After(window.Start) {
			continue
		}

		var dayBusy []interval.Interval
		for _, b := range busy {
			if b.Overlaps(window) {
				dayBusy = append(dayBusy, b)
			}
		}
		free = append(free, interval.Subtract(window, interval.Merge(dayBusy))...)
	}
	return free
}

// tileSlots cuts each free window into consecutive fixed-length slots in
// attendee-local time. The effective slot length is never below the
// 45-minute floor, and windows shorter than one slot are dropped entirely;
// no partial slot is ever emitted.
func tileSlots(windows []interval.Interval, slotMinutes int, loc *time.Location) []interval.Interval {
	slotLen := time.Duration(slotMinutes) * time.Minute
	if slotLen < MinWindow {
		slotLen = MinWindow
	}

	var out []interval.Interval
	for _, w := range windows {
		end := w.End.In(loc)
		for cursor := w.Start.In(loc); !cursor.Add(slotLen).After(end); cursor = cursor.Add(slotLen) {
			out = append(out, interval.Interval{Start: cursor, End: cursor.Add(slotLen)})
		}
	}
	return out
}
