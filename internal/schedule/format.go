package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hkoren/free-slots/internal/interval"
)

// NoAvailabilityMessage is printed when no date has a qualifying window.
const NoAvailabilityMessage = "No qualifying availability (≥45 minutes) in the requested window."

// twelveHourZonePrefixes and twelveHourZones form the static allow-list for
// 12-hour clock display when the time-format preference is "auto". Zones
// not listed default to 24-hour. This is a presentation heuristic only and
// is overridable per call.
var (
	twelveHourZonePrefixes = []string{"America/"}

	twelveHourZones = map[string]bool{
		"Europe/London":       true,
		"Europe/Dublin":       true,
		"Pacific/Auckland":    true,
		"Pacific/Chatham":     true,
		"Australia/Sydney":    true,
		"Australia/Melbourne": true,
		"Australia/Brisbane":  true,
		"Australia/Perth":     true,
		"Australia/Adelaide":  true,
		"Australia/Darwin":    true,
		"Asia/Manila":         true,
	}
)

// ZoneUses24Hour reports whether an IANA zone defaults to 24-hour display.
func ZoneUses24Hour(zone string) bool {
	if twelveHourZones[zone] {
		return false
	}
	for _, prefix := range twelveHourZonePrefixes {
		if strings.HasPrefix(zone, prefix) {
			return false
		}
	}
	return true
}

// resolveTimeFormat maps a preference ("auto", "12", "24", or empty for
// auto) and an attendee zone to a concrete clock format.
func resolveTimeFormat(pref, zone string) (use24 bool, err error) {
	switch pref {
	case "12":
		return false, nil
	case "24":
		return true, nil
	case "", "auto":
		return ZoneUses24Hour(zone), nil
	default:
		return false, fmt.Errorf("invalid time format %q (want auto, 12 or 24)", pref)
	}
}

// ordinal renders 1 as "1st", 2 as "2nd", 11 as "11th" and so on.
func ordinal(n int) string {
	if n%100 >= 10 && n%100 <= 20 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// formatTimeRange renders one interval's local wall-clock range. In
// 12-hour mode a shared meridiem is collapsed onto the end time
// ("9:30-10:45am"); when the range crosses noon or midnight both sides
// carry one ("11:30am-1:00pm").
func formatTimeRange(iv interval.Interval, use24 bool) string {
	if use24 {
		return iv.Start.Format("15:04") + "-" + iv.End.Format("15:04")
	}

	startMeridiem := strings.ToLower(iv.Start.Format("PM"))
	endMeridiem := strings.ToLower(iv.End.Format("PM"))
	startClock := iv.Start.Format("3:04")
	endClock := iv.End.Format("3:04")

	if startMeridiem == endMeridiem {
		return fmt.Sprintf("%s-%s%s", startClock, endClock, startMeridiem)
	}
	return fmt.Sprintf("%s%s-%s%s", startClock, startMeridiem, endClock, endMeridiem)
}

// Text renders the result as one line per attendee-local date, with
// weekday name, month name, ordinal day number and semicolon-separated
// time ranges. Free windows are already sorted by start, so grouping is a
// single pass keyed on the local date of each window's start.
func (r *Result) Text() string {
	lines := []string{fmt.Sprintf("Availability (%s):", r.AttendeeZone)}

	var (
		curDay    time.Time
		curRanges []string
	)
	flush := func() {
		if len(curRanges) == 0 {
			return
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s",
			curDay.Format("Monday January"),
			ordinal(curDay.Day()),
			strings.Join(curRanges, "; ")))
		curRanges = nil
	}

	for _, iv := range r.Free {
		year, month, day := iv.Start.Date()
		dayStart := time.Date(year, month, day, 0, 0, 0, 0, iv.Start.Location())
		if !dayStart.Equal(curDay) {
			flush()
			curDay = dayStart
		}
		curRanges = append(curRanges, formatTimeRange(iv, r.Use24Hour))
	}
	flush()

	if len(lines) == 1 {
		return NoAvailabilityMessage
	}
	return strings.Join(lines, "\n")
}

// Document is the structured form of a result, suitable for JSON output.
// Instants are ISO-8601 with offset. The windowStartRef/windowEndRef keys
// carry the computation range expressed in the reference zone.
type Document struct {
	CalendarID  string     `json:"calendarId"`
	AttendeeTZ  string     `json:"attendeeTz"`
	WindowStart string     `json:"windowStartRef"`
	WindowEnd   string     `json:"windowEndRef"`
	SlotMinutes int        `json:"slotMinutes"`
	TimeFormat  string     `json:"timeFormat"`
	Free        []FreeSpan `json:"free"`
}

// FreeSpan is one free window in a Document.
type FreeSpan struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Document converts the result to its structured form.
func (r *Result) Document() Document {
	timeFormat := "12"
	if r.Use24Hour {
		timeFormat = "24"
	}

	free := make([]FreeSpan, 0, len(r.Free))
	for _, iv := range r.Free {
		free = append(free, FreeSpan{
			Start: iv.Start.Format(time.RFC3339),
			End:   iv.End.Format(time.RFC3339),
		})
	}

	return Document{
		CalendarID:  r.CalendarID,
		AttendeeTZ:  r.AttendeeZone,
		WindowStart: r.WindowStart.Format(time.RFC3339),
		WindowEnd:   r.WindowEnd.Format(time.RFC3339),
		SlotMinutes: r.SlotMinutes,
		TimeFormat:  timeFormat,
		Free:        free,
	}
}

// JSON renders the structured document with two-space indentation.
func (r *Result) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(r.Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal availability document: %w", err)
	}
	return out, nil
}
