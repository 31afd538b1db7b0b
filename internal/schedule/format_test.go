package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkoren/free-slots/internal/interval"
)

func TestZoneUses24Hour(t *testing.T) {
	tests := []struct {
		zone string
		want bool
	}{
		{"America/New_York", false},
		{"America/Denver", false},
		{"America/Sao_Paulo", false},
		{"Europe/London", false},
		{"Europe/Dublin", false},
		{"Pacific/Auckland", false},
		{"Pacific/Chatham", false},
		{"Australia/Sydney", false},
		{"Asia/Manila", false},
		{"Europe/Berlin", true},
		{"Europe/Paris", true},
		{"Asia/Tokyo", true},
		{"Africa/Nairobi", true},
		{"UTC", true},
	}

	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			assert.Equal(t, tt.want, ZoneUses24Hour(tt.zone))
		})
	}
}

func TestResolveTimeFormat(t *testing.T) {
	use24, err := resolveTimeFormat("24", "America/New_York")
	require.NoError(t, err)
	assert.True(t, use24, "explicit preference overrides the heuristic")

	use24, err = resolveTimeFormat("12", "Europe/Berlin")
	require.NoError(t, err)
	assert.False(t, use24)

	use24, err = resolveTimeFormat("auto", "Europe/Berlin")
	require.NoError(t, err)
	assert.True(t, use24)

	use24, err = resolveTimeFormat("", "America/Chicago")
	require.NoError(t, err)
	assert.False(t, use24)

	_, err = resolveTimeFormat("13", "America/Chicago")
	assert.Error(t, err)
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 30: "30th", 31: "31st",
	}
	for n, want := range tests {
		assert.Equal(t, want, ordinal(n))
	}
}

func TestFormatTimeRange(t *testing.T) {
	mk := func(sh, sm, eh, em int) interval.Interval {
		return interval.Interval{
			Start: time.Date(2025, 1, 6, sh, sm, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 6, eh, em, 0, 0, time.UTC),
		}
	}

	tests := []struct {
		name  string
		iv    interval.Interval
		use24 bool
		want  string
	}{
		{"24h", mk(9, 30, 10, 45), true, "09:30-10:45"},
		{"24h afternoon", mk(13, 0, 17, 0), true, "13:00-17:00"},
		{"12h shared meridiem", mk(9, 30, 10, 45), false, "9:30-10:45am"},
		{"12h crossing noon", mk(11, 30, 13, 0), false, "11:30am-1:00pm"},
		{"12h afternoon", mk(14, 0, 15, 30), false, "2:00-3:30pm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTimeRange(tt.iv, tt.use24))
		})
	}
}

func TestResultText(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	res := &Result{
		AttendeeZone: "America/New_York",
		Free: []interval.Interval{
			{
				Start: time.Date(2025, 1, 6, 10, 35, 0, 0, ny),
				End:   time.Date(2025, 1, 6, 12, 0, 0, 0, ny),
			},
			{
				Start: time.Date(2025, 1, 6, 14, 0, 0, 0, ny),
				End:   time.Date(2025, 1, 6, 17, 0, 0, 0, ny),
			},
			{
				Start: time.Date(2025, 1, 7, 9, 0, 0, 0, ny),
				End:   time.Date(2025, 1, 7, 10, 0, 0, 0, ny),
			},
		},
	}

	want := "Availability (America/New_York):\n" +
		"Monday January 6th: 10:35am-12:00pm; 2:00-5:00pm\n" +
		"Tuesday January 7th: 9:00-10:00am"
	assert.Equal(t, want, res.Text())
}

func TestResultTextNoAvailability(t *testing.T) {
	res := &Result{AttendeeZone: "Europe/Berlin"}
	assert.Equal(t, NoAvailabilityMessage, res.Text())
}

func TestResultJSON(t *testing.T) {
	denverLoc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)

	res := &Result{
		CalendarID:   "primary",
		AttendeeZone: "Europe/Berlin",
		WindowStart:  time.Date(2025, 1, 6, 0, 0, 0, 0, denverLoc),
		WindowEnd:    time.Date(2025, 1, 13, 0, 0, 0, 0, denverLoc),
		SlotMinutes:  60,
		Use24Hour:    true,
		Free: []interval.Interval{
			{
				Start: time.Date(2025, 1, 6, 10, 35, 0, 0, denverLoc),
				End:   time.Date(2025, 1, 6, 11, 35, 0, 0, denverLoc),
			},
		},
	}

	out, err := res.JSON()
	require.NoError(t, err)

	// Raw key names are part of the output contract.
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &keys))
	for _, key := range []string{"calendarId", "attendeeTz", "windowStartRef", "windowEndRef", "slotMinutes", "timeFormat", "free"} {
		assert.Contains(t, keys, key)
	}

	var doc Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "primary", doc.CalendarID)
	assert.Equal(t, "Europe/Berlin", doc.AttendeeTZ)
	assert.Equal(t, "2025-01-06T00:00:00-07:00", doc.WindowStart)
	assert.Equal(t, "2025-01-13T00:00:00-07:00", doc.WindowEnd)
	assert.Equal(t, 60, doc.SlotMinutes)
	assert.Equal(t, "24", doc.TimeFormat)
	require.Len(t, doc.Free, 1)
	assert.Equal(t, "2025-01-06T10:35:00-07:00", doc.Free[0].Start)
	assert.Equal(t, "2025-01-06T11:35:00-07:00", doc.Free[0].End)
}
