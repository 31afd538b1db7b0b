package calendar

import (
	"testing"
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func TestParseEventTime(t *testing.T) {
	denver := mustLoad(t, "America/Denver")

	tests := []struct {
		name       string
		in         *calendar.EventDateTime
		wantOK     bool
		wantAllDay bool
		want       time.Time
	}{
		{
			name:   "nil field",
			in:     nil,
			wantOK: false,
		},
		{
			name:   "timed event",
			in:     &calendar.EventDateTime{DateTime: "2025-01-06T09:00:00-07:00"},
			wantOK: true,
			want:   time.Date(2025, 1, 6, 9, 0, 0, 0, denver),
		},
		{
			name:       "all-day event maps to fallback midnight",
			in:         &calendar.EventDateTime{Date: "2025-01-06"},
			wantOK:     true,
			wantAllDay: true,
			want:       time.Date(2025, 1, 6, 0, 0, 0, 0, denver),
		},
		{
			name:   "garbage dateTime",
			in:     &calendar.EventDateTime{DateTime: "yesterday-ish"},
			wantOK: false,
		},
		{
			name:   "garbage date",
			in:     &calendar.EventDateTime{Date: "01/06/2025"},
			wantOK: false,
		},
		{
			name:   "empty field",
			in:     &calendar.EventDateTime{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, allDay, ok := parseEventTime(tt.in, denver)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if allDay != tt.wantAllDay {
				t.Errorf("allDay = %v, want %v", allDay, tt.wantAllDay)
			}
			if !got.Equal(tt.want) {
				t.Errorf("time = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToBusyEvent(t *testing.T) {
	denver := mustLoad(t, "America/Denver")

	t.Run("nil event is dropped", func(t *testing.T) {
		if _, ok := toBusyEvent(nil, denver); ok {
			t.Error("expected nil event to be dropped")
		}
	})

	t.Run("cancelled event is dropped", func(t *testing.T) {
		ev := &calendar.Event{
			Status: "cancelled",
			Start:  &calendar.EventDateTime{DateTime: "2025-01-06T09:00:00-07:00"},
			End:    &calendar.EventDateTime{DateTime: "2025-01-06T10:00:00-07:00"},
		}
		if _, ok := toBusyEvent(ev, denver); ok {
			t.Error("expected cancelled event to be dropped")
		}
	})

	t.Run("missing end is dropped", func(t *testing.T) {
		ev := &calendar.Event{
			Start: &calendar.EventDateTime{DateTime: "2025-01-06T09:00:00-07:00"},
		}
		if _, ok := toBusyEvent(ev, denver); ok {
			t.Error("expected event without end to be dropped")
		}
	})

	t.Run("timed event", func(t *testing.T) {
		ev := &calendar.Event{
			Start: &calendar.EventDateTime{DateTime: "2025-01-06T09:00:00-07:00"},
			End:   &calendar.EventDateTime{DateTime: "2025-01-06T10:00:00-07:00"},
		}
		b, ok := toBusyEvent(ev, denver)
		if !ok {
			t.Fatal("expected event to convert")
		}
		if b.AllDay {
			t.Error("timed event should not be all-day")
		}
		if got := b.End.Sub(b.Start); got != time.Hour {
			t.Errorf("duration = %v, want 1h", got)
		}
	})

	t.Run("all-day event spans midnight to midnight", func(t *testing.T) {
		ev := &calendar.Event{
			Start: &calendar.EventDateTime{Date: "2025-01-06"},
			End:   &calendar.EventDateTime{Date: "2025-01-07"},
		}
		b, ok := toBusyEvent(ev, denver)
		if !ok {
			t.Fatal("expected event to convert")
		}
		if !b.AllDay {
			t.Error("expected all-day flag")
		}
		wantStart := time.Date(2025, 1, 6, 0, 0, 0, 0, denver)
		wantEnd := time.Date(2025, 1, 7, 0, 0, 0, 0, denver)
		if !b.Start.Equal(wantStart) || !b.End.Equal(wantEnd) {
			t.Errorf("span = [%v, %v), want [%v, %v)", b.Start, b.End, wantStart, wantEnd)
		}
	})
}
