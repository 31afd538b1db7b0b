package interval

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidInterval is returned when an interval would end before it starts.
var ErrInvalidInterval = errors.New("interval end is before start")

// Interval is a half-open span of absolute time [Start, End).
// A zero-length interval (Start == End) is valid and covers nothing.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New creates an interval, rejecting spans that end before they start.
func New(start, end time.Time) (Interval, error) {
	if end.Before(start) {
		return Interval{}, fmt.Errorf("%w: start=%s end=%s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsZero reports whether the interval covers no time at all.
func (iv Interval) IsZero() bool {
	return !iv.End.After(iv.Start)
}

// In returns the same interval with both endpoints rendered in loc.
// The underlying instants are unchanged; only the display zone moves.
func (iv Interval) In(loc *time.Location) Interval {
	return Interval{Start: iv.Start.In(loc), End: iv.End.In(loc)}
}

// Overlaps reports whether the two intervals share any instant.
// Touching endpoints do not count as overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && o.Start.Before(iv.End)
}

// Merge collapses a set of intervals into the minimal sorted set of
// disjoint intervals covering the same instants. Intervals that merely
// touch (one ends exactly where the next starts) are combined as well.
// The input is not modified.
func Merge(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}

	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !cur.Start.After(last.End) {
			if cur.End.After(last.End) {
				last.End = cur.End
			}
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// Subtract returns the parts of whole not covered by blocks.
// blocks must already be sorted and merged; Subtract does not re-sort.
// A zero-length whole yields no output regardless of blocks.
func Subtract(whole Interval, blocks []Interval) []Interval {
	var free []Interval
	cursor := whole.Start
	for _, b := range blocks {
		if !b.End.After(cursor) {
			continue
		}
		if b.Start.After(whole.End) {
			break
		}
		clipStart := maxTime(b.Start, whole.Start)
		clipEnd := minTime(b.End, whole.End)
		if clipStart.After(cursor) {
			free = append(free, Interval{Start: cursor, End: clipStart})
		}
		if clipEnd.After(cursor) {
			cursor = clipEnd
		}
	}
	if cursor.Before(whole.End) {
		free = append(free, Interval{Start: cursor, End: whole.End})
	}
	return free
}

// ExpandWithBuffer widens every interval by pre before the start and post
// after the end, then merges the result. Two intervals closer together than
// pre+post become a single blocked span.
func ExpandWithBuffer(ivs []Interval, pre, post time.Duration) []Interval {
	expanded := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		expanded = append(expanded, Interval{
			Start: iv.Start.Add(-pre),
			End:   iv.End.Add(post),
		})
	}
	return Merge(expanded)
}

// FilterMinDuration keeps only intervals at least min long.
func FilterMinDuration(ivs []Interval, min time.Duration) []Interval {
	var out []Interval
	for _, iv := range ivs {
		if iv.Duration() >= min {
			out = append(out, iv)
		}
	}
	return out
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
