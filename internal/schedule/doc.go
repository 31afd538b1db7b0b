// Package schedule computes attendee-facing availability from a calendar's
// busy events: the business-hours policy, the buffer-expand/merge/subtract
// pipeline over time intervals, slot discretization, and text/JSON
// rendering in the attendee's timezone.
package schedule
