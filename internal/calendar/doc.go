// Package calendar provides the upstream busy-event collaborator: a thin
// read-only client over the Google Calendar API that flattens paginated
// event listings into absolute-time busy spans.
package calendar
